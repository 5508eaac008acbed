package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-vaccine-registration/internal/delivery/dto"
	"go-vaccine-registration/internal/service"
	"go-vaccine-registration/internal/usecase"
	"go-vaccine-registration/pkg/response"
	"go-vaccine-registration/pkg/validator"
)

type RegistrationHandler struct {
	registrationUsecase usecase.RegistrationWizardUsecase
	validator           *validator.CustomValidator
}

func NewRegistrationHandler(registrationUsecase usecase.RegistrationWizardUsecase, validator *validator.CustomValidator) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUsecase: registrationUsecase,
		validator:           validator,
	}
}

func (h *RegistrationHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	options := h.registrationUsecase.GetOptions(r.Context())
	response.Success(w, http.StatusOK, "Options retrieved successfully", options)
}

func (h *RegistrationHandler) StartWizard(w http.ResponseWriter, r *http.Request) {
	started, err := h.registrationUsecase.StartWizard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to start registration")
		return
	}

	response.Success(w, http.StatusCreated, "Registration started", started)
}

func (h *RegistrationHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	wizard, err := h.registrationUsecase.GetWizard(r.Context())
	if err != nil {
		h.handleError(w, err, "Failed to get registration")
		return
	}

	response.Success(w, http.StatusOK, "Registration retrieved successfully", wizard)
}

func (h *RegistrationHandler) SetField(w http.ResponseWriter, r *http.Request) {
	var req dto.SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	wizard, err := h.registrationUsecase.SetField(r.Context(), &req)
	if err != nil {
		h.handleError(w, err, "Failed to update registration")
		return
	}

	response.Success(w, http.StatusOK, "Field updated", wizard)
}

func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	wizard, err := h.registrationUsecase.Submit(r.Context())
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			response.FormInvalid(w, "Registration form is invalid", wizard, verr.Fields)
			return
		}
		h.handleError(w, err, "Failed to submit registration")
		return
	}

	response.Success(w, http.StatusOK, "Registration step submitted", wizard)
}

func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.registrationUsecase.Cancel(r.Context())
	if err != nil {
		h.handleError(w, err, "Failed to cancel registration")
		return
	}

	response.Success(w, http.StatusOK, "Registration cancelled", cancelled)
}

func (h *RegistrationHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrWizardNotFound):
		response.NotFound(w, "Registration not found or expired")
	case errors.Is(err, usecase.ErrNoWizardInContext):
		response.Unauthorized(w, "Wizard token is required")
	case errors.Is(err, service.ErrUnknownField):
		response.Error(w, http.StatusBadRequest, "Unknown field", err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
