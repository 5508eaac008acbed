package converter

import (
	"go-vaccine-registration/internal/delivery/dto"
	"go-vaccine-registration/internal/domain/entity"
)

// DraftToResponse converts a RegistrationDraft to DraftResponse DTO
func DraftToResponse(draft *entity.RegistrationDraft) *dto.DraftResponse {
	if draft == nil {
		return nil
	}

	response := &dto.DraftResponse{
		GroupPriority: draft.GroupPriority,
		HIC:           draft.HIC,
		Job:           draft.Job,
		WorkingPlace:  draft.WorkingPlace,
		Address:       draft.Address,
		Session:       draft.Session,
	}
	if !draft.AppointmentDate.IsZero() {
		response.AppointmentDate = draft.AppointmentDate.Format(entity.DateLayoutISO)
	}

	return response
}

// WizardToResponse converts a wizard plus its current validation result to
// WizardResponse DTO
func WizardToResponse(wizard *entity.RegistrationWizard, errors map[string]string) *dto.WizardResponse {
	if wizard == nil {
		return nil
	}

	fieldErrors := make(map[string]string, len(errors))
	for k, v := range errors {
		fieldErrors[k] = v
	}

	return &dto.WizardResponse{
		ID:          wizard.ID,
		ActiveStep:  wizard.ActiveStep,
		State:       string(wizard.FormState),
		Values:      *DraftToResponse(&wizard.Draft),
		Errors:      fieldErrors,
		Valid:       len(fieldErrors) == 0,
		Submissions: wizard.Submissions,
		Handoff:     DraftToResponse(wizard.Handoff),
		CreatedAt:   wizard.CreatedAt,
		UpdatedAt:   wizard.UpdatedAt,
	}
}

// OptionsToResponses converts a slice of Option entities to slice of OptionResponse DTOs
func OptionsToResponses(options []entity.Option) []dto.OptionResponse {
	responses := make([]dto.OptionResponse, len(options))
	for i, option := range options {
		responses[i] = dto.OptionResponse{
			ID:    option.ID,
			Value: option.Value,
		}
	}
	return responses
}

// CatalogToResponse converts an OptionCatalog to OptionsResponse DTO
func CatalogToResponse(catalog entity.OptionCatalog) *dto.OptionsResponse {
	return &dto.OptionsResponse{
		GroupPriorities: OptionsToResponses(catalog.GroupPriorities),
		Sessions:        OptionsToResponses(catalog.Sessions),
		Attentions:      OptionsToResponses(catalog.Attentions),
	}
}
