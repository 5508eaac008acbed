package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SetFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// Response DTOs

// DraftResponse is keyed by form field name.  appointmentDate is
// YYYY-MM-DD, or empty when no valid date is set.
type DraftResponse struct {
	GroupPriority   string `json:"groupPriority"`
	HIC             string `json:"hic"`
	Job             string `json:"job"`
	WorkingPlace    string `json:"workingPlace"`
	Address         string `json:"address"`
	AppointmentDate string `json:"appointmentDate"`
	Session         string `json:"session"`
}

type WizardResponse struct {
	ID          uuid.UUID         `json:"id"`
	ActiveStep  int               `json:"active_step"`
	State       string            `json:"state"`
	Values      DraftResponse     `json:"values"`
	Errors      map[string]string `json:"errors"`
	Valid       bool              `json:"valid"`
	Submissions int               `json:"submissions"`
	Handoff     *DraftResponse    `json:"handoff,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type WizardStartResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Wizard    *WizardResponse `json:"wizard"`
}

type WizardCancelResponse struct {
	Redirect string `json:"redirect"`
}

type OptionResponse struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

type OptionsResponse struct {
	GroupPriorities []OptionResponse `json:"group_priorities"`
	Sessions        []OptionResponse `json:"sessions"`
	Attentions      []OptionResponse `json:"attentions"`
}
