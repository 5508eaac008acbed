package entity

import (
	"time"

	"github.com/google/uuid"
)

type FormState string

const (
	FormStateEditing   FormState = "editing"
	FormStateSubmitted FormState = "submitted"
)

// RegistrationWizard is the parent wizard hosting the registrant-info step.
type RegistrationWizard struct {
	ID         uuid.UUID          `json:"id"`
	ActiveStep int                `json:"activeStep"`
	FormState  FormState          `json:"formState"`
	Draft      RegistrationDraft  `json:"draft"`
	Handoff    *RegistrationDraft `json:"handoff,omitempty"`
	// Submissions counts accepted submits of the step.
	Submissions int       `json:"submissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRegistrationWizard starts a wizard at step 0 with a default draft.
func NewRegistrationWizard(id uuid.UUID, now time.Time) *RegistrationWizard {
	return &RegistrationWizard{
		ID:         id,
		ActiveStep: 0,
		FormState:  FormStateEditing,
		Draft:      NewRegistrationDraft(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Advance applies a step setter to ActiveStep.
func (w *RegistrationWizard) Advance(next func(prev int) int) {
	w.ActiveStep = next(w.ActiveStep)
}

// Accept stores a handed-off draft.
func (w *RegistrationWizard) Accept(draft RegistrationDraft) {
	w.Handoff = &draft
	w.Submissions++
}
