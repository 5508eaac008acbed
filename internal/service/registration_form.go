package service

import (
	"errors"
	"fmt"
	"strings"

	"go-vaccine-registration/internal/domain/entity"
)

var ErrUnknownField = errors.New("unknown field")

// SubmitHandler receives the draft on an accepted submit.
type SubmitHandler func(draft entity.RegistrationDraft)

// StepSetter is the parent wizard's step callback.
type StepSetter func(next func(prev int) int)

type FormOption func(*RegistrationForm)

func WithSubmitHandler(h SubmitHandler) FormOption {
	return func(f *RegistrationForm) { f.onSubmit = h }
}

func WithStepSetter(s StepSetter) FormOption {
	return func(f *RegistrationForm) { f.setStep = s }
}

// WithState restores a form that was already submitted.
func WithState(state entity.FormState) FormOption {
	return func(f *RegistrationForm) { f.state = state }
}

// RegistrationForm holds the registrant-info step: current values, the
// per-field errors and overall validity.  Every change re-runs the schema.
// A form is not safe for concurrent use.
type RegistrationForm struct {
	schema   *RegistrationSchema
	draft    entity.RegistrationDraft
	errors   FieldErrors
	state    entity.FormState
	onSubmit SubmitHandler
	setStep  StepSetter
}

// NewRegistrationForm opens a form on draft in the editing state.
func NewRegistrationForm(schema *RegistrationSchema, draft entity.RegistrationDraft, opts ...FormOption) *RegistrationForm {
	f := &RegistrationForm{
		schema: schema,
		draft:  draft,
		state:  entity.FormStateEditing,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.revalidate()
	return f
}

// SetValue updates one field and re-validates.  Dates that match none of
// entity.DateLayouts are stored as the zero date.  Any edit puts a submitted
// form back into the editing state.
func (f *RegistrationForm) SetValue(field, value string) error {
	switch field {
	case entity.FieldGroupPriority:
		f.draft.GroupPriority = value
	case entity.FieldHIC:
		f.draft.HIC = value
	case entity.FieldJob:
		f.draft.Job = value
	case entity.FieldWorkingPlace:
		f.draft.WorkingPlace = value
	case entity.FieldAddress:
		f.draft.Address = value
	case entity.FieldAppointmentDate:
		date, _ := entity.ParseAppointmentDate(value, f.schema.Location())
		f.draft.AppointmentDate = date
	case entity.FieldSession:
		f.draft.Session = value
	default:
		return fmt.Errorf("%w: %q, expected one of %s", ErrUnknownField, field, strings.Join(entity.DraftFields, ", "))
	}

	f.state = entity.FormStateEditing
	f.revalidate()
	return nil
}

func (f *RegistrationForm) Values() entity.RegistrationDraft {
	return f.draft
}

func (f *RegistrationForm) Errors() FieldErrors {
	return f.errors.clone()
}

func (f *RegistrationForm) Valid() bool {
	return f.errors.Valid()
}

func (f *RegistrationForm) State() entity.FormState {
	return f.state
}

// Submit re-checks validity against the current clock.  An invalid draft
// returns a *ValidationError and changes nothing.  Otherwise the draft is
// handed off by value, the step moves forward by one and the form is
// marked submitted.
func (f *RegistrationForm) Submit() error {
	f.revalidate()
	if !f.Valid() {
		return &ValidationError{Fields: f.Errors()}
	}

	if f.onSubmit != nil {
		f.onSubmit(f.draft)
	}
	if f.setStep != nil {
		f.setStep(func(prev int) int { return prev + 1 })
	}
	f.state = entity.FormStateSubmitted
	return nil
}

func (f *RegistrationForm) revalidate() {
	f.errors = f.schema.Validate(f.draft)
}
