package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go-vaccine-registration/internal/domain/entity"
	"go-vaccine-registration/pkg/clock"
	"go-vaccine-registration/pkg/validator"

	playground "github.com/go-playground/validator/v10"
)

// Field error messages.
const (
	MsgRequired = "required"
	MsgInvalid  = "invalid"
)

// Option membership rules referenced by RegistrationDraft's validate tags.
const (
	tagGroupOption   = "group_option"
	tagSessionOption = "session_option"
)

var tagMessages = map[string]string{
	"required": MsgRequired,
}

// FieldErrors maps a field name to its single error message.  An empty map
// means the draft is valid.
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e FieldErrors) clone() FieldErrors {
	c := make(FieldErrors, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// ValidationError is returned when a submit is attempted on an invalid draft.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("registration draft is invalid: %s", strings.Join(e.Fields.Fields(), ", "))
}

// RegistrationSchema decides which fields of a RegistrationDraft are in
// error.  It is deterministic for a given draft and clock reading.
type RegistrationSchema struct {
	validator *validator.CustomValidator
	clock     clock.Clock
	options   entity.OptionCatalog
	strict    bool
}

// NewRegistrationSchema builds the schema.  With strict set, a non-empty
// groupPriority or session must also be one of the catalog values.
func NewRegistrationSchema(clk clock.Clock, options entity.OptionCatalog, strict bool) *RegistrationSchema {
	s := &RegistrationSchema{
		validator: validator.NewValidator(clk),
		clock:     clk,
		options:   options,
		strict:    strict,
	}
	// Both tags are non-empty constants, registration cannot fail.
	_ = s.validator.RegisterValidation(tagGroupOption, s.optionRule(func() []entity.Option { return s.options.GroupPriorities }))
	_ = s.validator.RegisterValidation(tagSessionOption, s.optionRule(func() []entity.Option { return s.options.Sessions }))
	return s
}

// Validate returns the error map for draft.
func (s *RegistrationSchema) Validate(draft entity.RegistrationDraft) FieldErrors {
	err := s.validator.Validate(draft)
	if err == nil {
		return FieldErrors{}
	}
	return FieldErrors(s.validator.FieldMessages(err, tagMessages, MsgInvalid))
}

// Location is the time zone dates are read in.
func (s *RegistrationSchema) Location() *time.Location {
	return s.clock.Now().Location()
}

// Today is the current calendar day of the schema clock.
func (s *RegistrationSchema) Today() time.Time {
	return clock.Today(s.clock)
}

func (s *RegistrationSchema) Options() entity.OptionCatalog {
	return s.options
}

func (s *RegistrationSchema) optionRule(list func() []entity.Option) playground.Func {
	return func(fl playground.FieldLevel) bool {
		if !s.strict {
			return true
		}
		return entity.ContainsValue(list(), fl.Field().String())
	}
}
