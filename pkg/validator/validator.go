package validator

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"go-vaccine-registration/pkg/clock"

	"github.com/go-playground/validator/v10"
)

// TagFutureDay is satisfied by a time.Time whose calendar day, read in the
// validator clock's location, is strictly after the clock's current day.
// Zero times never satisfy it.
const TagFutureDay = "future_day"

type CustomValidator struct {
	validator *validator.Validate
	clock     clock.Clock
}

// NewValidator builds a validator that reports fields by their json name and
// evaluates date rules against clk.
func NewValidator(clk clock.Clock) *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	cv := &CustomValidator{
		validator: v,
		clock:     clk,
	}
	// The tag name is a constant, registration cannot fail.
	_ = v.RegisterValidation(TagFutureDay, cv.futureDay)

	return cv
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// RegisterValidation adds a custom rule under tag.
func (cv *CustomValidator) RegisterValidation(tag string, fn validator.Func) error {
	return cv.validator.RegisterValidation(tag, fn)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "oneof":
				errors[field] = field + " must be one of " + e.Param()
			case TagFutureDay:
				errors[field] = field + " must be a later day than today"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

// FieldMessages maps every failed field to the message registered for its
// failing tag, or fallback when the tag has no entry.  Errors that are not
// validation errors yield an empty map.
func (cv *CustomValidator) FieldMessages(err error, messages map[string]string, fallback string) map[string]string {
	out := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return out
	}

	for _, e := range validationErrors {
		msg, ok := messages[e.Tag()]
		if !ok {
			msg = fallback
		}
		out[e.Field()] = msg
	}
	return out
}

func (cv *CustomValidator) futureDay(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok || t.IsZero() {
		return false
	}
	now := cv.clock.Now()
	return clock.DayAfter(t.In(now.Location()), now)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
