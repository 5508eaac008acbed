package validator

import (
	"errors"
	"testing"
	"time"

	"go-vaccine-registration/pkg/clock"
)

type appointment struct {
	Name string    `json:"name" validate:"required"`
	Date time.Time `json:"date" validate:"future_day"`
	Note string    `json:"-"`
}

func TestFutureDay(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	v := NewValidator(clock.Fixed(now))

	tests := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{"zero date", time.Time{}, true},
		{"yesterday", now.AddDate(0, 0, -1), true},
		{"today", now, true},
		{"later today", now.Add(10 * time.Hour), true},
		{"tomorrow", now.AddDate(0, 0, 1), false},
		{"evening west of the clock zone is tomorrow here", time.Date(2026, 10, 16, 22, 0, 0, 0, time.FixedZone("EST", -5*60*60)), false},
		{"morning east of the clock zone is still today here", time.Date(2026, 10, 17, 8, 0, 0, 0, time.FixedZone("JST", 9*60*60)), true},
	}

	for _, tc := range tests {
		err := v.Validate(appointment{Name: "x", Date: tc.date})
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestFieldMessages_UsesJSONNames(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	v := NewValidator(clock.Fixed(now))

	err := v.Validate(appointment{})
	if err == nil {
		t.Fatal("expected validation error for empty appointment")
	}

	got := v.FieldMessages(err, map[string]string{"required": "required"}, "invalid")
	if len(got) != 2 {
		t.Fatalf("FieldMessages() = %#v, want 2 entries", got)
	}
	if got["name"] != "required" {
		t.Errorf("name message = %q, want %q", got["name"], "required")
	}
	if got["date"] != "invalid" {
		t.Errorf("date message = %q, want %q", got["date"], "invalid")
	}
}

func TestFieldMessages_NonValidationError(t *testing.T) {
	v := NewValidator(clock.System(nil))

	got := v.FieldMessages(errors.New("boom"), nil, "invalid")
	if len(got) != 0 {
		t.Errorf("FieldMessages() = %#v, want empty map", got)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	v := NewValidator(clock.Fixed(now))

	got := v.FormatValidationErrors(v.Validate(appointment{Date: now}))
	if got["name"] != "name is required" {
		t.Errorf("name = %q", got["name"])
	}
	if got["date"] != "date must be a later day than today" {
		t.Errorf("date = %q", got["date"])
	}
}
