package entity

import (
	"time"
)

// Field names accepted by the registrant-info step.  They double as the json
// names of RegistrationDraft and as keys of the error map.
const (
	FieldGroupPriority   = "groupPriority"
	FieldHIC             = "hic"
	FieldJob             = "job"
	FieldWorkingPlace    = "workingPlace"
	FieldAddress         = "address"
	FieldAppointmentDate = "appointmentDate"
	FieldSession         = "session"
)

// DraftFields lists the step's fields in display order.
var DraftFields = []string{
	FieldGroupPriority,
	FieldHIC,
	FieldJob,
	FieldWorkingPlace,
	FieldAddress,
	FieldAppointmentDate,
	FieldSession,
}

// Accepted appointment date layouts, tried in order.
const (
	DateLayoutPicker = "02/01/2006"
	DateLayoutISO    = "2006-01-02"
)

var DateLayouts = []string{DateLayoutPicker, DateLayoutISO, time.RFC3339}

// RegistrationDraft is the registrant-info answers as the user is filling
// them in.  Values are kept as entered.
type RegistrationDraft struct {
	GroupPriority   string    `json:"groupPriority" validate:"required,group_option"`
	HIC             string    `json:"hic"`
	Job             string    `json:"job"`
	WorkingPlace    string    `json:"workingPlace"`
	Address         string    `json:"address"`
	AppointmentDate time.Time `json:"appointmentDate" validate:"future_day"`
	Session         string    `json:"session" validate:"required,session_option"`
}

// NewRegistrationDraft returns the initial draft: every string empty and the
// appointment set to the day after today.
func NewRegistrationDraft(today time.Time) RegistrationDraft {
	y, m, d := today.Date()
	return RegistrationDraft{
		AppointmentDate: time.Date(y, m, d+1, 0, 0, 0, 0, today.Location()),
	}
}

// ParseAppointmentDate reads s with DateLayouts and returns it in loc.  Inputs
// carrying their own offset are converted, so the calendar day is loc's.
// ok is false when no layout matches.
func ParseAppointmentDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}
