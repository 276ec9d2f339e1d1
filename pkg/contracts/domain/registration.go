package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used for every date column
const DateLayout = "2006-01-02"

// Column names of the registrations table, in file order
const (
	ColRegistrationID     = "registration_id"
	ColEventName          = "event_name"
	ColEventType          = "event_type"
	ColEventFormat        = "event_format"
	ColRegistrationDate   = "registration_date"
	ColEventDate          = "event_date"
	ColChannelSource      = "channel_source"
	ColJobTitle           = "job_title"
	ColIndustry           = "industry"
	ColCompanySize        = "company_size"
	ColAttendanceStatus   = "attendance_status"
	ColSessionsRegistered = "sessions_registered"
	ColSessionsAttended   = "sessions_attended"
	ColEngagementScore    = "engagement_score"
	ColSurveyCompleted    = "survey_completed"
	ColAcquisitionCost    = "acquisition_cost"
)

// Columns lists the registrations table header in file order
var Columns = []string{
	ColRegistrationID,
	ColEventName,
	ColEventType,
	ColEventFormat,
	ColRegistrationDate,
	ColEventDate,
	ColChannelSource,
	ColJobTitle,
	ColIndustry,
	ColCompanySize,
	ColAttendanceStatus,
	ColSessionsRegistered,
	ColSessionsAttended,
	ColEngagementScore,
	ColSurveyCompleted,
	ColAcquisitionCost,
}

// EventType classifies an event
type EventType string

const (
	EventTypeFlagship EventType = "Flagship"
	EventTypeRegional EventType = "Regional"
	EventTypeVirtual  EventType = "Virtual"
)

// EventFormat is how an event is delivered
type EventFormat string

const (
	EventFormatInPerson EventFormat = "In-Person"
	EventFormatHybrid   EventFormat = "Hybrid"
	EventFormatVirtual  EventFormat = "Virtual"
)

// AttendanceStatus is the mutually exclusive outcome of a registration
type AttendanceStatus string

const (
	StatusAttended  AttendanceStatus = "Attended"
	StatusNoShow    AttendanceStatus = "No-Show"
	StatusCancelled AttendanceStatus = "Cancelled"
)

// ParseAttendanceStatus validates a status string
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch st := AttendanceStatus(s); st {
	case StatusAttended, StatusNoShow, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown attendance status %q", s)
	}
}

// ParseSurveyCompleted maps "Yes"/"No" to a bool
func ParseSurveyCompleted(s string) (bool, error) {
	switch s {
	case "Yes":
		return true, nil
	case "No":
		return false, nil
	default:
		return false, fmt.Errorf("survey_completed must be Yes or No, got %q", s)
	}
}

// FormatSurveyCompleted maps a bool to "Yes"/"No"
func FormatSurveyCompleted(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Registration is one attendee sign-up
type Registration struct {
	ID                 int              `json:"registration_id"`
	EventName          string           `json:"event_name"`
	EventType          EventType        `json:"event_type"`
	EventFormat        EventFormat      `json:"event_format"`
	RegistrationDate   time.Time        `json:"registration_date"`
	EventDate          time.Time        `json:"event_date"`
	Channel            string           `json:"channel_source"`
	JobTitle           string           `json:"job_title"`
	Industry           string           `json:"industry"`
	CompanySize        string           `json:"company_size"`
	Status             AttendanceStatus `json:"attendance_status"`
	SessionsRegistered int              `json:"sessions_registered"`
	SessionsAttended   int              `json:"sessions_attended"`
	EngagementScore    int              `json:"engagement_score"`
	SurveyCompleted    bool             `json:"survey_completed"`
	AcquisitionCost    float64          `json:"acquisition_cost"`
}

// DaysBeforeEvent is the registration lead time in whole days. It is
// negative when the registration date falls after the event date.
func (r Registration) DaysBeforeEvent() int {
	return int(r.EventDate.Sub(r.RegistrationDate).Hours() / 24)
}

// IsAttended reports whether the registrant attended
func (r Registration) IsAttended() bool {
	return r.Status == StatusAttended
}
