package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"eventcli/pkg/contracts/domain"
)

// EventDate is the event date used by fixtures unless overridden
var EventDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// RowOption customizes a fixture registration
type RowOption func(*domain.Registration)

// Registration builds a valid registration with the given status. Defaults
// follow the generator conventions: engagement 7 and one attended session for
// Attended, engagement 2 for No-Show, engagement 0 for Cancelled.
func Registration(id int, status domain.AttendanceStatus, opts ...RowOption) domain.Registration {
	r := domain.Registration{
		ID:                 id,
		EventName:          "Tech Summit 2024",
		EventType:          domain.EventTypeFlagship,
		EventFormat:        domain.EventFormatInPerson,
		RegistrationDate:   EventDate.AddDate(0, 0, -20),
		EventDate:          EventDate,
		Channel:            "Email Campaign",
		JobTitle:           "Data Analyst",
		Industry:           "Technology",
		CompanySize:        "51-200",
		Status:             status,
		SessionsRegistered: 3,
		AcquisitionCost:    5,
	}
	switch status {
	case domain.StatusAttended:
		r.EngagementScore = 7
		r.SessionsAttended = 1
	case domain.StatusNoShow:
		r.EngagementScore = 2
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithEvent sets the event name
func WithEvent(name string) RowOption {
	return func(r *domain.Registration) { r.EventName = name }
}

// WithChannel sets the channel source
func WithChannel(name string) RowOption {
	return func(r *domain.Registration) { r.Channel = name }
}

// WithEngagement sets the engagement score
func WithEngagement(score int) RowOption {
	return func(r *domain.Registration) { r.EngagementScore = score }
}

// WithCost sets the acquisition cost
func WithCost(cost float64) RowOption {
	return func(r *domain.Registration) { r.AcquisitionCost = cost }
}

// WithSurvey marks the survey as completed
func WithSurvey() RowOption {
	return func(r *domain.Registration) { r.SurveyCompleted = true }
}

// WithLeadDays sets the registration date the given days before the event
func WithLeadDays(days int) RowOption {
	return func(r *domain.Registration) { r.RegistrationDate = r.EventDate.AddDate(0, 0, -days) }
}

// WithJobTitle sets the job title
func WithJobTitle(title string) RowOption {
	return func(r *domain.Registration) { r.JobTitle = title }
}

// WithIndustry sets the industry
func WithIndustry(industry string) RowOption {
	return func(r *domain.Registration) { r.Industry = industry }
}

// ExampleRows is the four-row scenario: two Attended with engagement 8 and 6,
// one No-Show and one Cancelled.
func ExampleRows() []domain.Registration {
	return []domain.Registration{
		Registration(1, domain.StatusAttended, WithEngagement(8), WithSurvey()),
		Registration(2, domain.StatusAttended, WithEngagement(6)),
		Registration(3, domain.StatusNoShow),
		Registration(4, domain.StatusCancelled),
	}
}

// WriteCSV writes a CSV file with header and records into a temp dir and
// returns its path.
func WriteCSV(t *testing.T, header []string, records [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registrations.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture csv: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write records: %v", err)
	}
	return path
}

// Record renders a registration as a CSV record in domain.Columns order
func Record(r domain.Registration) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.EventName,
		string(r.EventType),
		string(r.EventFormat),
		r.RegistrationDate.Format(domain.DateLayout),
		r.EventDate.Format(domain.DateLayout),
		r.Channel,
		r.JobTitle,
		r.Industry,
		r.CompanySize,
		string(r.Status),
		strconv.Itoa(r.SessionsRegistered),
		strconv.Itoa(r.SessionsAttended),
		strconv.Itoa(r.EngagementScore),
		domain.FormatSurveyCompleted(r.SurveyCompleted),
		strconv.FormatFloat(r.AcquisitionCost, 'f', 2, 64),
	}
}
