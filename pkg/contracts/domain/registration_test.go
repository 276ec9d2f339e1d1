package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttendanceStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    AttendanceStatus
		wantErr bool
	}{
		{"Attended", StatusAttended, false},
		{"No-Show", StatusNoShow, false},
		{"Cancelled", StatusCancelled, false},
		{"attended", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttendanceStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSurveyCompleted(t *testing.T) {
	yes, err := ParseSurveyCompleted("Yes")
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := ParseSurveyCompleted("No")
	require.NoError(t, err)
	assert.False(t, no)

	_, err = ParseSurveyCompleted("maybe")
	assert.Error(t, err)

	assert.Equal(t, "Yes", FormatSurveyCompleted(true))
	assert.Equal(t, "No", FormatSurveyCompleted(false))
}

func TestRegistration_DaysBeforeEvent(t *testing.T) {
	event := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		reg  time.Time
		want int
	}{
		{"same day", event, 0},
		{"ten days", event.AddDate(0, 0, -10), 10},
		{"across month boundary", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), 30},
		{"after the event", event.AddDate(0, 0, 3), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Registration{RegistrationDate: tt.reg, EventDate: event}
			assert.Equal(t, tt.want, r.DaysBeforeEvent())
		})
	}
}

func TestColumns_Order(t *testing.T) {
	require.Len(t, Columns, 16)
	assert.Equal(t, ColRegistrationID, Columns[0])
	assert.Equal(t, ColAcquisitionCost, Columns[len(Columns)-1])
}
