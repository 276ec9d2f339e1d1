package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcli/pkg/contracts/domain"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Debug("parsing row", slog.Int("row", 2))
	logger.Info("Loaded registrations", slog.Int("rows", 4))
	logger.With(slog.String("component", "analyzer")).Warn("no attendees")

	require.Equal(t, 3, handler.Count())
	assert.True(t, handler.ContainsMessage("Loaded registrations"))
	assert.True(t, handler.ContainsAttr("component", "analyzer"))
	assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)

	AssertLogContains(t, handler, slog.LevelInfo, "Loaded registrations")
	AssertLogAttr(t, handler, "rows", int64(4))
	AssertNoErrors(t, handler)

	handler.Clear()
	assert.Zero(t, handler.Count())
}

func TestRegistrationFixture(t *testing.T) {
	r := Registration(7, domain.StatusAttended, WithChannel("Referral"), WithLeadDays(3), WithSurvey())

	assert.Equal(t, 7, r.ID)
	assert.Equal(t, "Referral", r.Channel)
	assert.Equal(t, 3, r.DaysBeforeEvent())
	assert.True(t, r.SurveyCompleted)
	assert.Positive(t, r.SessionsAttended)

	rec := Record(r)
	assert.Len(t, rec, len(domain.Columns))
	assert.Equal(t, "Attended", rec[10])
}
