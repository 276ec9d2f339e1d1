package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcli/internal/config"
	"eventcli/internal/dataprocessing"
	"eventcli/internal/shared/testutil"
	"eventcli/pkg/contracts/domain"
)

func mixedTable() *dataprocessing.Table {
	rows := []domain.Registration{
		testutil.Registration(1, domain.StatusAttended, testutil.WithChannel("Referral"), testutil.WithCost(1), testutil.WithLeadDays(40)),
		testutil.Registration(2, domain.StatusNoShow, testutil.WithChannel("LinkedIn Ad"), testutil.WithCost(30), testutil.WithLeadDays(3)),
		testutil.Registration(3, domain.StatusAttended, testutil.WithChannel("LinkedIn Ad"), testutil.WithCost(30), testutil.WithEvent("AI Innovation Tour")),
		testutil.Registration(4, domain.StatusCancelled, testutil.WithEvent("AI Innovation Tour")),
		testutil.Registration(5, domain.StatusAttended, testutil.WithSurvey(), testutil.WithLeadDays(10)),
	}
	return dataprocessing.NewTable(rows)
}

func TestAnalyzer_ParallelMatchesSequential(t *testing.T) {
	table := mixedTable()

	seq, err := NewAnalyzer(Options{Parallel: false}, nil)
	require.NoError(t, err)
	par, err := NewAnalyzer(Options{Parallel: true}, nil)
	require.NoError(t, err)

	a, err := seq.Run(context.Background(), table)
	require.NoError(t, err)
	b, err := par.Run(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, a.KPIs, b.KPIs)
	assert.Equal(t, a.Funnel, b.Funnel)
	assert.Equal(t, a.Demographics, b.Demographics)
	assert.Equal(t, a.Findings.BestChannel, b.Findings.BestChannel)
	assert.Len(t, b.Events, 2)
	assert.Len(t, b.Channels, 3)
}

func TestAnalyzer_Run(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	an, err := NewAnalyzer(OptionsFromConfig(config.Default().Analyzer), logger)
	require.NoError(t, err)

	report, err := an.Run(context.Background(), mixedTable())
	require.NoError(t, err)

	assert.Equal(t, 5, report.KPIs.Total)
	assert.Equal(t, "Referral", report.Findings.BestChannel.Channel)
	assert.Equal(t, "LinkedIn Ad", report.Findings.WorstChannel.Channel)
	assert.Equal(t, "Tech Summit 2024", report.Findings.BestEvent.Event)
	assert.Equal(t, StageRegistered, report.Funnel[0].Name)
	assert.Equal(t, "Engaged (Score 6+)", report.Funnel[3].Name)
	testutil.AssertNoErrors(t, handler)
	assert.True(t, handler.ContainsMessage("analysis complete"))
}

func TestAnalyzer_FunnelNonIncreasingOnGeneratorConventions(t *testing.T) {
	an, err := NewAnalyzer(Options{}, nil)
	require.NoError(t, err)
	report, err := an.Run(context.Background(), mixedTable())
	require.NoError(t, err)

	for i := 1; i < len(report.Funnel); i++ {
		assert.LessOrEqual(t, report.Funnel[i].Count, report.Funnel[i-1].Count, report.Funnel[i].Name)
	}
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	an, err := NewAnalyzer(Options{Parallel: false}, nil)
	require.NoError(t, err)
	_, err = an.Run(ctx, mixedTable())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAnalyzer_Defaults(t *testing.T) {
	an, err := NewAnalyzer(Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopJobTitles, an.opts.TopJobTitles)
	assert.Equal(t, DefaultEngagedScore, an.opts.EngagedScore)
}
