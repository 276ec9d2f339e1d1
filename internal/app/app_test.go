package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcli/internal/charts"
	"eventcli/internal/config"
	"eventcli/internal/errors"
	"eventcli/internal/infrastructure"
	"eventcli/internal/shared/testutil"
	"eventcli/pkg/contracts/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.InputFile = filepath.Join(dir, "data", "registrations.csv")
	cfg.Paths.OutputDir = filepath.Join(dir, "dashboards")
	cfg.Charts.Width, cfg.Charts.Height, cfg.Charts.FontSize = 640, 360, 11
	return cfg
}

func TestRunGenerator_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	logger, _ := testutil.NewTestLogger(t)

	first, err := RunGenerator(t.Context(), cfg, logger)
	require.NoError(t, err)
	a, err := os.ReadFile(first.Path)
	require.NoError(t, err)

	cfg.Paths.InputFile = filepath.Join(t.TempDir(), "again.csv")
	second, err := RunGenerator(t.Context(), cfg, logger)
	require.NoError(t, err)
	b, err := os.ReadFile(second.Path)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 2180, first.Summary.Total)
	assert.Len(t, first.Summary.Events, 6)
}

func TestRunGenerator_BadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := RunGenerator(t.Context(), cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))

	_, statErr := os.Stat(cfg.Paths.InputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateThenAnalyze(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analyzer.WriteTraces = true
	logger, handler := testutil.NewTestLogger(t)

	_, err := RunGenerator(t.Context(), cfg, logger)
	require.NoError(t, err)

	var stdout bytes.Buffer
	res, err := RunAnalyzer(t.Context(), cfg, &stdout, logger)
	require.NoError(t, err)
	testutil.AssertNoErrors(t, handler)

	assert.Equal(t, res.Summary, stdout.String())
	assert.Contains(t, res.Summary, "Analysis complete.")
	assert.NotEmpty(t, res.RunID)

	assert.Equal(t, 2180, res.Report.KPIs.Total)
	assert.Len(t, res.Report.Events, 6)
	assert.Len(t, res.Report.Channels, 6)

	want := []string{
		config.SummaryFile, config.WorkbookFile, config.MetricsFile, config.TracesFile,
		config.KPIFile, config.EventsFile, config.ChannelsFile, config.FunnelFile,
		config.TimingFile, config.JobTitlesFile, config.IndustryFile,
		charts.AttendanceByEventFile, charts.ChannelPerformanceFile, charts.CostPerAttendeeFile,
		charts.ConversionFunnelFile, charts.RegistrationTimingFile, charts.AttendeesByIndustryFile,
	}
	assert.ElementsMatch(t, want, res.Artifacts)
	for _, name := range want {
		info, err := os.Stat(filepath.Join(res.OutputDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	traces, err := os.ReadFile(filepath.Join(res.OutputDir, config.TracesFile))
	require.NoError(t, err)
	assert.Contains(t, string(traces), "report.kpis")
	assert.Contains(t, string(traces), "analyzer.run")

	metrics, err := os.ReadFile(filepath.Join(res.OutputDir, config.MetricsFile))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "eventcli_kpi")

	// staging directory is gone; only the data and output dirs remain
	entries, err := os.ReadDir(filepath.Dir(res.OutputDir))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"data", "dashboards"}, names)
}

func TestRunAnalyzer_OptionalArtifacts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analyzer.WriteWorkbook = false
	cfg.Analyzer.WriteMetrics = false
	cfg.Analyzer.WriteTraces = false
	cfg.Analyzer.Parallel = false

	rows := testutil.ExampleRows()
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, testutil.Record(r))
	}
	cfg.Paths.InputFile = testutil.WriteCSV(t, domain.Columns, records)

	res, err := RunAnalyzer(t.Context(), cfg, nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, res.Artifacts, config.WorkbookFile)
	assert.NotContains(t, res.Artifacts, config.MetricsFile)
	assert.NotContains(t, res.Artifacts, config.TracesFile)
	assert.Contains(t, res.Artifacts, config.SummaryFile)
	assert.Equal(t, 4, res.Report.KPIs.Total)
}

func TestRunAnalyzer_HeaderOnly(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.InputFile = testutil.WriteCSV(t, domain.Columns, nil)

	res, err := RunAnalyzer(t.Context(), cfg, nil, nil)
	require.NoError(t, err)

	assert.Zero(t, res.Report.KPIs.Total)
	assert.False(t, res.Report.Findings.HasAttendees)
	assert.Contains(t, res.Summary, "n/a")
	assert.FileExists(t, filepath.Join(res.OutputDir, charts.ConversionFunnelFile))
}

func TestRunAnalyzer_FailureLeavesNoOutput(t *testing.T) {
	tests := []struct {
		name    string
		input   func(t *testing.T) string
		errType errors.ErrorType
	}{
		{
			name:    "missing input",
			input:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
			errType: errors.ErrTypeStorage,
		},
		{
			name: "schema error",
			input: func(t *testing.T) string {
				return testutil.WriteCSV(t, []string{"registration_id", "event_name"}, [][]string{{"1", "x"}})
			},
			errType: errors.ErrTypeSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Paths.InputFile = tt.input(t)

			_, err := RunAnalyzer(t.Context(), cfg, nil, nil)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "got %v", err)

			_, statErr := os.Stat(cfg.Paths.OutputDir)
			assert.True(t, os.IsNotExist(statErr))

			entries, err := os.ReadDir(filepath.Dir(cfg.Paths.OutputDir))
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotContains(t, e.Name(), "staging")
			}
		})
	}
}

func TestRunAnalyzer_FailureKeepsPreviousOutput(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Paths.OutputDir, 0755))
	previous := filepath.Join(cfg.Paths.OutputDir, config.SummaryFile)
	require.NoError(t, os.WriteFile(previous, []byte("previous run"), 0644))

	bad := testutil.Record(testutil.Registration(1, domain.StatusAttended))
	bad[10] = "Maybe"
	cfg.Paths.InputFile = testutil.WriteCSV(t, domain.Columns, [][]string{bad})

	_, err := RunAnalyzer(t.Context(), cfg, nil, nil)
	require.Error(t, err)

	content, err := os.ReadFile(previous)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(content))
}

func TestRunGenerator_OutputIsDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.InputFile = t.TempDir()

	_, err := RunGenerator(t.Context(), cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}

func TestRunAnalyzer_KeepsCallerRunID(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.InputFile = testutil.WriteCSV(t, domain.Columns, nil)

	ctx := infrastructure.WithTraceID(t.Context(), "run-42")
	res, err := RunAnalyzer(ctx, cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "run-42", res.RunID)
}
