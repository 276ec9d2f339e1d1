package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"eventcli/internal/analytics"
	"eventcli/internal/charts"
	"eventcli/internal/config"
	"eventcli/internal/dataprocessing"
	"eventcli/internal/errors"
	"eventcli/internal/exporter"
	"eventcli/internal/infrastructure"
	"eventcli/internal/report"
	"eventcli/internal/validation"
	"eventcli/pkg/contracts"
)

// AnalyzeResult describes a finished analyzer run
type AnalyzeResult struct {
	RunID     string
	OutputDir string
	Artifacts []string // file names inside OutputDir
	Report    *analytics.Report
	Summary   string
}

// RunAnalyzer analyzes the configured input file and writes every artifact.
// The console summary is also written to stdout when it is not nil.
func RunAnalyzer(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) (res *AnalyzeResult, err error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "analyzer")

	// a run ID already on ctx is kept so callers can correlate their own logs
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, err
	}
	paths.LogPathResolution(logger)

	checker := validation.NewFileValidator(logger)
	if err := checker.ValidateInputFile(paths.InputFile); err != nil {
		return nil, err
	}
	if err := checker.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return nil, err
	}

	staging, err := newStagingDir(paths.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(staging.dir); rmErr != nil {
			logger.WarnContext(ctx, "Failed to remove staging directory",
				slog.String("path", staging.dir), slog.String("error", rmErr.Error()))
		}
	}()

	tel, traceFile, err := startTelemetry(cfg.Analyzer, staging, runID, logger)
	if err != nil {
		return nil, err
	}
	// traces are flushed on shutdown, so telemetry must stop before the
	// staging directory is committed
	telemetryStopped := false
	stopTelemetry := func() error {
		if telemetryStopped {
			return nil
		}
		telemetryStopped = true
		shutdownErr := tel.Shutdown(context.WithoutCancel(ctx))
		if traceFile != nil {
			if closeErr := traceFile.Close(); closeErr != nil && shutdownErr == nil {
				shutdownErr = closeErr
			}
		}
		return shutdownErr
	}
	defer func() {
		if stopErr := stopTelemetry(); stopErr != nil {
			logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", stopErr.Error()))
		}
	}()

	ctx, span := tel.Tracer.Start(ctx, "analyzer.run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("input.path", paths.InputFile)))
	defer func() {
		infrastructure.RecordError(span, err)
		span.End()
	}()

	table, err := loadTable(ctx, tel, paths.InputFile, logger)
	if err != nil {
		return nil, err
	}

	opts := analytics.OptionsFromConfig(cfg.Analyzer)
	opts.Tracer, opts.Meter = tel.Tracer, tel.Meter
	analyzer, err := analytics.NewAnalyzer(opts, logger)
	if err != nil {
		return nil, err
	}
	rep, err := analyzer.Run(ctx, table)
	if err != nil {
		return nil, err
	}

	first, last, hasDates := table.DateRange()
	summary := report.Summary{
		Header: report.Header{
			Rows:      table.Len(),
			Events:    table.EventCount(),
			FirstDate: first,
			LastDate:  last,
			HasDates:  hasDates,
		},
		Report: rep,
	}.String()

	if err := staging.writeFile(config.SummaryFile, []byte(summary)); err != nil {
		return nil, err
	}
	if err := renderCharts(ctx, tel, cfg.Charts, rep, staging); err != nil {
		return nil, err
	}
	if err := exportTables(ctx, tel, cfg.Analyzer, rep, staging, logger); err != nil {
		return nil, err
	}
	if cfg.Analyzer.WriteMetrics {
		if err := writeMetrics(tel, rep, staging); err != nil {
			return nil, err
		}
	}

	span.End()
	if err := stopTelemetry(); err != nil {
		return nil, fmt.Errorf("flush telemetry: %w", err)
	}

	artifacts, err := staging.commit(paths)
	if err != nil {
		return nil, err
	}

	if stdout != nil {
		if _, err := io.WriteString(stdout, summary); err != nil {
			return nil, errors.NewStorageError("failed to print summary", err)
		}
	}

	logger.InfoContext(ctx, "Analysis artifacts written",
		slog.String("output_dir", paths.OutputDir),
		slog.Int("artifacts", len(artifacts)),
		slog.String("version", contracts.GetVersionString("analyzer")))

	return &AnalyzeResult{
		RunID:     runID,
		OutputDir: paths.OutputDir,
		Artifacts: artifacts,
		Report:    rep,
		Summary:   summary,
	}, nil
}

func startTelemetry(cfg config.AnalyzerConfig, staging *stagingDir, runID string, logger *slog.Logger) (*infrastructure.Telemetry, *os.File, error) {
	telCfg := infrastructure.TelemetryConfig{
		ServiceVersion: contracts.Version,
		RunID:          runID,
		EnableMetrics:  cfg.WriteMetrics,
	}

	var traceFile *os.File
	if cfg.WriteTraces {
		f, err := os.Create(staging.path(config.TracesFile))
		if err != nil {
			return nil, nil, errors.NewStorageError("failed to create trace file", err)
		}
		staging.track(config.TracesFile)
		traceFile = f
		telCfg.TraceWriter = f
	}

	tel, err := infrastructure.InitializeTelemetry(telCfg, logger)
	if err != nil {
		if traceFile != nil {
			traceFile.Close()
		}
		return nil, nil, err
	}
	return tel, traceFile, nil
}

func loadTable(ctx context.Context, tel *infrastructure.Telemetry, path string, logger *slog.Logger) (*dataprocessing.Table, error) {
	_, span := tel.Tracer.Start(ctx, "load")
	defer span.End()

	table, err := dataprocessing.LoadFile(path, logger)
	if err != nil {
		infrastructure.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", table.Len()))
	return table, nil
}

func renderCharts(ctx context.Context, tel *infrastructure.Telemetry, cfg config.ChartsConfig, rep *analytics.Report, staging *stagingDir) error {
	_, span := tel.Tracer.Start(ctx, "render.charts")
	defer span.End()

	renderer, err := charts.NewRenderer(charts.StyleFromConfig(cfg))
	if err != nil {
		infrastructure.RecordError(span, err)
		return errors.NewConfigError("invalid chart style", err)
	}
	rendered, err := renderer.RenderAll(rep)
	if err != nil {
		infrastructure.RecordError(span, err)
		return err
	}
	for _, c := range rendered {
		if err := staging.writeFile(c.File, c.PNG); err != nil {
			infrastructure.RecordError(span, err)
			return err
		}
	}
	span.SetAttributes(attribute.Int("charts", len(rendered)))
	return nil
}

func exportTables(ctx context.Context, tel *infrastructure.Telemetry, cfg config.AnalyzerConfig, rep *analytics.Report, staging *stagingDir, logger *slog.Logger) error {
	_, span := tel.Tracer.Start(ctx, "export.tables")
	defer span.End()

	tables := exporter.ReportTables(rep)
	w := exporter.NewCSVWriter(staging.dir, logger)
	for _, t := range tables {
		if err := w.WriteTable(t); err != nil {
			infrastructure.RecordError(span, err)
			return err
		}
		staging.track(t.File)
	}

	if cfg.WriteWorkbook {
		if err := exporter.WriteWorkbook(staging.path(config.WorkbookFile), tables, logger); err != nil {
			infrastructure.RecordError(span, err)
			return err
		}
		staging.track(config.WorkbookFile)
	}
	return nil
}

func writeMetrics(tel *infrastructure.Telemetry, rep *analytics.Report, staging *stagingDir) error {
	gauges, err := exporter.NewKPIGauges(tel.Registry)
	if err != nil {
		return err
	}
	gauges.Observe(rep)

	if err := tel.WriteMetricsTextfile(staging.path(config.MetricsFile)); err != nil {
		return errors.NewStorageError("failed to write metrics", err)
	}
	staging.track(config.MetricsFile)
	return nil
}

// stagingDir collects artifacts before they are moved into the output
// directory. It lives next to the output directory so the final renames stay
// on one filesystem.
type stagingDir struct {
	dir   string
	files []string
}

func newStagingDir(outputDir string) (*stagingDir, error) {
	parent := filepath.Dir(outputDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, errors.NewStorageError("failed to create output parent directory", err).WithContext("path", parent)
	}
	dir, err := os.MkdirTemp(parent, "."+filepath.Base(outputDir)+".staging-*")
	if err != nil {
		return nil, errors.NewStorageError("failed to create staging directory", err).WithContext("path", parent)
	}
	return &stagingDir{dir: dir}, nil
}

func (s *stagingDir) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *stagingDir) track(name string) {
	s.files = append(s.files, name)
}

func (s *stagingDir) writeFile(name string, data []byte) error {
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return errors.NewStorageError("failed to write artifact", err).WithContext("file", name)
	}
	s.track(name)
	return nil
}

// commit moves every staged artifact into the output directory, replacing
// older copies
func (s *stagingDir) commit(paths *config.Paths) ([]string, error) {
	if err := paths.EnsureOutputDir(); err != nil {
		return nil, errors.NewStorageError("failed to create output directory", err).WithContext("path", paths.OutputDir)
	}
	for _, name := range s.files {
		if err := os.Rename(s.path(name), paths.GetArtifactPath(name)); err != nil {
			return nil, errors.NewStorageError("failed to move artifact into place", err).
				WithContext("file", name).
				WithContext("path", paths.OutputDir)
		}
	}
	return append([]string(nil), s.files...), nil
}
