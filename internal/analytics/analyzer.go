package analytics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"eventcli/internal/config"
	"eventcli/internal/dataprocessing"
	"eventcli/internal/infrastructure"
)

// Report names, used for spans, metrics and logging
const (
	ReportKPIs         = "kpis"
	ReportEvents       = "events"
	ReportChannels     = "channels"
	ReportFunnel       = "funnel"
	ReportTiming       = "timing"
	ReportDemographics = "demographics"
	ReportFindings     = "findings"
)

// Report holds every derived view of one registrations table
type Report struct {
	KPIs         KPIs
	Events       []GroupStats
	Channels     ChannelReport
	Funnel       []FunnelStage
	Timing       TimingReport
	Demographics Demographics
	Findings     Findings
}

// Options tune the analyzer
type Options struct {
	Parallel     bool
	TopJobTitles int
	EngagedScore int
	Tracer       trace.Tracer
	Meter        metric.Meter
}

// OptionsFromConfig maps analyzer configuration to Options
func OptionsFromConfig(cfg config.AnalyzerConfig) Options {
	return Options{
		Parallel:     cfg.Parallel,
		TopJobTitles: cfg.TopJobTitles,
		EngagedScore: cfg.EngagedScore,
	}
}

// Analyzer computes reports over a loaded table
type Analyzer struct {
	opts   Options
	logger *slog.Logger
	tracer *reportTracer
}

// NewAnalyzer creates an analyzer; zero-valued thresholds take their defaults
func NewAnalyzer(opts Options, logger *slog.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopJobTitles <= 0 {
		opts.TopJobTitles = DefaultTopJobTitles
	}
	if opts.EngagedScore <= 0 {
		opts.EngagedScore = DefaultEngagedScore
	}

	rt, err := newReportTracer(opts.Tracer, opts.Meter)
	if err != nil {
		return nil, err
	}
	return &Analyzer{opts: opts, logger: logger, tracer: rt}, nil
}

// Run computes the seven reports. The table is only read, so the six
// independent reports may run concurrently; findings are derived last.
func (a *Analyzer) Run(ctx context.Context, table *dataprocessing.Table) (*Report, error) {
	start := time.Now()
	a.logger.InfoContext(ctx, "starting analysis",
		slog.Int("rows", table.Len()),
		slog.Bool("parallel", a.opts.Parallel))
	a.tracer.rows.Add(ctx, int64(table.Len()))

	ctx, span := a.tracer.tracer.Start(ctx, "analyze",
		trace.WithAttributes(attribute.Int("rows", table.Len())))
	defer span.End()

	var report Report
	tasks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{ReportKPIs, func(context.Context) error { report.KPIs = ComputeKPIs(table); return nil }},
		{ReportEvents, func(context.Context) error { report.Events = ComputeEventStats(table); return nil }},
		{ReportChannels, func(context.Context) error { report.Channels = ComputeChannelStats(table); return nil }},
		{ReportFunnel, func(context.Context) error {
			report.Funnel = ComputeFunnel(table, a.opts.EngagedScore)
			return nil
		}},
		{ReportTiming, func(context.Context) error {
			var err error
			report.Timing, err = ComputeTiming(table)
			return err
		}},
		{ReportDemographics, func(context.Context) error {
			report.Demographics = ComputeDemographics(table, a.opts.TopJobTitles)
			return nil
		}},
	}

	if a.opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, task := range tasks {
			g.Go(func() error {
				return a.tracer.trace(gctx, task.name, task.fn)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, a.fail(ctx, span, err)
		}
	} else {
		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				return nil, a.fail(ctx, span, err)
			}
			if err := a.tracer.trace(ctx, task.name, task.fn); err != nil {
				return nil, a.fail(ctx, span, err)
			}
		}
	}

	_ = a.tracer.trace(ctx, ReportFindings, func(context.Context) error {
		report.Findings = ExtractFindings(report.KPIs, report.Events, report.Channels, report.Timing)
		return nil
	})

	a.logger.InfoContext(ctx, "analysis complete",
		slog.Int("events", len(report.Events)),
		slog.Int("channels", len(report.Channels)),
		slog.Duration("duration", time.Since(start)))
	return &report, nil
}

func (a *Analyzer) fail(ctx context.Context, span trace.Span, err error) error {
	a.logger.ErrorContext(ctx, "analysis failed", slog.String("error", err.Error()))
	infrastructure.RecordError(span, err)
	return err
}
