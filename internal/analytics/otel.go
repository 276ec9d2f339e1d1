package analytics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"eventcli/internal/infrastructure"
)

// reportTracer wraps each report computation in a span and records its duration
type reportTracer struct {
	tracer   trace.Tracer
	duration metric.Float64Histogram
	rows     metric.Int64Counter
	reports  metric.Int64Counter
}

func newReportTracer(tracer trace.Tracer, meter metric.Meter) (*reportTracer, error) {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(infrastructure.MeterName)
	}

	duration, err := meter.Float64Histogram("eventcli_report_duration_seconds",
		metric.WithDescription("Time spent computing one report"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create report duration histogram: %w", err)
	}
	rows, err := meter.Int64Counter("eventcli_rows_analyzed",
		metric.WithDescription("Registrations fed into the analyzer"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rows counter: %w", err)
	}
	reports, err := meter.Int64Counter("eventcli_reports_computed",
		metric.WithDescription("Reports computed, by report and status"))
	if err != nil {
		return nil, fmt.Errorf("failed to create reports counter: %w", err)
	}

	return &reportTracer{tracer: tracer, duration: duration, rows: rows, reports: reports}, nil
}

// trace runs fn inside a "report.<name>" span
func (rt *reportTracer) trace(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := rt.tracer.Start(ctx, "report."+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("report.name", name)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	status := "success"
	if err != nil {
		status = "error"
		infrastructure.RecordError(span, err)
	}
	rt.duration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("report", name)))
	rt.reports.Add(ctx, 1,
		metric.WithAttributes(attribute.String("report", name), attribute.String("status", status)))
	return err
}
