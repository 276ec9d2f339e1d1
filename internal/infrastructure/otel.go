package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	ServiceName    = "eventcli"
	ServiceVersion = "1.0.0"
	MeterName      = "eventcli"
)

// TelemetryConfig holds OpenTelemetry configuration for one run
type TelemetryConfig struct {
	ServiceName    string
	ServiceVersion string
	RunID          string
	// TraceWriter receives finished spans as JSON; nil disables tracing.
	TraceWriter   io.Writer
	EnableMetrics bool
}

// Telemetry holds the providers for one run. Providers are scoped to the run
// and never installed as process-wide globals.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *prometheus.Registry
	Tracer         trace.Tracer
	Meter          metric.Meter
	logger         *slog.Logger
}

// InitializeTelemetry sets up tracing and metrics according to cfg
func InitializeTelemetry(cfg TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = ServiceName
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = ServiceVersion
	}

	res := createResource(cfg)
	tel := &Telemetry{
		Registry: prometheus.NewRegistry(),
		Tracer:   tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:    metricnoop.NewMeterProvider().Meter(MeterName),
		logger:   logger,
	}

	if cfg.TraceWriter != nil {
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(cfg.TraceWriter),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		// Syncer exports each span as it ends; a batch job has no idle time to flush in
		tel.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		)
		tel.Tracer = tel.TracerProvider.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	}

	if cfg.EnableMetrics {
		exporter, err := otelprom.New(otelprom.WithRegisterer(tel.Registry))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		tel.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		tel.Meter = tel.MeterProvider.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", cfg.TraceWriter != nil),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	return tel, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg TelemetryConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("service.instance.id", cfg.RunID),
	)
}

// WriteMetricsTextfile gathers the registry and writes it in the Prometheus
// text exposition format, suitable for the node_exporter textfile collector.
func (t *Telemetry) WriteMetricsTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, t.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// RecordError marks the span as failed
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
