package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
)

func TestInitializeTelemetry_Disabled(t *testing.T) {
	tel, err := InitializeTelemetry(TelemetryConfig{RunID: "r1"}, nil)
	require.NoError(t, err)

	assert.Nil(t, tel.TracerProvider)
	assert.Nil(t, tel.MeterProvider)
	assert.NotNil(t, tel.Tracer)
	assert.NotNil(t, tel.Meter)

	// noop instruments are usable
	_, span := tel.Tracer.Start(context.Background(), "noop")
	span.End()
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestInitializeTelemetry_TracesToWriter(t *testing.T) {
	var buf bytes.Buffer
	tel, err := InitializeTelemetry(TelemetryConfig{RunID: "r2", TraceWriter: &buf}, nil)
	require.NoError(t, err)

	_, span := tel.Tracer.Start(context.Background(), "report.kpis")
	RecordError(span, errors.New("boom"))
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "report.kpis")
	assert.Contains(t, buf.String(), "boom")
}

func TestTelemetry_WriteMetricsTextfile(t *testing.T) {
	tel, err := InitializeTelemetry(TelemetryConfig{RunID: "r3", EnableMetrics: true}, nil)
	require.NoError(t, err)

	counter, err := tel.Meter.Int64Counter("eventcli_rows_loaded", metric.WithDescription("rows"))
	require.NoError(t, err)
	counter.Add(context.Background(), 12)

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, tel.WriteMetricsTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	// the exporter may attach otel_scope_* labels
	assert.Regexp(t, `eventcli_rows_loaded_total(\{[^}]*\})? 12`, string(content))
	require.NoError(t, tel.Shutdown(context.Background()))
}
