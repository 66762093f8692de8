package xmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTestObserver(t *testing.T) (Observer, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	obs, err := NewOTelObserver(WithTracerProvider(tp), WithMeterProvider(mp))
	require.NoError(t, err)
	return obs, exporter, reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, status string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != metricOperationTotal {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value("status"); ok && v.AsString() == status {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestNewOTelObserver_Default(t *testing.T) {
	obs, err := NewOTelObserver(WithInstrumentationName(""), WithTracerProvider(nil), WithMeterProvider(nil))
	require.NoError(t, err)
	assert.NotNil(t, obs)
}

func TestNewOTelObserver_NilOption(t *testing.T) {
	_, err := NewOTelObserver(nil)
	assert.ErrorIs(t, err, ErrNilOption)
}

func TestNewOTelObserver_InvalidBuckets(t *testing.T) {
	for name, buckets := range map[string][]float64{
		"empty":      {},
		"zero":       {0, 1},
		"decreasing": {1, 0.5},
		"duplicate":  {0.1, 0.1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewOTelObserver(WithBuckets(buckets...))
			assert.ErrorIs(t, err, ErrInvalidBuckets)
		})
	}
}

func TestOTelObserver_SpanSuccess(t *testing.T) {
	obs, exporter, reader := newTestObserver(t)

	ctx, span := obs.Start(context.Background(), SpanOptions{
		Component: "xresolve",
		Operation: "resolve",
		Kind:      KindClient,
		Attrs:     []Attr{String("host", "example.com"), {Key: "", Value: "dropped"}},
	})
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	span.End(Result{Attrs: []Attr{Int("answers", 2), Bool("ipv6", true)}})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "xresolve.resolve", got.Name)
	assert.Equal(t, trace.SpanKindClient, got.SpanKind)
	assert.Equal(t, codes.Ok, got.Status.Code)
	assert.Contains(t, got.Attributes, attribute.String("host", "example.com"))
	assert.Contains(t, got.Attributes, attribute.Int("answers", 2))

	assert.Equal(t, int64(1), collectSum(t, reader, "ok"))
}

func TestOTelObserver_SpanError(t *testing.T) {
	obs, exporter, reader := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{})
	span.End(Result{Err: errors.New("boom")})
	span.End(Result{Err: errors.New("again")})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "unknown.unknown", spans[0].Name)
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)

	assert.Equal(t, int64(1), collectSum(t, reader, "error"))
	assert.Zero(t, collectSum(t, reader, "ok"))
}

func TestOTelObserver_ExplicitStatus(t *testing.T) {
	obs, exporter, _ := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{Component: "c", Operation: "o"})
	span.End(Result{Status: StatusError})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "operation failed", spans[0].Status.Description)
}

func TestOTelObserver_CanceledContextStillRecords(t *testing.T) {
	obs, _, reader := newTestObserver(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, span := obs.Start(ctx, SpanOptions{Component: "c", Operation: "o"})
	cancel()
	span.End(Result{})

	assert.Equal(t, int64(1), collectSum(t, reader, "ok"))
}

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, StatusOK, resolveStatus(Result{}))
	assert.Equal(t, StatusError, resolveStatus(Result{Err: errors.New("x")}))
	assert.Equal(t, StatusOK, resolveStatus(Result{Status: StatusOK, Err: errors.New("x")}))
}

func TestAttrsToOTel(t *testing.T) {
	got := attrsToOTel([]Attr{
		{Key: "s", Value: "v"},
		{Key: "i64", Value: int64(3)},
		{Key: "list", Value: []string{"a", "b"}},
		{Key: "other", Value: 1.5},
		{Key: "nil", Value: nil},
	})
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("s", "v"),
		attribute.Int64("i64", 3),
		attribute.StringSlice("list", []string{"a", "b"}),
		attribute.String("other", "1.5"),
	}, got)
	assert.Nil(t, attrsToOTel(nil))
}
