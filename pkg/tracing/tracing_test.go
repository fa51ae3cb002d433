package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)

	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		provider.Shutdown(context.Background())
	})

	return recorder
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}

func TestCreateChildSpan(t *testing.T) {
	recorder := withRecorder(t)

	ctx, span := CreateChildSpan(context.Background(), "handler.todo.Index", []attribute.KeyValue{
		attribute.String("handler.operation", "Index"),
	})

	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))

	AddHTTPAttributes(span, "GET", "/", 200)
	span.End()

	ended := recorder.Ended()
	assert.Len(t, ended, 1)
	assert.Equal(t, "handler.todo.Index", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int("http.status_code", 200))
}

func TestSpanWrapper_RecordsError(t *testing.T) {
	recorder := withRecorder(t)

	err := SpanWrapper(context.Background(), "service.todo.Toggle", nil, func(ctx context.Context) error {
		return errors.New("boom")
	})

	assert.EqualError(t, err, "boom")

	ended := recorder.Ended()
	assert.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestSpanWrapper_Success(t *testing.T) {
	recorder := withRecorder(t)

	err := SpanWrapper(context.Background(), "service.todo.List", nil, func(ctx context.Context) error {
		AddSpanEvent(trace.SpanFromContext(ctx), "listed", nil)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
	assert.Len(t, recorder.Ended()[0].Events(), 1)
}
