package telemetry

import (
	"context"
	"time"

	"github.com/romansndlr/remix-todos/internal/core/port"
)

// NoOpProbe satisfies port.Telemetry and records nothing.
type NoOpProbe struct{}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{}
}

type NoOpSpan struct{}

func (s *NoOpSpan) End()                                       {}
func (s *NoOpSpan) SetAttributes(attrs map[string]interface{}) {}
func (s *NoOpSpan) SetStatus(code string, message string)      {}
func (s *NoOpSpan) RecordError(err error)                      {}

func (p *NoOpProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &NoOpSpan{}
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &NoOpSpan{}
}

func (p *NoOpProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
}

func (p *NoOpProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
}

func (p *NoOpProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
}

// Operation measures one repository call and reports it on End.
type Operation struct {
	probe     port.Telemetry
	ctx       context.Context
	span      port.Span
	startTime time.Time
	operation string
	entity    string
}

// StartOperation opens a repository span and starts the clock.
func StartOperation(ctx context.Context, probe port.Telemetry, operation, entity string, attrs map[string]interface{}) (context.Context, *Operation) {
	ctx, span := probe.StartRepositorySpan(ctx, operation, entity, attrs)

	return ctx, &Operation{
		probe:     probe,
		ctx:       ctx,
		span:      span,
		startTime: time.Now(),
		operation: operation,
		entity:    entity,
	}
}

func (op *Operation) Span() port.Span {
	return op.span
}

// End records the outcome, closes the span and returns err unchanged.
func (op *Operation) End(err error) error {
	duration := time.Since(op.startTime)

	op.span.SetAttributes(map[string]interface{}{
		"operation.duration_ns": duration.Nanoseconds(),
	})

	if err != nil {
		op.span.SetStatus("error", err.Error())
		op.span.RecordError(err)
	} else {
		op.span.SetStatus("ok", "")
	}

	op.probe.RecordRepositoryOperation(op.ctx, op.operation, op.entity, duration, err)
	op.span.End()

	return err
}
