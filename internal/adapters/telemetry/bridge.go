package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/intern/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor and reports failed spans
// through the logger.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{
		logger: logger,
	}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || s.Status().Code != codes.Error {
		return
	}

	desc := s.Status().Description
	if desc == "" {
		desc = "failed"
	}
	b.logger.Warn(fmt.Sprintf("%s: %s (%s)", s.Name(), desc, s.EndTime().Sub(s.StartTime())))
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}

// NewProvider returns a tracer provider that reports failed spans to logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewLogBridge(logger)),
	)
}
