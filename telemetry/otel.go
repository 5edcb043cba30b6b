package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "reactive-core"

// Tracer resolves a named tracer from the global OpenTelemetry provider,
// the same resolve-at-call-time pattern the source project's own otel
// middleware uses rather than holding a package-level tracer.
func Tracer(name string) trace.Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return otel.Tracer(name)
}

// TraceRender wraps a component render+patch cycle in a span named after
// component, recording any error fn returns and feeding the same
// measurement into m's render-duration histogram.
func TraceRender(ctx context.Context, tracer trace.Tracer, m *Metrics, component string, fn func() error) error {
	spanCtx, span := tracer.Start(ctx, "reactive.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("reactive.component", component)),
	)
	defer span.End()
	_ = spanCtx

	start := time.Now()
	err := fn()
	if m != nil {
		m.ObserveRender(component, time.Since(start).Seconds(), err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return err
}
