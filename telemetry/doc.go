// Package telemetry wires the reactive world's on_track/on_trigger dev
// hooks (§6) and the vtree renderer's component updates into Prometheus
// metrics and OpenTelemetry spans, following the same
// Config/Option/promauto.With(registry) shape the source project's own
// metrics and otel middleware use.
package telemetry
