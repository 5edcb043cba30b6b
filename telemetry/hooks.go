package telemetry

import "github.com/vango-dev/reactive-core/reactive"

// Install wires m's counters into w's on_track/on_trigger dev hooks (§6).
// Hooks are cheap (a label lookup and an Inc) but still dev-only by
// convention — call Install only when DevMode-style introspection is
// wanted, typically behind the same flag that enables reactive.DevMode.
func (m *Metrics) Install(w *reactive.World) {
	w.OnTrack(func(ev reactive.TrackEvent) {
		m.tracksTotal.WithLabelValues(subscriberKind(ev.Subscriber)).Inc()
	})
	w.OnTrigger(func(ev reactive.TriggerEvent) {
		m.triggersTotal.WithLabelValues("dep").Inc()
	})
}

// subscriberKind labels a Subscriber for the tracks_total counter
// (triggers_total always uses the label "dep"). Subscriber's methods are all unexported (they're an internal
// contract between Dep and Link), so the only thing callers outside the
// package can do with one is compare identity or type-assert against an
// exported concrete type; Effect is the only one with its own type.
func subscriberKind(s reactive.Subscriber) string {
	if _, ok := s.(*reactive.Effect); ok {
		return "effect"
	}
	return "derived"
}
