package reactive

// Logger is the structured-logging seam used for dev-mode warnings and
// scheduler error reports (§10). It mirrors the shape of the source
// project's own debug logging so the rest of this module doesn't need to
// know which logging library, if any, the embedder has wired in.
type Logger interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// DevMode is a package-level switch mirroring the source project's
// vango.DevMode. No code in this module reads it: the keyed diff's
// duplicate-key warning is emitted whenever a Warnf is installed on the
// vtree Renderer, and writes to read-only reactive objects are dropped
// without a warning.
var DevMode = false
