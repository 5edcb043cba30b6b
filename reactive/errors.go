package reactive

import "errors"

// Sentinel errors for engine-level failures, in the source project's own
// exported-Err-value style (see its pkg/vango/errors.go).
var (
	ErrScopeDisposed  = errors.New("reactive: scope is disposed")
	ErrEffectStopped  = errors.New("reactive: effect is stopped")
	ErrDerivedInvalid = errors.New("reactive: derived value is not attached to an active world")
)

// RunKind identifies which phase of a run a RunError was captured from.
type RunKind int

const (
	RunKindEffect RunKind = iota
	RunKindDerived
	RunKindWatchGetter
	RunKindWatchCallback
	RunKindWatchCleanup
	RunKindScheduler
	RunKindHook
)

func (k RunKind) String() string {
	switch k {
	case RunKindEffect:
		return "effect"
	case RunKindDerived:
		return "derived"
	case RunKindWatchGetter:
		return "watch-getter"
	case RunKindWatchCallback:
		return "watch-callback"
	case RunKindWatchCleanup:
		return "watch-cleanup"
	case RunKindScheduler:
		return "scheduler"
	case RunKindHook:
		return "hook"
	default:
		return "unknown"
	}
}

// RunError wraps any error or recovered panic that crosses an effect,
// derived, or watcher run boundary (§7). Kind records which phase produced
// it so an error-captured hook chain can dispatch on it.
type RunError struct {
	Kind RunKind
	Err  error
}

func (e *RunError) Error() string { return e.Kind.String() + ": " + e.Err.Error() }
func (e *RunError) Unwrap() error { return e.Err }

// NewRunError wraps a recovered panic value (or error) as a RunError
// tagged with kind, for packages outside reactive that need to cross an
// effect-like run boundary of their own (the watch package's getter and
// callback runs, primarily).
func NewRunError(kind RunKind, recovered any) *RunError {
	return newRunError(kind, recovered)
}

func newRunError(kind RunKind, recovered any) *RunError {
	if recovered == nil {
		return nil
	}
	if err, ok := recovered.(error); ok {
		return &RunError{Kind: kind, Err: err}
	}
	return &RunError{Kind: kind, Err: errors.New(toString(recovered))}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return "panic in reactive run"
}
