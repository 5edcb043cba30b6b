package reactive

// subFlags is the bitfield carried by every Subscriber (Effect or Derived).
// Names follow §3 of the engine's data model: a Subscriber tracks deps and
// may be notified; these bits record where it is in that lifecycle.
type subFlags uint16

const (
	flagActive subFlags = 1 << iota
	flagRunning
	flagTracking
	flagNotified
	flagDirty
	flagAllowRecurse
	flagPaused
	flagEvaluated
)

func (f subFlags) has(bit subFlags) bool { return f&bit != 0 }
