package reactive

// Cell is a bare Dep with no cached value of its own: the building block
// the observe package uses for its target→key→Dep maps (§4.7), where the
// value lives in the raw target and the Cell exists purely to be tracked
// and triggered.
type Cell struct {
	d dep
}

// NewCell creates an unattached Cell.
func NewCell() *Cell { return &Cell{} }

// Track records a read of c against the calling goroutine's current
// Subscriber, if any.
func (c *Cell) Track() { CurrentWorld().track(&c.d) }

// TrackIn is Track against an explicit World.
func (c *Cell) TrackIn(w *World) { w.track(&c.d) }

// Trigger notifies c's subscribers that the value it stands for changed.
func (c *Cell) Trigger() { CurrentWorld().trigger(&c.d) }

// TriggerIn is Trigger against an explicit World.
func (c *Cell) TriggerIn(w *World) { w.trigger(&c.d) }

// SetOwner arranges for release to be called once c's subscriber count
// drops to zero, so a key->Cell map can reclaim the entry (§3).
func (c *Cell) SetOwner(release func()) {
	c.d.owner = releaseFunc(release)
}

type releaseFunc func()

func (f releaseFunc) releaseDep(*dep) { f() }
