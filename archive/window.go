package archive

// Window is an optional [t0, tf) query bound pair. Either side may be
// absent, meaning unbounded on that side.
//
// Selection uses overlap semantics: a file covering [start, stop) survives
// a window when the two intervals share any point, not only when the file
// is fully contained. Both bounds are strict in the same way the covered
// interval is half-open: a file ending exactly at t0, or starting exactly
// at tf, does not overlap.
type Window struct {
	t0, tf       float64
	hasT0, hasTF bool
}

// AllTime returns a window with no bounds; every matched file survives it.
func AllTime() Window {
	return Window{}
}

// Since returns a window bounded below: files with data at or after t0.
func Since(t0 float64) Window {
	return Window{t0: t0, hasT0: true}
}

// Until returns a window bounded above: files with data before tf.
func Until(tf float64) Window {
	return Window{tf: tf, hasTF: true}
}

// Between returns a window bounded on both sides, covering [t0, tf).
func Between(t0, tf float64) Window {
	return Window{t0: t0, tf: tf, hasT0: true, hasTF: true}
}

// Start returns the lower bound and whether one is set.
func (w Window) Start() (float64, bool) {
	return w.t0, w.hasT0
}

// End returns the upper bound and whether one is set.
func (w Window) End() (float64, bool) {
	return w.tf, w.hasTF
}

// Unbounded reports whether the window has no bounds at all.
func (w Window) Unbounded() bool {
	return !w.hasT0 && !w.hasTF
}

// overlaps reports whether [start, stop) intersects the window.
// The two bound tests are independent; an unset bound always passes.
func (w Window) overlaps(start, stop float64) bool {
	if w.hasTF && start >= w.tf {
		return false
	}
	if w.hasT0 && stop <= w.t0 {
		return false
	}

	return true
}
