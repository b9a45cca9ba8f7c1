package lang

// DepthTracker counts parenthesis groups in the buffer. Opening always equals
// the number of unmatched '(' tokens.
type DepthTracker struct {
	Opening int
	Closing int
	Highest int
}

// Rank returns the effective rank of an operator entered at the current depth.
func (d *DepthTracker) Rank(base int) int {
	return EffectiveRank(base, d.Opening)
}

// Open records a new '('. Re-entering a previously closed slot gives back
// one closing count.
func (d *DepthTracker) Open() {
	d.Opening++
	if d.Closing > 0 {
		d.Closing--
	}
	d.Highest = max(d.Highest, d.Opening)
}

// CanClose reports whether the depth bookkeeping allows a ')'. The caller
// still has to check that the buffer ends in a complete operand or group.
func (d *DepthTracker) CanClose() bool {
	return d.Opening > 0 && d.Closing < d.Highest
}

// Close records a ')'. Once every opened group is closed the tracker resets.
func (d *DepthTracker) Close() {
	d.Closing++
	d.Opening--
	if d.Closing >= d.Highest {
		d.Reset()
	}
}

// UndoClose reverses a Close after its ')' was deleted.
func (d *DepthTracker) UndoClose() {
	d.Open()
}

// UndoOpen reverses an Open after its '(' was deleted.
func (d *DepthTracker) UndoOpen() {
	d.Opening--
	d.Closing = min(d.Closing+1, d.Highest)
	if d.Opening <= 0 {
		d.Reset()
	}
}

// Reset zeroes all counters.
func (d *DepthTracker) Reset() {
	*d = DepthTracker{}
}
