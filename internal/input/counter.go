package input

// Counter tracks the cube's wrapping 8-bit move counter.
type Counter struct {
	value  uint8
	seeded bool
}

// Seed sets the counter from a full state snapshot.
func (c *Counter) Seed(v uint8) {
	c.value = v
	c.seeded = true
}

// Seeded reports whether a snapshot has been seen.
func (c *Counter) Seeded() bool { return c.seeded }

// Value returns the last accepted counter value.
func (c *Counter) Value() uint8 { return c.value }

// Advance accepts a counter reported alongside the last max moves and
// returns how many of those moves are new. The distance is taken modulo
// 256 as a signed byte. A counter at most max behind the current one is a
// stale report: it yields zero and leaves the counter unchanged. Any other
// distance moves the counter to next. More than max new moves, or a jump
// further back than max, means reports were lost; lost is true and the
// result is clamped to max, or zero for a backward jump.
func (c *Counter) Advance(next uint8, max int) (fresh int, lost bool) {
	delta := int(int8(next - c.value))
	switch {
	case delta <= 0 && delta >= -max:
		return 0, false
	case delta < 0:
		c.value = next
		return 0, true
	}
	c.value = next
	if delta > max {
		return max, true
	}
	return delta, false
}
