package state

// Clock is a Lamport clock used to stamp committed strokes.
type Clock struct {
	counter uint64
}

// Tick advances the clock and returns the new time.
func (c *Clock) Tick() uint64 {
	c.counter++
	return c.counter
}

// Observe moves the clock forward past a timestamp seen on another site.
func (c *Clock) Observe(ts uint64) {
	if ts > c.counter {
		c.counter = ts
	}
}

