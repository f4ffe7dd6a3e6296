package bridge

import "sync/atomic"

// Connected - shared connected state between the two pumps.
// Deliberately just an atomic bool rather than a richer
// synchronization primitive: each pump only ever reads it at its own
// suspension points and writes it once, on its way out.
type Connected struct {
	v atomic.Bool
}

// NewConnected - start in the connected state.
func NewConnected() *Connected {
	c := &Connected{}
	c.v.Store(true)
	return c
}

func (c *Connected) Load() bool     { return c.v.Load() }
func (c *Connected) Store(val bool) { c.v.Store(val) }
