package state

// DefaultPoolCapacity is the number of handles kept in reserve.
const DefaultPoolCapacity = 20

// IDPool keeps a reserve of unused handles so a commit never has to call
// the generator in the middle of a gesture.
type IDPool struct {
	gen  Generator
	free []Handle
}

// NewIDPool returns an empty pool backed by gen.
func NewIDPool(gen Generator) *IDPool {
	return &IDPool{gen: gen}
}

// EnsureCapacity grows the pool from the generator until it holds target
// handles, or discards extras if it holds more.
func (p *IDPool) EnsureCapacity(target int) {
	if target < 0 {
		target = 0
	}
	for len(p.free) < target {
		p.free = append(p.free, p.gen.Next())
	}
	if len(p.free) > target {
		clear(p.free[target:])
		p.free = p.free[:target]
	}
}

// Acquire removes and returns the most recently added handle.
// ok is false when the pool is empty.
func (p *IDPool) Acquire() (h Handle, ok bool) {
	n := len(p.free)
	if n == 0 {
		return "", false
	}
	h = p.free[n-1]
	p.free[n-1] = ""
	p.free = p.free[:n-1]
	return h, true
}

// Len returns the number of unused handles.
func (p *IDPool) Len() int {
	return len(p.free)
}
