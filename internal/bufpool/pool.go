// Package bufpool provides recycling of fixed-size byte buffers used as
// tile pixel staging memory.
//
// A Handle holds an ordinary pointer back to its Pool; Go's tracing GC
// means an abandoned Pool is reclaimed normally once the last Handle is
// gone, so no weak references are needed. Release is the explicit analogue
// of dropping the handle.
package bufpool

import "sync"

// Pool is a bag of recycled fixed-size byte buffers plus a count of
// outstanding allocations. Safe for concurrent use.
type Pool struct {
	mu          sync.Mutex
	bufSize     int
	free        [][]byte
	outstanding uint32
}

// New creates a Pool of buffers of size bufSize, pre-allocating reserve
// zero-filled buffers.
func New(bufSize, reserve int) *Pool {
	p := &Pool{
		bufSize: bufSize,
		free:    make([][]byte, 0, reserve),
	}
	for range reserve {
		p.free = append(p.free, make([]byte, bufSize))
	}
	return p
}

// Handle is an owning reference to a pooled byte buffer. Release returns
// the buffer to its pool (or simply drops it, if the pool has since been
// discarded by every other referent — in Go terms, if nothing else is
// reachable from the Pool, the GC reclaims it normally; Release only needs
// to guard against double-release).
type Handle struct {
	pool     *Pool
	buf      []byte
	released bool
}

// Take pops an available buffer, or allocates a fresh one if the free list
// is empty. Every buffer returned has exactly the pool's configured size;
// content is not zeroed between reuses, callers are expected to overwrite
// it fully.
func (p *Pool) Take() *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	var buf []byte
	if n := len(p.free); n > 0 {
		buf = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		buf = make([]byte, p.bufSize)
	}
	p.outstanding++

	return &Handle{pool: p, buf: buf}
}

// Bytes returns the handle's buffer for exclusive read/write access. The
// caller must not retain the slice past Release.
func (h *Handle) Bytes() []byte {
	return h.buf
}

// Release returns the underlying storage to the pool. Safe to call more
// than once; subsequent calls are no-ops. Callers typically defer it.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true

	p := h.pool
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, h.buf)
	if p.outstanding > 0 {
		p.outstanding--
	}
	h.buf = nil
}

// Outstanding reports the number of buffers currently taken but not yet
// released. Diagnostics only.
func (p *Pool) Outstanding() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outstanding
}

// Available reports the number of buffers currently sitting in the free
// list, ready for reuse.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
