// Package ring buffers captured events between an input device and the
// writer that appends them to a source.
package ring

import (
	"sync"

	"github.com/leandrodaf/timeline/sdk/contracts"
)

// Ring is a bounded FIFO of captured events. Push never blocks: when the
// ring is full the event is dropped and Push reports false.
type Ring struct {
	mu      sync.Mutex
	buf     []contracts.TimedEvent
	head    int
	size    int
	dropped uint64
}

var (
	_ contracts.RingSource = (*Ring)(nil)
	_ contracts.RingWriter = (*Ring)(nil)
)

// New returns a ring holding up to capacity events.
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]contracts.TimedEvent, capacity)}
}

// Push appends ev.
func (r *Ring) Push(ev contracts.TimedEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size == len(r.buf) {
		r.dropped++
		return false
	}
	r.buf[(r.head+r.size)%len(r.buf)] = ev
	r.size++
	return true
}

// Next pops the oldest event if it is stamped before limit.
func (r *Ring) Next(limit contracts.Samples) (contracts.TimedEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size == 0 || r.buf[r.head].Time >= limit {
		return contracts.TimedEvent{}, false
	}
	ev := r.buf[r.head]
	r.buf[r.head] = contracts.TimedEvent{}
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return ev, true
}

// Len returns the number of buffered events.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Dropped returns how many events Push rejected.
func (r *Ring) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
