// Package signal is a small observer registry. Observers connect explicitly
// and hold a Connection they must Disconnect; nothing is released implicitly.
package signal

import "sync"

type slotOwner interface {
	disconnect(id uint64)
}

// Connection is the handle of one connected slot. The zero value is a
// disconnected connection.
type Connection struct {
	id    uint64
	owner slotOwner
}

// Disconnect removes the slot. It is safe to call more than once and from
// within the slot itself.
func (c *Connection) Disconnect() {
	if c.owner == nil {
		return
	}
	c.owner.disconnect(c.id)
	c.owner = nil
}

// Connected reports whether Disconnect has not been called yet.
func (c *Connection) Connected() bool {
	return c.owner != nil
}

// Signal broadcasts values of type T to connected slots. The zero value is
// ready to use.
type Signal[T any] struct {
	mu    sync.Mutex
	next  uint64
	slots map[uint64]func(T)
	order []uint64
}

// Connect registers fn and returns its connection.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		s.slots = make(map[uint64]func(T))
	}
	s.next++
	s.slots[s.next] = fn
	s.order = append(s.order, s.next)
	return Connection{id: s.next, owner: s}
}

func (s *Signal[T]) disconnect(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[id]; !ok {
		return
	}
	delete(s.slots, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Emit calls every slot connected at the time of the call, in connection
// order. Slots may connect or disconnect during delivery.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	if len(s.order) == 0 {
		s.mu.Unlock()
		return
	}
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.slots[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of connected slots.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}
