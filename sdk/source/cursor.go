package source

import (
	"sync/atomic"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/notes"
	"github.com/leandrodaf/timeline/sdk/sequence"
	"github.com/leandrodaf/timeline/sdk/signal"
)

// Cursor is the iteration state of one reader. Every playback position that
// reads a source needs its own cursor; a cursor must not be used from two
// goroutines at once.
type Cursor struct {
	lastReadEnd contracts.Beats
	iter        sequence.Iterator
	active      notes.Set
	scratch     []byte

	conn       signal.Connection
	stale      atomic.Bool
	clearNotes atomic.Bool
}

// NewCursor returns a cursor that will seek on its first read.
func NewCursor() *Cursor {
	return &Cursor{}
}

// ActiveNotes returns the notes sounding at the cursor position.
func (c *Cursor) ActiveNotes() *notes.Set {
	return &c.active
}

// LastReadEnd returns the end of the previous read, or zero after a reset.
func (c *Cursor) LastReadEnd() contracts.Beats {
	return c.lastReadEnd
}

// Close drops the cursor's subscription to its source.
func (c *Cursor) Close() {
	c.conn.Disconnect()
}

// subscribe replaces any previous subscription with one to sig.
func (c *Cursor) subscribe(sig *signal.Signal[bool]) {
	c.conn.Disconnect()
	c.stale.Store(false)
	c.clearNotes.Store(false)
	c.conn = sig.Connect(c.invalidate)
}

// invalidate runs on the invalidating goroutine, under the source's
// exclusive lock; it only flags the cursor. The next read applies it.
func (c *Cursor) invalidate(preserveNotes bool) {
	if !preserveNotes {
		c.clearNotes.Store(true)
	}
	c.stale.Store(true)
}

// settle applies a pending invalidation: the iterator is discarded, the
// subscription dropped and, unless preserved, the active notes cleared.
func (c *Cursor) settle() {
	if !c.stale.Swap(false) {
		return
	}
	c.conn.Disconnect()
	if c.clearNotes.Swap(false) {
		c.active.Clear()
	}
	c.iter.Reset()
	c.lastReadEnd = 0
}

// Reset forgets the read position; the next read seeks.
func (c *Cursor) Reset() {
	c.conn.Disconnect()
	c.stale.Store(false)
	c.clearNotes.Store(false)
	c.iter.Reset()
	c.lastReadEnd = 0
	c.active.Clear()
}
