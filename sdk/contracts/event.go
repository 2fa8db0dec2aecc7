package contracts

// EventType tags the payload format of an Event.
type EventType uint32

const (
	// NoEventType is the zero value and never stored.
	NoEventType EventType = iota
	// MIDIEventType marks a raw MIDI message payload.
	MIDIEventType
)

// Event is a single timestamped event stored in beat time.
type Event struct {
	Time   Beats
	Type   EventType
	Buffer []byte
}

// Clone returns a copy of e with its own buffer.
func (e Event) Clone() Event {
	buf := make([]byte, len(e.Buffer))
	copy(buf, e.Buffer)
	return Event{Time: e.Time, Type: e.Type, Buffer: buf}
}

// Status returns the first byte of the payload, or 0 for an empty event.
func (e Event) Status() byte {
	if len(e.Buffer) == 0 {
		return 0
	}
	return e.Buffer[0]
}

// TimedEvent is an event stamped with an absolute sample position, as
// produced by a capture device.
type TimedEvent struct {
	Time   Samples
	Type   EventType
	Buffer []byte
}

// IsChannelEvent reports whether buf holds a channel voice message
// (note off through pitch bend, any channel).
func IsChannelEvent(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	kind := buf[0] & 0xF0
	return kind >= 0x80 && kind <= 0xE0
}

// Sink receives events during a read, at sample positions.
type Sink interface {
	Write(time Samples, typ EventType, size int, buf []byte) int
}

// RingSource is a streaming source of captured events.
type RingSource interface {
	// Next pops the oldest event if its time is before limit.
	Next(limit Samples) (TimedEvent, bool)
}

// RingWriter accepts captured events; Push reports false when the event was dropped.
type RingWriter interface {
	Push(ev TimedEvent) bool
}

// NoteTracker observes every in-range event of a read.
type NoteTracker interface {
	Track(buf []byte)
}

// ChannelFilter decides whether a channel event is delivered. Filter may
// rewrite buf in place and returns true when the event must be dropped.
type ChannelFilter interface {
	Filter(buf []byte) bool
}

// ReadRequest describes one read of a source. SourceStart is the position
// of the source on the timeline; Start and Count are relative to it.
type ReadRequest struct {
	SourceStart Beats
	Start       Beats
	Count       Beats
	Loop        LoopRange
	Tracker     NoteTracker
	Filter      ChannelFilter
	Excluded    ParameterSet
}

// StuckNotePolicy decides what happens to notes still sounding when a
// capture ends.
type StuckNotePolicy int

const (
	// DeleteStuckNotes removes note-ons that never received a note-off.
	DeleteStuckNotes StuckNotePolicy = iota
	// ResolveStuckNotes closes them with a note-off at the capture end.
	ResolveStuckNotes
)

func (p StuckNotePolicy) String() string {
	switch p {
	case DeleteStuckNotes:
		return "delete"
	case ResolveStuckNotes:
		return "resolve"
	}
	return "unknown"
}

// StuckNote reports one note handled by a StuckNotePolicy.
type StuckNote struct {
	Channel  uint8
	Note     uint8
	Time     Beats
	Resolved bool // false: the note-on was deleted
}
