package sequence

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// Writing reports whether a write session is open.
func (m *Model) Writing() bool {
	return m.writing
}

// StartWrite opens a write session.
func (m *Model) StartWrite() {
	m.writing = true
}

// Append adds ev, in any order relative to earlier appends. The event is
// placed after existing events with the same time.
func (m *Model) Append(ev contracts.Event) {
	m.Insert(ev)
}

// EndWrite closes the write session, applying policy to every note-on that
// never got its note-off, and returns what was done to each of them.
// Note-offs are matched to the oldest sounding note-on of the same key.
func (m *Model) EndWrite(policy contracts.StuckNotePolicy, duration contracts.Beats) []contracts.StuckNote {
	if !m.writing {
		return nil
	}
	m.writing = false

	open := make(map[noteKey][]int)
	for i, ev := range m.events {
		msg := midi.Message(ev.Buffer)
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			k := noteKey{channel, key}
			open[k] = append(open[k], i)
		case msg.GetNoteEnd(&channel, &key):
			k := noteKey{channel, key}
			if pending := open[k]; len(pending) > 0 {
				open[k] = pending[1:]
			}
		}
	}

	var stuck []contracts.StuckNote
	drop := make(map[int]bool)
	var closing []contracts.Event
	for k, pending := range open {
		for _, idx := range pending {
			on := m.events[idx]
			report := contracts.StuckNote{Channel: k.channel, Note: k.key, Time: on.Time}
			if policy == contracts.ResolveStuckNotes && duration > on.Time {
				closing = append(closing, contracts.Event{Time: duration, Type: on.Type, Buffer: midi.NoteOff(k.channel, k.key)})
				report.Resolved = true
			} else {
				drop[idx] = true
			}
			stuck = append(stuck, report)
		}
	}
	if len(stuck) == 0 {
		return nil
	}

	kept := m.events[:0]
	for i, ev := range m.events {
		if !drop[i] {
			kept = append(kept, ev)
		}
	}
	m.events = kept
	slices.SortFunc(closing, func(a, b contracts.Event) int {
		return bytes.Compare(a.Buffer, b.Buffer)
	})
	for _, ev := range closing {
		m.Insert(ev)
	}
	m.edited = true
	m.touch()

	slices.SortFunc(stuck, func(a, b contracts.StuckNote) int {
		if c := cmp.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Channel, b.Channel); c != 0 {
			return c
		}
		return cmp.Compare(a.Note, b.Note)
	})
	return stuck
}
