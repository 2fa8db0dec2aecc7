// Package notes tracks which notes are sounding in a MIDI stream.
package notes

import (
	"github.com/leandrodaf/timeline/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// Set counts sounding notes per channel and key. A key pressed twice needs
// two note-offs.
type Set struct {
	on    [16][128]uint8
	total int
}

// Add marks a note on.
func (s *Set) Add(channel, key uint8) {
	if channel > 15 || key > 127 || s.on[channel][key] == 255 {
		return
	}
	s.on[channel][key]++
	s.total++
}

// Remove releases one instance of a note; releasing a silent note is a no-op.
func (s *Set) Remove(channel, key uint8) {
	if channel > 15 || key > 127 || s.on[channel][key] == 0 {
		return
	}
	s.on[channel][key]--
	s.total--
}

// Active reports whether the note is sounding.
func (s *Set) Active(channel, key uint8) bool {
	if channel > 15 || key > 127 {
		return false
	}
	return s.on[channel][key] > 0
}

// Len returns the number of sounding note instances.
func (s *Set) Len() int {
	return s.total
}

// Clear silences every note.
func (s *Set) Clear() {
	if s.total == 0 {
		return
	}
	s.on = [16][128]uint8{}
	s.total = 0
}

// Track applies a MIDI message. Note-on with velocity zero counts as note-off.
func (s *Set) Track(buf []byte) {
	msg := midi.Message(buf)
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		s.Add(channel, key)
	case msg.GetNoteEnd(&channel, &key):
		s.Remove(channel, key)
	}
}

// Each calls fn for every sounding note instance.
func (s *Set) Each(fn func(channel, key uint8)) {
	if s.total == 0 {
		return
	}
	for ch := range s.on {
		for key, n := range s.on[ch] {
			for i := uint8(0); i < n; i++ {
				fn(uint8(ch), uint8(key))
			}
		}
	}
}

// Tracker is a contracts.NoteTracker that can close the notes it saw.
type Tracker struct {
	Set
}

var _ contracts.NoteTracker = (*Tracker)(nil)

// Resolve writes a note-off at time for every sounding note and clears the set.
func (t *Tracker) Resolve(dst contracts.Sink, time contracts.Samples) int {
	n := 0
	t.Each(func(channel, key uint8) {
		off := midi.NoteOff(channel, key)
		dst.Write(time, contracts.MIDIEventType, len(off), off)
		n++
	})
	t.Clear()
	return n
}
