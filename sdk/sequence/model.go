// Package sequence holds the editable, beat-ordered event model of a source.
//
// A Model is not safe for concurrent use; the owning source guards it with
// its reader/writer lock.
package sequence

import (
	"slices"
	"sort"

	"github.com/leandrodaf/timeline/sdk/contracts"
)

// Appender receives events transferred out of a model.
type Appender interface {
	Append(ev contracts.Event)
}

// Replacer accepts the complete contents of a model.
type Replacer interface {
	Replace(events []contracts.Event) error
}

type noteKey struct {
	channel, key uint8
}

// Model is an ordered collection of events with an idle and a writing phase.
type Model struct {
	events  []contracts.Event
	writing bool
	edited  bool
	gen     uint64
}

// New returns a model holding copies of events, ordered by time. Untyped
// events are left out.
func New(events []contracts.Event) *Model {
	m := &Model{events: make([]contracts.Event, 0, len(events))}
	for _, ev := range events {
		if ev.Type != contracts.NoEventType {
			m.events = append(m.events, ev.Clone())
		}
	}
	m.sort()
	return m
}

func (m *Model) sort() {
	sort.SliceStable(m.events, func(i, j int) bool {
		return m.events[i].Time < m.events[j].Time
	})
}

func (m *Model) touch() {
	m.gen++
}

// Len returns the number of events.
func (m *Model) Len() int {
	return len(m.events)
}

// Events returns a copy of all events.
func (m *Model) Events() []contracts.Event {
	out := make([]contracts.Event, len(m.events))
	for i, ev := range m.events {
		out[i] = ev.Clone()
	}
	return out
}

// Generation changes whenever the event list changes.
func (m *Model) Generation() uint64 {
	return m.gen
}

// Edited reports whether the model holds changes not yet synced to a store.
func (m *Model) Edited() bool {
	return m.edited
}

// Insert adds ev at its time position, after events with the same time.
// Untyped events are ignored.
func (m *Model) Insert(ev contracts.Event) {
	if ev.Type == contracts.NoEventType {
		return
	}
	i := sort.Search(len(m.events), func(i int) bool {
		return m.events[i].Time > ev.Time
	})
	m.events = slices.Insert(m.events, i, ev.Clone())
	m.edited = true
	m.touch()
}

// RemoveIf deletes every event for which pred returns true.
func (m *Model) RemoveIf(pred func(contracts.Event) bool) int {
	before := len(m.events)
	m.events = slices.DeleteFunc(m.events, pred)
	removed := before - len(m.events)
	if removed > 0 {
		m.edited = true
		m.touch()
	}
	return removed
}

// SyncTo pushes the complete contents into dst and clears the edited flag.
func (m *Model) SyncTo(dst Replacer) error {
	if err := dst.Replace(m.Events()); err != nil {
		return err
	}
	m.edited = false
	return nil
}

// Controls returns the distinct control parameters present in the model.
func (m *Model) Controls() []contracts.Parameter {
	seen := make(contracts.ParameterSet)
	var out []contracts.Parameter
	for _, ev := range m.events {
		p, ok := contracts.ParameterOf(ev.Buffer)
		if !ok || !p.Automatable() || seen.Has(p) {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// WriteTo appends every event to dst.
func (m *Model) WriteTo(dst Appender) {
	for _, ev := range m.events {
		dst.Append(ev.Clone())
	}
}

// WriteSectionTo appends the events with begin <= time < end to dst. With
// offset, times are rebased so that begin becomes zero.
func (m *Model) WriteSectionTo(dst Appender, begin, end contracts.Beats, offset bool) int {
	n := 0
	for _, ev := range m.events[m.lowerBound(begin):] {
		if ev.Time >= end {
			break
		}
		out := ev.Clone()
		if offset {
			out.Time -= begin
		}
		dst.Append(out)
		n++
	}
	return n
}

// lowerBound returns the index of the first event at or after t.
func (m *Model) lowerBound(t contracts.Beats) int {
	return sort.Search(len(m.events), func(i int) bool {
		return m.events[i].Time >= t
	})
}
