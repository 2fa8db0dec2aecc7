package sequence

import (
	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/notes"
)

// Iterator is a position in a model. It goes stale as soon as the model
// changes; the zero value is stale.
type Iterator struct {
	m        *Model
	gen      uint64
	idx      int
	excluded contracts.ParameterSet
}

// Begin returns an iterator at the first event at or after t whose
// parameter is not excluded. When active is non-nil it is rebuilt with the
// notes sounding at t.
func (m *Model) Begin(t contracts.Beats, excluded contracts.ParameterSet, active *notes.Set) Iterator {
	idx := m.lowerBound(t)
	if active != nil {
		active.Clear()
		for _, ev := range m.events[:idx] {
			active.Track(ev.Buffer)
		}
	}
	it := Iterator{m: m, gen: m.gen, idx: idx, excluded: excluded}
	it.skipExcluded()
	return it
}

// ValidFor reports whether the iterator still points into m unchanged.
func (it *Iterator) ValidFor(m *Model) bool {
	return it.m != nil && it.m == m && it.gen == m.gen
}

// Done reports whether the iterator is past the last event.
func (it *Iterator) Done() bool {
	return it.m == nil || it.idx >= len(it.m.events)
}

// Event returns the current event. The model owns it; callers must not
// modify the buffer.
func (it *Iterator) Event() *contracts.Event {
	return &it.m.events[it.idx]
}

// Next advances to the next non-excluded event.
func (it *Iterator) Next() {
	it.idx++
	it.skipExcluded()
}

func (it *Iterator) skipExcluded() {
	if len(it.excluded) == 0 {
		return
	}
	for ; it.idx < len(it.m.events); it.idx++ {
		p, ok := contracts.ParameterOf(it.m.events[it.idx].Buffer)
		if !ok || !it.excluded.Has(p) {
			return
		}
	}
}

// Reset makes the iterator stale.
func (it *Iterator) Reset() {
	*it = Iterator{}
}
