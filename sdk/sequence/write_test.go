package sequence

import (
	"testing"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func capture(m *Model) {
	m.StartWrite()
	// appended out of order on purpose
	m.Append(ev(1, midi.NoteOff(0, 60)))
	m.Append(ev(0, midi.NoteOn(0, 60, 100)))
	m.Append(ev(2, midi.NoteOn(0, 62, 100))) // never released
	m.Append(ev(1.5, midi.ControlChange(0, 1, 10)))
}

func TestEndWriteDeletesStuckNotes(t *testing.T) {
	m := New(nil)
	capture(m)
	require.True(t, m.Writing())

	stuck := m.EndWrite(contracts.DeleteStuckNotes, contracts.BeatsOf(4))

	assert.False(t, m.Writing())
	assert.Equal(t, []contracts.StuckNote{{Channel: 0, Note: 62, Time: contracts.BeatsOf(2), Resolved: false}}, stuck)
	got := m.Events()
	assert.Equal(t, []contracts.Beats{0, 1920, 2880}, times(got))
	for _, e := range got {
		assert.NotEqual(t, []byte(midi.NoteOn(0, 62, 100)), e.Buffer)
	}
}

func TestEndWriteResolvesStuckNotes(t *testing.T) {
	m := New(nil)
	capture(m)

	stuck := m.EndWrite(contracts.ResolveStuckNotes, contracts.BeatsOf(4))

	require.Len(t, stuck, 1)
	assert.True(t, stuck[0].Resolved)
	got := m.Events()
	require.Len(t, got, 5)
	last := got[len(got)-1]
	assert.Equal(t, contracts.BeatsOf(4), last.Time)
	assert.Equal(t, []byte(midi.NoteOff(0, 62)), last.Buffer)
}

func TestEndWriteCannotResolveBeforeNoteOn(t *testing.T) {
	m := New(nil)
	m.StartWrite()
	m.Append(ev(3, midi.NoteOn(2, 50, 100)))

	stuck := m.EndWrite(contracts.ResolveStuckNotes, contracts.BeatsOf(3))

	assert.Equal(t, []contracts.StuckNote{{Channel: 2, Note: 50, Time: contracts.BeatsOf(3)}}, stuck)
	assert.Zero(t, m.Len())
}

func TestEndWritePairsRepeatedNotesOldestFirst(t *testing.T) {
	m := New(nil)
	m.StartWrite()
	m.Append(ev(0, midi.NoteOn(0, 60, 100)))
	m.Append(ev(1, midi.NoteOn(0, 60, 100)))
	m.Append(ev(2, midi.NoteOn(0, 60, 0))) // velocity zero closes the first one

	stuck := m.EndWrite(contracts.DeleteStuckNotes, contracts.BeatsOf(8))

	require.Len(t, stuck, 1)
	assert.Equal(t, contracts.BeatsOf(1), stuck[0].Time)
	assert.Equal(t, []contracts.Beats{0, contracts.BeatsOf(2)}, times(m.Events()))
}

func TestEndWriteWithoutSession(t *testing.T) {
	m := New([]contracts.Event{ev(0, midi.NoteOn(0, 60, 100))})
	assert.Nil(t, m.EndWrite(contracts.DeleteStuckNotes, 0))
	assert.Equal(t, 1, m.Len())
}
