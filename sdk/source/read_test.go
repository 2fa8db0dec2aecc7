package source

import (
	"sync"
	"testing"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/notes"
	"github.com/leandrodaf/timeline/sdk/sequence"
	"github.com/leandrodaf/timeline/sdk/tempo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func song() []contracts.Event {
	return []contracts.Event{
		ev(0, midi.NoteOn(0, 60, 100)),
		ev(0.5, midi.ControlChange(0, 7, 90)),
		ev(1, midi.NoteOff(0, 60)),
		ev(1, midi.NoteOn(0, 64, 100)),
		ev(2, midi.NoteOff(0, 64)),
		ev(2.5, midi.ControlChange(0, 7, 40)),
		ev(3, midi.NoteOn(1, 67, 80)),
		ev(4, midi.NoteOff(1, 67)),
	}
}

func TestReadWindowsAreCompleteAndOrdered(t *testing.T) {
	s := newModelSource(t, song()...)
	c := NewCursor()
	defer c.Close()

	var all []written
	for start := beats(0); start < beats(5); start += beats(1) {
		got := read(s, c, start, beats(1))
		for _, w := range got {
			assert.GreaterOrEqual(t, w.pos, testTempo.BeatsToSamples(start))
			assert.Less(t, w.pos, testTempo.BeatsToSamples(start+beats(1)))
		}
		all = append(all, got...)
	}

	require.Len(t, all, len(song()))
	for i, e := range song() {
		assert.Equal(t, testTempo.BeatsToSamples(e.Time), all[i].pos)
		assert.Equal(t, []byte(e.Buffer), all[i].buf)
	}
}

func TestReadReturnsRequestedCount(t *testing.T) {
	s := newModelSource(t)
	rl := s.AcquireReader()
	defer rl.Release()

	var r recorder
	n := s.Read(rl, &r, NewCursor(), contracts.ReadRequest{Start: beats(3), Count: beats(2)})
	assert.Equal(t, beats(2), n)
	assert.Empty(t, r.got)
}

func TestReadSplitEqualsSingleRead(t *testing.T) {
	s := newModelSource(t, song()...)

	whole := read(s, NewCursor(), 0, beats(4))

	c := NewCursor()
	split := append(read(s, c, 0, beats(1.5)), read(s, c, beats(1.5), beats(2.5))...)
	assert.Equal(t, beats(4), c.LastReadEnd())

	assert.Equal(t, whole, split)
}

func TestReadHonoursSourceStart(t *testing.T) {
	s := newModelSource(t, song()...)
	rl := s.AcquireReader()
	defer rl.Release()

	var r recorder
	s.Read(rl, &r, NewCursor(), contracts.ReadRequest{SourceStart: beats(10), Start: beats(1), Count: beats(1)})
	assert.Equal(t, []contracts.Samples{
		testTempo.BeatsToSamples(beats(11)),
		testTempo.BeatsToSamples(beats(11)),
	}, r.positions())
}

func TestCursorsAreIsolated(t *testing.T) {
	s := newModelSource(t, song()...)
	want := map[contracts.Beats][]written{
		0:        read(s, NewCursor(), 0, beats(4)),
		beats(1): read(s, NewCursor(), beats(1), beats(4)),
	}

	var wg sync.WaitGroup
	results := make([][]written, 2)
	for i, start := range []contracts.Beats{0, beats(1)} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := NewCursor()
			defer c.Close()
			for pos := start; pos < start+beats(4); pos += beats(0.25) {
				rl := s.AcquireReader()
				var r recorder
				s.Read(rl, &r, c, contracts.ReadRequest{Start: pos, Count: beats(0.25)})
				rl.Release()
				results[i] = append(results[i], r.got...)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, want[0], results[0])
	assert.Equal(t, want[beats(1)], results[1])
}

func TestInvalidationForcesReseed(t *testing.T) {
	s := newModelSource(t, song()...)
	c := NewCursor()
	read(s, c, 0, beats(1))

	wl := s.AcquireWriter()
	require.NoError(t, s.Edit(wl, func(m *sequence.Model) {
		m.Insert(ev(1.5, midi.ControlChange(0, 1, 10)))
	}))
	wl.Release()

	fresh := read(s, NewCursor(), beats(1), beats(1))
	assert.Equal(t, fresh, read(s, c, beats(1), beats(1)))
	require.Len(t, fresh, 3)

	wl = s.AcquireWriter()
	s.Invalidate(wl)
	wl.Release()
	assert.True(t, c.stale.Load(), "invalidation is applied on the next read")

	assert.Equal(t, read(s, NewCursor(), beats(2), beats(1)), read(s, c, beats(2), beats(1)))
}

func TestInvalidationClearsActiveNotesWhenStopped(t *testing.T) {
	s := newModelSource(t, song()...)
	c := NewCursor()
	read(s, c, 0, beats(0.5))
	assert.True(t, c.ActiveNotes().Active(0, 60))

	wl := s.AcquireWriter()
	s.Invalidate(wl)
	wl.Release()

	c.settle()
	assert.Zero(t, c.ActiveNotes().Len())
}

func TestSeekRebuildsActiveNotes(t *testing.T) {
	s := newModelSource(t, song()...)
	c := NewCursor()
	read(s, c, beats(1.5), beats(0.25))

	assert.True(t, c.ActiveNotes().Active(0, 64))
	assert.False(t, c.ActiveNotes().Active(0, 60))
}

func TestReadWithoutModelUsesStore(t *testing.T) {
	s := newSource(t)
	wl := s.AcquireWriter()
	require.NoError(t, s.ReplaceContents(wl, song()))
	wl.Release()

	got := read(s, NewCursor(), beats(1), beats(1))
	require.Len(t, got, 2)
	assert.Equal(t, []byte(midi.NoteOff(0, 60)), got[0].buf)
	assert.Equal(t, []byte(midi.NoteOn(0, 64, 100)), got[1].buf)
}

func TestReadRemapsIntoLoop(t *testing.T) {
	s := newModelSource(t, song()...)
	rl := s.AcquireReader()
	defer rl.Release()

	var r recorder
	loop := tempo.Loop{Start: 0, End: testTempo.BeatsToSamples(beats(2))}
	s.Read(rl, &r, NewCursor(), contracts.ReadRequest{Start: beats(2), Count: beats(1), Loop: loop})
	assert.Equal(t, []contracts.Samples{0, testTempo.BeatsToSamples(beats(0.5))}, r.positions())
}

type rechannel uint8

func (c rechannel) Filter(buf []byte) bool {
	if buf[0]&0x0F == 1 {
		return true
	}
	buf[0] = buf[0]&0xF0 | byte(c)
	return false
}

func TestReadFiltersACopyAndTracksEverything(t *testing.T) {
	s := newModelSource(t, song()...)
	rl := s.AcquireReader()
	defer rl.Release()

	var r recorder
	var tracker notes.Tracker
	s.Read(rl, &r, NewCursor(), contracts.ReadRequest{
		Count:   beats(5),
		Filter:  rechannel(9),
		Tracker: &tracker,
	})

	require.Len(t, r.got, 6, "channel 1 events are dropped")
	for _, w := range r.got {
		assert.Equal(t, byte(9), w.buf[0]&0x0F)
	}
	assert.Zero(t, tracker.Len(), "the tracker saw the dropped pair too")

	for _, e := range s.Model(rl).Events() {
		assert.NotEqual(t, byte(9), e.Buffer[0]&0x0F)
	}
}

func TestReadSkipsExcludedParameters(t *testing.T) {
	s := newModelSource(t, song()...)
	rl := s.AcquireReader()
	defer rl.Release()

	var r recorder
	s.Read(rl, &r, NewCursor(), contracts.ReadRequest{
		Count:    beats(5),
		Excluded: contracts.NewParameterSet(contracts.CC(0, 7)),
	})
	assert.Len(t, r.got, len(song())-2)
	for _, w := range r.got {
		_, ok := contracts.ParameterOf(w.buf)
		assert.False(t, ok)
	}
}

func TestReadOpenEndedCount(t *testing.T) {
	for _, withModel := range []bool{true, false} {
		s := newSource(t)
		wl := s.AcquireWriter()
		require.NoError(t, s.ReplaceContents(wl, song()))
		if withModel {
			require.NoError(t, s.LoadModel(wl, false))
		}
		wl.Release()

		rl := s.AcquireReader()
		c := NewCursor()
		var r recorder
		n := s.Read(rl, &r, c, contracts.ReadRequest{SourceStart: beats(1), Start: beats(3), Count: contracts.MaxBeats})
		rl.Release()

		assert.Equal(t, contracts.MaxBeats, n)
		assert.Equal(t, []contracts.Samples{
			testTempo.BeatsToSamples(beats(4)),
			testTempo.BeatsToSamples(beats(5)),
		}, r.positions(), "model attached: %v", withModel)
		if withModel {
			assert.Equal(t, contracts.MaxBeats, c.lastReadEnd)
		}
		c.Close()
	}
}

func TestReadWithoutModelKeepsCursorScratch(t *testing.T) {
	s := newSource(t)
	wl := s.AcquireWriter()
	require.NoError(t, s.ReplaceContents(wl, song()))
	wl.Release()

	rl := s.AcquireReader()
	defer rl.Release()
	require.False(t, s.HasModel(rl))

	c := NewCursor()
	defer c.Close()
	var r recorder
	s.Read(rl, &r, c, contracts.ReadRequest{Count: beats(5), Filter: rechannel(9)})
	require.NotEmpty(t, c.scratch[:cap(c.scratch)])
	buf := &c.scratch[:1][0]

	s.Read(rl, &r, c, contracts.ReadRequest{Count: beats(5), Filter: rechannel(9)})
	assert.Same(t, buf, &c.scratch[:1][0])
	assert.Len(t, r.got, 12)
}
