package sequence

import (
	"testing"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/notes"
	"github.com/leandrodaf/timeline/sdk/tempo"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
)

type written struct {
	pos contracts.Samples
	buf []byte
}

type sink struct{ got []written }

func (s *sink) Write(pos contracts.Samples, _ contracts.EventType, size int, buf []byte) int {
	s.got = append(s.got, written{pos, append([]byte(nil), buf[:size]...)})
	return size
}

// rechannel moves everything to channel 3 and rejects note 61.
type rechannel struct{}

func (rechannel) Filter(buf []byte) bool {
	buf[0] = buf[0]&0xF0 | 3
	return len(buf) > 1 && buf[1] == 61
}

func TestDeliverFiltersACopy(t *testing.T) {
	tm := tempo.NewConstant(120, 48000)
	e := ev(1, midi.NoteOn(0, 60, 100))
	rejected := ev(1, midi.NoteOn(0, 61, 100))
	var tracker notes.Tracker
	req := &contracts.ReadRequest{Filter: rechannel{}, Tracker: &tracker}

	var dst sink
	scratch := Deliver(&dst, tm, req, e.Time, &e, nil)
	Deliver(&dst, tm, req, rejected.Time, &rejected, scratch)

	if assert.Len(t, dst.got, 1) {
		assert.Equal(t, contracts.Samples(24000), dst.got[0].pos)
		assert.Equal(t, byte(0x93), dst.got[0].buf[0])
	}
	assert.Equal(t, byte(0x90), e.Buffer[0], "stored event untouched")
	assert.Equal(t, 2, tracker.Len(), "tracker sees filtered events too")
}

func TestDeliverSquishesIntoLoop(t *testing.T) {
	tm := tempo.NewConstant(120, 48000)
	e := ev(5, midi.ControlChange(0, 7, 1))
	req := &contracts.ReadRequest{Loop: tempo.Loop{Start: 0, End: 48000}}

	var dst sink
	Deliver(&dst, tm, req, e.Time, &e, nil)

	assert.Equal(t, contracts.Samples(24000), dst.got[0].pos)
}
