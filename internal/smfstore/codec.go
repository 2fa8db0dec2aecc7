package smfstore

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	// ErrDecode is returned when a persisted image is not a readable SMF.
	ErrDecode = errors.New("smfstore: cannot decode SMF")
	// ErrEncode is returned when events cannot be represented in an SMF.
	ErrEncode = errors.New("smfstore: cannot encode SMF")
)

// encode writes events, which must be time ordered MIDI events, as a
// single-track SMF with one tick per Beats unit.
func encode(events []contracts.Event) ([]byte, error) {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(contracts.TicksPerBeat)

	var tr smf.Track
	var prev contracts.Beats
	for _, ev := range events {
		if !storable(ev) {
			return nil, fmt.Errorf("%w: event of type %d at %d", ErrEncode, ev.Type, ev.Time)
		}
		delta := ev.Time - prev
		if delta < 0 || delta > math.MaxUint32 {
			return nil, fmt.Errorf("%w: delta of %d ticks before event at %d", ErrEncode, delta, ev.Time)
		}
		tr.Add(uint32(delta), ev.Buffer)
		prev = ev.Time
	}
	tr.Close(0)
	if err := sm.Add(tr); err != nil {
		return nil, fmt.Errorf("smfstore: add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("smfstore: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// storable reports whether ev has a form the SMF image can hold.
func storable(ev contracts.Event) bool {
	return ev.Type == contracts.MIDIEventType && len(ev.Buffer) > 0
}

// decode reads every non-meta message of every track, rescaled to Beats.
func decode(data []byte) ([]contracts.Event, error) {
	if len(data) == 0 {
		return nil, nil
	}
	sm, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	resolution := int64(contracts.TicksPerBeat)
	if mt, ok := sm.TimeFormat.(smf.MetricTicks); ok && mt.Resolution() > 0 {
		resolution = int64(mt.Resolution())
	}

	var events []contracts.Event
	for _, tr := range sm.Tracks {
		var abs int64
		for _, ev := range tr {
			abs += int64(ev.Delta)
			if ev.Message.IsMeta() {
				continue
			}
			buf := make([]byte, len(ev.Message))
			copy(buf, ev.Message)
			events = append(events, contracts.Event{
				Time:   contracts.Beats(abs * contracts.TicksPerBeat / resolution),
				Type:   contracts.MIDIEventType,
				Buffer: buf,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events, nil
}
