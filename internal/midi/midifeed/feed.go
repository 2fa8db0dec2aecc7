// Package midifeed turns raw bytes from a platform MIDI driver into
// sample-stamped events on a capture ring.
package midifeed

import (
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

type target struct {
	ring contracts.RingWriter
}

// Feeder is shared by the platform inputs. Feed runs on the driver's
// callback thread; Attach and Detach may be called from any goroutine.
type Feeder struct {
	logger contracts.Logger
	filter *contracts.MIDIEventFilter
	clock  contracts.Clock
	dst    atomic.Pointer[target]
	wg     sync.WaitGroup
}

// New returns a feeder configured from options. options.Clock must be set.
func New(options *contracts.Options) *Feeder {
	return &Feeder{
		logger: options.Logger,
		filter: options.MIDIEventFilter,
		clock:  options.Clock,
	}
}

// Attach starts delivering to dst.
func (f *Feeder) Attach(dst contracts.RingWriter) {
	f.dst.Store(&target{ring: dst})
}

// Attached reports whether a ring is attached.
func (f *Feeder) Attached() bool {
	return f.dst.Load() != nil
}

// Detach stops delivery and waits for callbacks in flight.
func (f *Feeder) Detach() {
	f.dst.Store(nil)
	f.wg.Wait()
}

// Feed stamps every message in data with the current sample position and
// pushes the ones the filter allows. It returns how many were queued.
func (f *Feeder) Feed(data []byte) int {
	f.wg.Add(1)
	defer f.wg.Done()

	t := f.dst.Load()
	if t == nil {
		f.logger.Warn("MIDI input received while no capture is attached")
		return 0
	}

	now := f.clock.Now()
	n := 0
	for _, msg := range Split(data) {
		if !f.filter.Allows(msg[0]) {
			continue
		}
		if msg[0]&0xF0 <= 0x90 {
			f.logger.Debug("MIDI note", f.logger.Field().String("message", midi.Message(msg).String()))
		}
		ev := contracts.TimedEvent{Time: now, Type: contracts.MIDIEventType, Buffer: append([]byte(nil), msg...)}
		if !t.ring.Push(ev) {
			f.logger.Warn("Capture ring full; dropping MIDI event", f.logger.Field().Int64("sample", int64(now)))
			continue
		}
		n++
	}
	return n
}

// Split cuts a packet into complete messages. Running status is not used
// by the drivers we read from; stray data bytes and truncated messages are
// dropped.
func Split(data []byte) [][]byte {
	var out [][]byte
	for i := 0; i < len(data); {
		status := data[i]
		if status < 0x80 {
			i++
			continue
		}
		size := messageSize(data[i:])
		if size == 0 || i+size > len(data) {
			break
		}
		out = append(out, data[i:i+size])
		i += size
	}
	return out
}

func messageSize(data []byte) int {
	status := data[0]
	switch status & 0xF0 {
	case 0x80, 0x90, 0xA0, 0xB0, 0xE0:
		return 3
	case 0xC0, 0xD0:
		return 2
	}
	switch status {
	case 0xF0:
		for i, b := range data {
			if b == 0xF7 {
				return i + 1
			}
		}
		return 0
	case 0xF1, 0xF3:
		return 2
	case 0xF2:
		return 3
	}
	return 1
}
