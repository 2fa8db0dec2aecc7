package source

import (
	"github.com/leandrodaf/timeline/sdk/contracts"
)

// StartCapture enters the capturing state; an attached model opens a write
// session.
func (s *Source) StartCapture(wl WriterLock) {
	s.checkWriter(wl)
	if s.model != nil {
		s.model.StartWrite()
	}
	s.writing = true
	s.log.Info("capture started", s.log.Field().String("source", s.Name()))
}

// MarkCaptureStart anchors the source at position and seeds the capture
// length. It is called when recording actually begins, which can be later
// than StartCapture. The nominal length is kept in beats, as older sessions
// did, rather than in samples.
func (s *Source) MarkCaptureStart(wl WriterLock, position, captureLength contracts.Samples) {
	s.checkWriter(wl)
	s.naturalPosition = position
	s.captureLength = captureLength
	s.length = s.tempo.SamplesToBeats(position+captureLength) - s.tempo.SamplesToBeats(position)
}

// Write appends the captured events of the next count samples from src.
// A count of contracts.MaxSamples drains src completely and is the final
// write of a capture: cursors are invalidated and the capture length stays
// as it is.
func (s *Source) Write(wl WriterLock, src contracts.RingSource, sourceStart, count contracts.Samples) contracts.Samples {
	s.checkWriter(wl)

	limit := contracts.MaxSamples
	if count != contracts.MaxSamples {
		limit = sourceStart + s.captureLength + count
	}
	var toModel func(contracts.Event)
	if s.model != nil && s.model.Writing() {
		toModel = s.model.Append
	}
	n := s.store.Write(src, s.tempo, sourceStart, limit, toModel)
	if n > 0 {
		s.log.Debug("captured events", s.log.Field().String("source", s.Name()), s.log.Field().Int("events", n))
	}

	if count == contracts.MaxSamples {
		s.invalidate()
	} else {
		s.captureLength += count
	}
	return count
}

// EndCapture finishes a capture. An attached model resolves unterminated
// notes with policy at duration, and every control it holds switches to
// discrete interpolation so captured input plays back exactly as played;
// that choice is recorded as an explicit overlay. Cursors are invalidated.
func (s *Source) EndCapture(wl WriterLock, policy contracts.StuckNotePolicy, duration contracts.Beats) []contracts.StuckNote {
	s.checkWriter(wl)

	var stuck []contracts.StuckNote
	if s.model != nil {
		stuck = s.model.EndWrite(policy, duration)
		for _, n := range stuck {
			s.log.Warn("stuck note at end of capture",
				s.log.Field().String("source", s.Name()),
				s.log.Field().String("policy", policy.String()),
				s.log.Field().Uint8("channel", n.Channel),
				s.log.Field().Uint8("note", n.Note),
				s.log.Field().Int64("time", int64(n.Time)),
				s.log.Field().Bool("resolved", n.Resolved))
		}
		for _, p := range s.model.Controls() {
			s.interpolation[p] = contracts.Discrete
		}
	}

	s.invalidate()
	s.writing = false
	s.log.Info("capture finished",
		s.log.Field().String("source", s.Name()),
		s.log.Field().Int64("captureLength", int64(s.captureLength)))
	return stuck
}

// EndCaptureDefault finishes a capture deleting stuck notes.
func (s *Source) EndCaptureDefault(wl WriterLock, duration contracts.Beats) []contracts.StuckNote {
	return s.EndCapture(wl, contracts.DeleteStuckNotes, duration)
}
