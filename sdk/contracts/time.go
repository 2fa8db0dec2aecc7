package contracts

import "math"

// TicksPerBeat is the resolution of Beats.
const TicksPerBeat = 1920

// Beats is a tempo-relative musical position or duration, in ticks.
type Beats int64

// Samples is an absolute audio-domain position or duration.
type Samples int64

const (
	// MaxBeats marks an open-ended beat range ("until the end").
	MaxBeats Beats = math.MaxInt64
	// MaxSamples marks an unbounded sample span; a write of this size is terminal.
	MaxSamples Samples = math.MaxInt64
)

// BeatsOf returns whole beats as Beats.
func BeatsOf(beats int64) Beats {
	return Beats(beats * TicksPerBeat)
}

// Add returns b+d, clamped to the Beats range so an open-ended Count does
// not wrap.
func (b Beats) Add(d Beats) Beats {
	switch {
	case d > 0 && b > MaxBeats-d:
		return MaxBeats
	case d < 0 && b < math.MinInt64-d:
		return math.MinInt64
	}
	return b + d
}

// Float returns b in (fractional) beats.
func (b Beats) Float() float64 {
	return float64(b) / TicksPerBeat
}

// TempoMap converts between musical and audio time. Implementations may
// vary tempo along the timeline, so conversions are done per position.
type TempoMap interface {
	BeatsToSamples(pos Beats) Samples
	SamplesToBeats(pos Samples) Beats
}

// LoopRange folds an absolute position into loop-relative coordinates.
type LoopRange interface {
	Squish(pos Samples) Samples
}

// Transport reports the state of the playback engine.
type Transport interface {
	Rolling() bool
}

// Clock returns the current capture position in samples.
type Clock interface {
	Now() Samples
}
