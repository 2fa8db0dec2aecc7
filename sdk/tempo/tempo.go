// Package tempo provides simple tempo maps and loop ranges.
package tempo

import (
	"math"

	"github.com/leandrodaf/timeline/sdk/contracts"
)

// Constant is a tempo map with a single tempo for the whole timeline.
type Constant struct {
	BPM        float64
	SampleRate int
}

// NewConstant returns a constant tempo map.
func NewConstant(bpm float64, sampleRate int) Constant {
	return Constant{BPM: bpm, SampleRate: sampleRate}
}

func (c Constant) samplesPerTick() float64 {
	return 60 * float64(c.SampleRate) / (c.BPM * contracts.TicksPerBeat)
}

// BeatsToSamples implements contracts.TempoMap.
func (c Constant) BeatsToSamples(pos contracts.Beats) contracts.Samples {
	if pos == contracts.MaxBeats {
		return contracts.MaxSamples
	}
	return contracts.Samples(math.Round(float64(pos) * c.samplesPerTick()))
}

// SamplesToBeats implements contracts.TempoMap.
func (c Constant) SamplesToBeats(pos contracts.Samples) contracts.Beats {
	if pos == contracts.MaxSamples {
		return contracts.MaxBeats
	}
	return contracts.Beats(math.Round(float64(pos) / c.samplesPerTick()))
}

// Loop is an active loop range [Start, End) in samples.
type Loop struct {
	Start contracts.Samples
	End   contracts.Samples
}

// Squish folds positions at or past End back into the loop.
func (l Loop) Squish(pos contracts.Samples) contracts.Samples {
	length := l.End - l.Start
	if length <= 0 || pos < l.End {
		return pos
	}
	return l.Start + (pos-l.Start)%length
}
