package input

import (
	"time"

	"github.com/leandrodaf/timeline/sdk/contracts"
)

// SampleClock counts samples at Rate since Start on the wall clock.
type SampleClock struct {
	Rate  int
	Start time.Time

	now func() time.Time
}

var _ contracts.Clock = SampleClock{}

// NewSampleClock returns a clock at rate samples per second whose zero is start.
func NewSampleClock(rate int, start time.Time) SampleClock {
	return SampleClock{Rate: rate, Start: start}
}

// Now returns the sample position of the current instant.
func (c SampleClock) Now() contracts.Samples {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	elapsed := now().Sub(c.Start)
	rate := int64(c.Rate)
	whole, frac := int64(elapsed/time.Second), int64(elapsed%time.Second)
	return contracts.Samples(whole*rate + frac*rate/int64(time.Second))
}
