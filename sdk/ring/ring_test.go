package ring

import (
	"sync"
	"testing"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(t contracts.Samples) contracts.TimedEvent {
	return contracts.TimedEvent{Time: t, Type: contracts.MIDIEventType, Buffer: []byte{0x90, 60, 100}}
}

func TestNextRespectsLimit(t *testing.T) {
	r := New(4)
	require.True(t, r.Push(ev(10)))
	require.True(t, r.Push(ev(20)))

	got, ok := r.Next(15)
	require.True(t, ok)
	assert.Equal(t, contracts.Samples(10), got.Time)

	_, ok = r.Next(15)
	assert.False(t, ok, "event at 20 is past the limit")
	assert.Equal(t, 1, r.Len())

	got, ok = r.Next(contracts.MaxSamples)
	require.True(t, ok)
	assert.Equal(t, contracts.Samples(20), got.Time)
}

func TestPushDropsWhenFull(t *testing.T) {
	r := New(2)
	assert.True(t, r.Push(ev(1)))
	assert.True(t, r.Push(ev(2)))
	assert.False(t, r.Push(ev(3)))
	assert.Equal(t, uint64(1), r.Dropped())

	// wraps around after draining
	_, _ = r.Next(contracts.MaxSamples)
	assert.True(t, r.Push(ev(4)))
	a, _ := r.Next(contracts.MaxSamples)
	b, _ := r.Next(contracts.MaxSamples)
	assert.Equal(t, []contracts.Samples{2, 4}, []contracts.Samples{a.Time, b.Time})
}

func TestConcurrentProducerConsumer(t *testing.T) {
	r := New(64)
	const total = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			for !r.Push(ev(contracts.Samples(i))) {
			}
		}
	}()

	var got []contracts.Samples
	for len(got) < total {
		if e, ok := r.Next(contracts.MaxSamples); ok {
			got = append(got, e.Time)
		}
	}
	wg.Wait()

	for i, v := range got {
		require.Equal(t, contracts.Samples(i), v)
	}
}
