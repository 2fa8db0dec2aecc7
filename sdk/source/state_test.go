package source

import (
	"testing"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestStateRoundTrip(t *testing.T) {
	a := newSource(t, contracts.WithName("Take 3"))
	wl := a.AcquireWriter()
	a.SetCapturedFor(wl, "Audio 1")
	a.SetInterpolationOf(wl, contracts.CC(0, 74), contracts.Curved)
	a.SetInterpolationOf(wl, contracts.CC(0, 64), contracts.Linear)
	a.SetAutomationStateOf(wl, contracts.PitchBend(1), contracts.Write)
	data, err := a.MarshalState(wl.Reader())
	want := a.State(wl.Reader())
	wl.Release()
	require.NoError(t, err)

	b := newSource(t)
	wl = b.AcquireWriter()
	defer wl.Release()
	require.NoError(t, b.UnmarshalState(wl, data))

	rl := wl.Reader()
	assert.Equal(t, "Audio 1", b.CapturedFor(rl))
	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, "Take 3", b.Name())
	assert.Equal(t, contracts.Curved, b.InterpolationOf(rl, contracts.CC(0, 74)))
	assert.Equal(t, contracts.Linear, b.InterpolationOf(rl, contracts.CC(0, 64)))
	assert.Equal(t, contracts.Write, b.AutomationStateOf(rl, contracts.PitchBend(1)))
	assert.Equal(t, want.Interpolation, b.State(rl).Interpolation)
	assert.Equal(t, want.Automation, b.State(rl).Automation)
}

func TestStateOmitsDefaults(t *testing.T) {
	s := newSource(t)
	wl := s.AcquireWriter()
	defer wl.Release()

	s.SetInterpolationOf(wl, contracts.CC(0, 7), contracts.Discrete)
	s.SetInterpolationOf(wl, contracts.CC(0, 7), contracts.Linear)
	doc := s.State(wl.Reader())
	assert.Empty(t, doc.Interpolation)
	assert.Empty(t, doc.Automation)
	assert.Equal(t, s.ID().String(), doc.ID)
}

func TestStateEntriesAreSorted(t *testing.T) {
	s := newSource(t)
	wl := s.AcquireWriter()
	defer wl.Release()

	s.SetAutomationStateOf(wl, contracts.CC(3, 1), contracts.Off)
	s.SetAutomationStateOf(wl, contracts.CC(0, 1), contracts.Off)
	s.SetAutomationStateOf(wl, contracts.ChannelPressure(0), contracts.Off)

	var got []string
	for _, e := range s.State(wl.Reader()).Automation {
		got = append(got, *e.Parameter)
	}
	assert.Equal(t, []string{"midi-channel-pressure-0", "midicc-0-1", "midicc-3-1"}, got)
}

func TestSetStateLegacyValues(t *testing.T) {
	s := newSource(t)
	wl := s.AcquireWriter()
	defer wl.Release()
	rl := wl.Reader()

	err := s.SetState(wl, contracts.SourceState{
		Interpolation: []contracts.InterpolationEntry{
			contracts.NewInterpolationEntry("midicc-0-7", ""),
			contracts.NewInterpolationEntry("midicc-0-64", ""),
		},
		Automation: []contracts.AutomationEntry{
			contracts.NewAutomationEntry("midi-pitch-bender-0", ""),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, contracts.Discrete, s.InterpolationOf(rl, contracts.CC(0, 7)), "linear by default")
	assert.Equal(t, contracts.Linear, s.InterpolationOf(rl, contracts.CC(0, 64)), "discrete by default")
	assert.Equal(t, contracts.Off, s.AutomationStateOf(rl, contracts.PitchBend(0)))
}

func TestSetStateSkipsUnusableParameters(t *testing.T) {
	s := newSource(t)
	wl := s.AcquireWriter()
	defer wl.Release()
	rl := wl.Reader()

	err := s.SetState(wl, contracts.SourceState{
		Interpolation: []contracts.InterpolationEntry{
			contracts.NewInterpolationEntry("midi-system-exclusive", "linear"),
			contracts.NewInterpolationEntry("gain", "linear"),
			contracts.NewInterpolationEntry("midicc-0-1", "curved"),
		},
		Automation: []contracts.AutomationEntry{
			contracts.NewAutomationEntry("midi-system-exclusive", "off"),
		},
	})
	require.NoError(t, err)
	assert.Len(t, s.InterpolationOverrides(rl), 1)
	assert.Empty(t, s.AutomationOverrides(rl))
}

func TestSetStateMissingProperties(t *testing.T) {
	tests := []struct {
		name string
		doc  contracts.SourceState
		want error
	}{
		{
			name: "interpolation parameter",
			doc:  contracts.SourceState{Interpolation: []contracts.InterpolationEntry{{Style: ptr("linear")}}},
			want: contracts.ErrMissingParameter,
		},
		{
			name: "style",
			doc:  contracts.SourceState{Interpolation: []contracts.InterpolationEntry{{Parameter: ptr("midicc-0-1")}}},
			want: contracts.ErrMissingStyle,
		},
		{
			name: "automation parameter",
			doc:  contracts.SourceState{Automation: []contracts.AutomationEntry{{State: ptr("off")}}},
			want: contracts.ErrMissingParameter,
		},
		{
			name: "state",
			doc:  contracts.SourceState{Automation: []contracts.AutomationEntry{{Parameter: ptr("midicc-0-1")}}},
			want: contracts.ErrMissingState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSource(t)
			wl := s.AcquireWriter()
			defer wl.Release()
			assert.ErrorIs(t, s.SetState(wl, tt.doc), tt.want)
		})
	}
}

func TestSetStateRejectsBadValues(t *testing.T) {
	s := newSource(t)
	wl := s.AcquireWriter()
	defer wl.Release()

	assert.Error(t, s.SetState(wl, contracts.SourceState{
		Interpolation: []contracts.InterpolationEntry{contracts.NewInterpolationEntry("midicc-0-1", "wobbly")},
	}))
	assert.Error(t, s.SetState(wl, contracts.SourceState{
		Automation: []contracts.AutomationEntry{contracts.NewAutomationEntry("midicc-0-1", "sometimes")},
	}))
	assert.Error(t, s.UnmarshalState(wl, []byte("interpolation: [")))
}

func TestSetStateKeepsIdentityWhenAbsent(t *testing.T) {
	s := newSource(t)
	id, name := s.ID(), s.Name()

	wl := s.AcquireWriter()
	defer wl.Release()
	require.NoError(t, s.SetState(wl, contracts.SourceState{CapturedFor: "Bus 2"}))
	assert.Equal(t, id, s.ID())
	assert.Equal(t, name, s.Name())

	require.NoError(t, s.SetState(wl, contracts.SourceState{Name: "renamed"}))
	assert.Equal(t, id, s.ID())
	assert.Equal(t, "renamed", s.Name())

	assert.ErrorIs(t, s.SetState(wl, contracts.SourceState{ID: "not-a-uuid"}), contracts.ErrInvalidID)
	assert.Equal(t, id, s.ID())
}
