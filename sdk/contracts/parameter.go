package contracts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

// ErrUnknownParameter is returned by ParseParameter for unrecognized symbols.
var ErrUnknownParameter = errors.New("unknown parameter")

// ParameterType is the class of a controllable parameter.
type ParameterType int

const (
	NullParameter ParameterType = iota
	MidiCCParameter
	MidiPgmChangeParameter
	MidiChannelPressureParameter
	MidiNotePressureParameter
	MidiPitchBenderParameter
	MidiSystemExclusiveParameter
)

// Parameter identifies a controllable parameter of a MIDI stream.
type Parameter struct {
	Type    ParameterType
	Channel uint8
	ID      uint8 // controller number or note, when the type has one
}

// CC returns the parameter of a controller on a channel.
func CC(channel, controller uint8) Parameter {
	return Parameter{Type: MidiCCParameter, Channel: channel, ID: controller}
}

// PitchBend returns the pitch bender parameter of a channel.
func PitchBend(channel uint8) Parameter {
	return Parameter{Type: MidiPitchBenderParameter, Channel: channel}
}

// ProgramChange returns the program change parameter of a channel.
func ProgramChange(channel uint8) Parameter {
	return Parameter{Type: MidiPgmChangeParameter, Channel: channel}
}

// ChannelPressure returns the channel aftertouch parameter of a channel.
func ChannelPressure(channel uint8) Parameter {
	return Parameter{Type: MidiChannelPressureParameter, Channel: channel}
}

// NotePressure returns the polyphonic aftertouch parameter of a note.
func NotePressure(channel, note uint8) Parameter {
	return Parameter{Type: MidiNotePressureParameter, Channel: channel, ID: note}
}

// String returns the persisted symbol of p.
func (p Parameter) String() string {
	switch p.Type {
	case MidiCCParameter:
		return fmt.Sprintf("midicc-%d-%d", p.Channel, p.ID)
	case MidiPgmChangeParameter:
		return fmt.Sprintf("midi-pgm-change-%d", p.Channel)
	case MidiChannelPressureParameter:
		return fmt.Sprintf("midi-channel-pressure-%d", p.Channel)
	case MidiNotePressureParameter:
		return fmt.Sprintf("midi-note-pressure-%d-%d", p.Channel, p.ID)
	case MidiPitchBenderParameter:
		return fmt.Sprintf("midi-pitch-bender-%d", p.Channel)
	case MidiSystemExclusiveParameter:
		return "midi-system-exclusive"
	}
	return "null"
}

// Automatable reports whether p may carry interpolation or automation state.
func (p Parameter) Automatable() bool {
	switch p.Type {
	case MidiCCParameter, MidiPgmChangeParameter, MidiChannelPressureParameter,
		MidiNotePressureParameter, MidiPitchBenderParameter:
		return true
	}
	return false
}

var symbolPrefixes = []struct {
	prefix string
	typ    ParameterType
	args   int
}{
	{"midicc-", MidiCCParameter, 2},
	{"midi-pgm-change-", MidiPgmChangeParameter, 1},
	{"midi-channel-pressure-", MidiChannelPressureParameter, 1},
	{"midi-note-pressure-", MidiNotePressureParameter, 2},
	{"midi-pitch-bender-", MidiPitchBenderParameter, 1},
}

// ParseParameter parses a symbol produced by Parameter.String.
func ParseParameter(symbol string) (Parameter, error) {
	if symbol == "midi-system-exclusive" {
		return Parameter{Type: MidiSystemExclusiveParameter}, nil
	}
	for _, sp := range symbolPrefixes {
		rest, ok := strings.CutPrefix(symbol, sp.prefix)
		if !ok {
			continue
		}
		parts := strings.Split(rest, "-")
		if len(parts) != sp.args {
			return Parameter{}, fmt.Errorf("%w: %q", ErrUnknownParameter, symbol)
		}
		channel, err := strconv.ParseUint(parts[0], 10, 8)
		if err != nil || channel > 15 {
			return Parameter{}, fmt.Errorf("%w: bad channel in %q", ErrUnknownParameter, symbol)
		}
		p := Parameter{Type: sp.typ, Channel: uint8(channel)}
		if sp.args == 2 {
			id, err := strconv.ParseUint(parts[1], 10, 8)
			if err != nil || id > 127 {
				return Parameter{}, fmt.Errorf("%w: bad number in %q", ErrUnknownParameter, symbol)
			}
			p.ID = uint8(id)
		}
		return p, nil
	}
	return Parameter{}, fmt.Errorf("%w: %q", ErrUnknownParameter, symbol)
}

// ParameterOf returns the control parameter a MIDI message addresses.
// Notes and non-channel messages other than sysex are not controls.
func ParameterOf(buf []byte) (Parameter, bool) {
	msg := midi.Message(buf)
	var channel, a, b uint8
	var rel int16
	var abs uint16
	switch {
	case msg.GetControlChange(&channel, &a, &b):
		return CC(channel, a), true
	case msg.GetPitchBend(&channel, &rel, &abs):
		return PitchBend(channel), true
	case msg.GetProgramChange(&channel, &a):
		return ProgramChange(channel), true
	case msg.GetAfterTouch(&channel, &a):
		return ChannelPressure(channel), true
	case msg.GetPolyAfterTouch(&channel, &a, &b):
		return NotePressure(channel, a), true
	case len(buf) > 0 && buf[0] == 0xF0:
		return Parameter{Type: MidiSystemExclusiveParameter}, true
	}
	return Parameter{}, false
}

// ParameterSet is a set of parameters; the nil set is empty.
type ParameterSet map[Parameter]struct{}

// NewParameterSet returns a set holding params.
func NewParameterSet(params ...Parameter) ParameterSet {
	s := make(ParameterSet, len(params))
	for _, p := range params {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s ParameterSet) Has(p Parameter) bool {
	_, ok := s[p]
	return ok
}

// InterpolationStyle is how values between control points are computed.
type InterpolationStyle int

const (
	Discrete InterpolationStyle = iota
	Linear
	Logarithmic
	Exponential
	Curved
)

var interpolationNames = map[InterpolationStyle]string{
	Discrete:    "discrete",
	Linear:      "linear",
	Logarithmic: "logarithmic",
	Exponential: "exponential",
	Curved:      "curved",
}

func (s InterpolationStyle) String() string {
	if name, ok := interpolationNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseInterpolationStyle parses the output of InterpolationStyle.String.
func ParseInterpolationStyle(s string) (InterpolationStyle, error) {
	for style, name := range interpolationNames {
		if strings.EqualFold(name, s) {
			return style, nil
		}
	}
	return 0, fmt.Errorf("invalid interpolation style %q", s)
}

// AutoState is the automation playback state of a parameter.
type AutoState int

const (
	Off AutoState = iota
	Write
	Touch
	Play
	Latch
)

var autoStateNames = map[AutoState]string{
	Off:   "off",
	Write: "write",
	Touch: "touch",
	Play:  "play",
	Latch: "latch",
}

func (s AutoState) String() string {
	if name, ok := autoStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseAutoState parses the output of AutoState.String.
func ParseAutoState(s string) (AutoState, error) {
	for state, name := range autoStateNames {
		if strings.EqualFold(name, s) {
			return state, nil
		}
	}
	return 0, fmt.Errorf("invalid automation state %q", s)
}

// ParameterDefaults is the project-wide default table for parameters.
type ParameterDefaults interface {
	InterpolationOf(p Parameter) InterpolationStyle
}

// StandardDefaults interpolates continuous controllers linearly and treats
// switches, selections and program changes as discrete.
type StandardDefaults struct{}

// InterpolationOf implements ParameterDefaults.
func (StandardDefaults) InterpolationOf(p Parameter) InterpolationStyle {
	switch p.Type {
	case MidiCCParameter:
		switch id := p.ID; {
		case id == 0, id == 32: // bank select
			return Discrete
		case id == 6, id == 38: // data entry
			return Discrete
		case id >= 64 && id <= 69: // switches
			return Discrete
		case id >= 96 && id <= 101: // increment/decrement, (N)RPN
			return Discrete
		case id >= 120: // channel mode
			return Discrete
		}
		return Linear
	case MidiChannelPressureParameter, MidiNotePressureParameter, MidiPitchBenderParameter:
		return Linear
	}
	return Discrete
}
