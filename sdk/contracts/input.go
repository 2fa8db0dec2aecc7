package contracts

// DeviceInfo contains information about a MIDI input device.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity to which the device belongs.
}

// MIDICommand is the high nibble of a MIDI status byte, used for input filtering.
type MIDICommand byte

const (
	NoteOffCommand         MIDICommand = 0x80
	NoteOnCommand          MIDICommand = 0x90
	PolyPressureCommand    MIDICommand = 0xA0
	ControlChangeCommand   MIDICommand = 0xB0
	ProgramChangeCommand   MIDICommand = 0xC0
	ChannelPressureCommand MIDICommand = 0xD0
	PitchBendCommand       MIDICommand = 0xE0
)

// MIDIEventFilter restricts captured input to the listed commands.
type MIDIEventFilter struct {
	Commands []MIDICommand
}

// Allows reports whether a message with the given status byte passes the filter.
func (f *MIDIEventFilter) Allows(status byte) bool {
	if f == nil || len(f.Commands) == 0 {
		return true
	}
	for _, c := range f.Commands {
		if status&0xF0 == byte(c) {
			return true
		}
	}
	return false
}

// Input is a live MIDI input device feeding a capture ring.
type Input interface {
	Stop() error                        // Stops capturing and releases the device.
	ListDevices() ([]DeviceInfo, error) // Lists all available MIDI inputs.
	SelectDevice(deviceID int) error    // Connects to an input by index.
	StartCapture(dst RingWriter)        // Starts pushing sample-stamped events into dst.
}
