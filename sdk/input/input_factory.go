package input

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/timeline/internal/midi/mididarwin"
	"github.com/leandrodaf/timeline/internal/midi/midiwindows"
	"github.com/leandrodaf/timeline/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI input.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// inputInitializers maps OS names to corresponding MIDI input initializers.
var inputInitializers = map[string]func(*contracts.Options) (contracts.Input, error){
	"darwin":  mididarwin.NewInput,  // macOS (Darwin) CoreMIDI input.
	"windows": midiwindows.NewInput, // Windows WinMM input.
}

// newPlatformInput initializes the MIDI input for goos, returning
// ErrUnsupportedOS if there is none.
func newPlatformInput(opts *contracts.Options) (contracts.Input, error) {
	return newInputFor(runtime.GOOS, opts)
}

func newInputFor(goos string, opts *contracts.Options) (contracts.Input, error) {
	if initializer, exists := inputInitializers[goos]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
