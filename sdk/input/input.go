// Package input opens the platform MIDI input and feeds captured events,
// stamped with sample positions, into a capture ring.
package input

import (
	"github.com/leandrodaf/timeline/sdk/contracts"
)

// NewInput creates the MIDI input of the running platform with the
// specified options.
//
// opts ...contracts.Option: A variadic list of option functions to customize the input configuration.
//
// Returns:
//   - contracts.Input: The platform MIDI input.
//   - error: An error, if any occurred during the creation of the input.
func NewInput(opts ...contracts.Option) (contracts.Input, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	in, err := newPlatformInput(&options)
	if err != nil {
		return nil, err
	}

	return in, nil
}
