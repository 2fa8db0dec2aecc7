//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/leandrodaf/timeline/sdk/contracts"
)

var errUnavailable = errors.New("CoreMIDI is not available on this platform")

type dummyInput struct {
	logger contracts.Logger
}

// NewInput returns an input whose device operations fail, for builds
// without CoreMIDI.
func NewInput(options *contracts.Options) (contracts.Input, error) {
	options.Logger.Info("Using dummy MIDI input for non-macOS system")
	return &dummyInput{logger: options.Logger}, nil
}

func (m *dummyInput) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI input")
	return nil, errUnavailable
}

func (m *dummyInput) SelectDevice(int) error {
	m.logger.Warn("SelectDevice called on dummy MIDI input")
	return errUnavailable
}

func (m *dummyInput) StartCapture(contracts.RingWriter) {
	m.logger.Warn("StartCapture called on dummy MIDI input")
}

func (m *dummyInput) Stop() error {
	return nil
}
