//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/timeline/sdk/contracts"
)

var errUnavailable = errors.New("WinMM is not available on this platform")

type dummyInput struct {
	logger contracts.Logger
}

// NewInput returns an input whose device operations fail, for non-Windows
// builds.
func NewInput(options *contracts.Options) (contracts.Input, error) {
	options.Logger.Info("Using dummy MIDI input for non-Windows system")
	return &dummyInput{logger: options.Logger}, nil
}

// ListDevices always fails.
func (m *dummyInput) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI input")
	return nil, errUnavailable
}

// SelectDevice always fails.
func (m *dummyInput) SelectDevice(int) error {
	m.logger.Warn("SelectDevice called on dummy MIDI input")
	return errUnavailable
}

// StartCapture does nothing.
func (m *dummyInput) StartCapture(contracts.RingWriter) {
	m.logger.Warn("StartCapture called on dummy MIDI input")
}

// Stop does nothing.
func (m *dummyInput) Stop() error {
	return nil
}
