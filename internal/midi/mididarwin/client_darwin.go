//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/timeline/internal/midi/midifeed"
	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Input captures a CoreMIDI source into a capture ring.
type Input struct {
	logger    contracts.Logger
	feeder    *midifeed.Feeder
	client    coremidi.Client
	inputPort coremidi.InputPort
	portConn  internalPortConnection
	mu        sync.Mutex
	capturing bool
}

// NewInput creates the CoreMIDI client named in options.
func NewInput(options *contracts.Options) (contracts.Input, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created",
		options.Logger.Field().String("client", options.CoreMIDIConfig.ClientName))

	return &Input{
		logger: options.Logger,
		client: client,
		feeder: midifeed.New(options),
	}, nil
}

// ListDevices retrieves and returns available MIDI sources.
func (m *Input) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice connects to the source at deviceID, dropping any previous
// connection.
func (m *Input) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handlePacket)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return nil
}

func (m *Input) handlePacket(_ coremidi.Source, packet coremidi.Packet) {
	m.feeder.Feed(packet.Data)
}

// StartCapture starts pushing input into dst, replacing any previous ring.
func (m *Input) StartCapture(dst contracts.RingWriter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dst == nil {
		m.logger.Error("StartCapture called with nil ring")
		return
	}
	if m.capturing {
		m.logger.Warn("Capture already started; switching ring")
	}

	m.logger.Info("Starting MIDI event capture")
	m.feeder.Attach(dst)
	m.capturing = true
}

// Stop disconnects the device and waits for packets in flight.
func (m *Input) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.capturing {
		return nil
	}
	m.logger.Info("Stopping MIDI capture")
	m.capturing = false
	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}
	m.feeder.Detach()
	m.logger.Info("MIDI capture stopped")
	return nil
}
