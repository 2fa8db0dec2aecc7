package input

import (
	"errors"
	"time"

	"github.com/leandrodaf/timeline/internal/logger"
	"github.com/leandrodaf/timeline/sdk/contracts"
)

const defaultSampleRate = 48000

// applyDefaultOptions sets default values for Options not explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.Options, error) {
	options := &contracts.Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "Timeline MIDI Input"}
	}
	if options.CoreMIDIConfig.ClientName == "" {
		return contracts.Options{}, errors.New("input: CoreMIDI client name must not be empty")
	}
	if options.Clock == nil {
		options.Clock = NewSampleClock(defaultSampleRate, time.Now())
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
