package source

import (
	"errors"

	"github.com/leandrodaf/timeline/internal/logger"
	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/tempo"
)

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
	if options.TempoMap == nil {
		options.TempoMap = tempo.NewConstant(120, 48000)
	}
	if c, ok := options.TempoMap.(tempo.Constant); ok && (c.BPM <= 0 || c.SampleRate <= 0) {
		return contracts.Options{}, errors.New("source: tempo map needs a positive tempo and sample rate")
	}
	if options.Defaults == nil {
		options.Defaults = contracts.StandardDefaults{}
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
