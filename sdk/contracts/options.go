package contracts

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// Options is the configuration shared by sources and inputs.
type Options struct {
	Logger      Logger   // Logger for lifecycle events and errors.
	LogLevel    LogLevel // Level of logging to use.
	LogFilePath string   // File path for logging if file logging is enabled.

	Name      string            // Human readable source name, used in logs.
	Path      string            // SMF file backing a source; empty keeps it in memory.
	TempoMap  TempoMap          // Beat/sample conversion.
	Defaults  ParameterDefaults // Project-wide parameter defaults.
	Transport Transport         // Optional; decides whether invalidation keeps active notes.

	MIDIEventFilter *MIDIEventFilter // Optional filter for captured input.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	Clock           Clock            // Stamps captured input with sample positions.
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFile directs logging to a file.
func WithLogFile(path string) Option {
	return func(opts *Options) {
		opts.LogFilePath = path
	}
}

// WithName names the source.
func WithName(name string) Option {
	return func(opts *Options) {
		opts.Name = name
	}
}

// WithPath backs the source with a Standard MIDI File at path.
func WithPath(path string) Option {
	return func(opts *Options) {
		opts.Path = path
	}
}

// WithTempoMap sets the tempo map used to convert beats to samples.
func WithTempoMap(tm TempoMap) Option {
	return func(opts *Options) {
		opts.TempoMap = tm
	}
}

// WithParameterDefaults sets the project-wide parameter default table.
func WithParameterDefaults(d ParameterDefaults) Option {
	return func(opts *Options) {
		opts.Defaults = d
	}
}

// WithTransport attaches the playback transport.
func WithTransport(t Transport) Option {
	return func(opts *Options) {
		opts.Transport = t
	}
}

// WithMIDIEventFilter sets the command filter for captured input.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *Options) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *Options) {
		opts.CoreMIDIConfig = &config
	}
}

// WithClock sets the clock stamping captured input.
func WithClock(c Clock) Option {
	return func(opts *Options) {
		opts.Clock = c
	}
}
