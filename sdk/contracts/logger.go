package contracts

import "time"

// LogLevel represents the severity level for logging. The zero value means
// "not configured" and is replaced with InfoLevel by the options layer.
type LogLevel int

const (
	// DebugLevel indicates messages useful for troubleshooting cursor and capture behaviour.
	DebugLevel LogLevel = iota + 1
	// InfoLevel indicates lifecycle messages such as capture start/end and model switches.
	InfoLevel
	// WarnLevel indicates recoverable situations, e.g. skipped parameters or stuck notes.
	WarnLevel
	// ErrorLevel indicates failed operations and programming errors.
	ErrorLevel
	// FatalLevel indicates errors after which the process exits.
	FatalLevel
)

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog directs log messages to stderr.
	ConsoleLog LogDestination = "console"
	// FileLog directs log messages to a file.
	FileLog LogDestination = "file"
)

// Field is a typed key/value pair attached to a log message.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
}

// Logger provides leveled, structured logging.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string)
}
