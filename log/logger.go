package log

// Level of a log entry. Lower values are more severe.
type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// Fields are attached to every entry written by a logger returned from WithFields
type Fields map[string]interface{}

// Logger is used by the engine and by every bounded context it compiles
type Logger interface {
	Log(level Level, v ...interface{})
	Logf(level Level, template string, args ...interface{})
	SetLevel(level Level)
	WithFields(fields Fields) Logger
}
