package log

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
)

//DefaultLogger returns an implementation of logger for the engine, used by default if other isn't specified
func DefaultLogger(out io.Writer) Logger {
	return &defaultLogger{
		internalLogger: log.New(out, "[cqrs] ", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile),
		level:          InfoLevel,
	}
}

type defaultLogger struct {
	internalLogger *log.Logger
	level          Level
	fields         Fields
}

func (l defaultLogger) Log(level Level, v ...interface{}) {
	msg := fmt.Sprint(v)

	if len(l.fields) > 0 {
		msg = fmt.Sprintf("[%s] %s", l.formatFields(), msg)
	}

	if level == FatalLevel {
		l.internalLogger.Fatal(msg)
		return
	}

	if level == PanicLevel {
		l.internalLogger.Panic(v...)
		return
	}

	if level <= l.level {
		if err := l.internalLogger.Output(3, fmt.Sprintf("%s %s", levelNames[level], msg)); err != nil {
			l.internalLogger.Printf("err logging an entry: %s. %s\n", err, v)
		}
	}
}

func (l defaultLogger) Logf(level Level, template string, args ...interface{}) {
	l.Log(level, fmt.Sprintf(template, args...))
}

func (l *defaultLogger) SetLevel(level Level) {
	l.level = level
}

func (l *defaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))

	for k, v := range l.fields {
		merged[k] = v
	}

	for k, v := range fields {
		merged[k] = v
	}

	return &defaultLogger{internalLogger: l.internalLogger, level: l.level, fields: merged}
}

// formatFields sorts keys so entries are stable between runs
func (l defaultLogger) formatFields() string {
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, l.fields[k])
	}

	return strings.Join(pairs, " ")
}

var levelNames = map[Level]string{
	PanicLevel: "panic",
	FatalLevel: "fatal",
	ErrorLevel: "error",
	WarnLevel:  "warn",
	InfoLevel:  "info",
	DebugLevel: "debug",
	TraceLevel: "trace",
}
