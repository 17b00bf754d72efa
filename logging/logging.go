package logging

import (
	"log"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// A Logger filters log messages by level before handing them to the standard library logger
type Logger struct {
	level int
	log   *log.Logger
}

// CreateLogger returns a Logger which discards messages below the given level
func CreateLogger(level int) *Logger {
	return &Logger{level: level, log: log.New(os.Stderr, "", log.LstdFlags)}
}

// Logf logs a message at the given level
func (l *Logger) Logf(level int, format string, v ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.log.Printf("[%s] "+format, append([]interface{}{LogLevelToString(level)}, v...)...)
}

// Tracef logs a message at TraceLevel
func (l *Logger) Tracef(format string, v ...interface{}) {
	l.Logf(TraceLevel, format, v...)
}

// Debugf logs a message at DebugLevel
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.Logf(DebugLevel, format, v...)
}

// Infof logs a message at InfoLevel
func (l *Logger) Infof(format string, v ...interface{}) {
	l.Logf(InfoLevel, format, v...)
}

// Warnf logs a message at WarnLevel
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.Logf(WarnLevel, format, v...)
}

// Errorf logs a message at ErrorLevel
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.Logf(ErrorLevel, format, v...)
}
