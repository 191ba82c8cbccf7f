package application

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes leveled, structured log entries. Every method takes
// a message followed by alternating keys and values.
type Logger struct {
	zLogger *zap.SugaredLogger
}

// A LoggerConfig selects the running environment ("development" logs
// at debug level, "production" at info level), the output encoding
// ("console" or "json"), an optional file written next to stderr and
// whether warnings carry stack traces.
type LoggerConfig struct {
	EnableStacktrace bool   `toml:"enable_stacktrace,omitempty" yaml:"enable_stacktrace,omitempty"`
	Environment      string `toml:"env" yaml:"env"`
	Encoding         string `toml:"encoding,omitempty" yaml:"encoding,omitempty"`
	Path             string `toml:"path,omitempty" yaml:"path,omitempty"`
}

func (conf *LoggerConfig) level() (zapcore.Level, error) {
	switch {
	case strings.EqualFold("development", conf.Environment):
		return zap.DebugLevel, nil
	case strings.EqualFold("production", conf.Environment):
		return zap.InfoLevel, nil
	}
	return 0, fmt.Errorf("Unknown logger environment %q", conf.Environment)
}

// NewLogger builds the Logger described by conf.
func NewLogger(conf *LoggerConfig) (*Logger, error) {
	level, err := conf.level()
	if err != nil {
		return nil, err
	}
	encoding := conf.Encoding
	switch encoding {
	case "":
		encoding = "console"
	case "console", "json":
	default:
		return nil, fmt.Errorf("Unknown logger encoding %q", encoding)
	}

	outputs := []string{"stderr"}
	if conf.Path != "" {
		outputs = append(outputs, conf.Path)
	}
	zConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding,
		DisableStacktrace: !conf.EnableStacktrace,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths: outputs,
	}
	zl, err := zConfig.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zl.Sugar()}, nil
}

// NewNopLogger returns a Logger which discards everything.
func NewNopLogger() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// With returns a child Logger adding keysAndValues to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{l.zLogger.With(keysAndValues...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zLogger.Sync()
}

// Debug logs details only useful when tracing a single request.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.zLogger.Debugw(msg, keysAndValues...)
}

// Info logs the progress of an operation.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.zLogger.Infow(msg, keysAndValues...)
}

// Warn logs a rejected request or a potentially harmful situation.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.zLogger.Warnw(msg, keysAndValues...)
}

// Error logs a failure of the operation that needs admin intervention.
// The application keeps running.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.zLogger.Errorw(msg, keysAndValues...)
}
