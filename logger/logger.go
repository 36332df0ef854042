package logger

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// The TUI owns stdout, so logs always go to a file. Until SetFile is called
// everything is dropped.
var log = zap.NewNop()

// SetFile routes all log output to the given file path.
func SetFile(path string) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	l, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return err
	}
	log = l
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}

// Debug logs a debug message with structured fields.
func Debug(msg string, fields map[string]any) {
	log.Debug(msg, zapFields(fields)...)
}

// Info logs an info message with structured fields.
func Info(msg string, fields map[string]any) {
	log.Info(msg, zapFields(fields)...)
}

// Warn logs a warning with structured fields.
func Warn(msg string, fields map[string]any) {
	log.Warn(msg, zapFields(fields)...)
}

// Error logs an error message with structured fields.
func Error(msg string, fields map[string]any) {
	log.Error(msg, zapFields(fields)...)
}

// zapFields converts the field map in key order so log lines are stable.
func zapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, len(keys))
	for i, k := range keys {
		out[i] = zap.Any(k, fields[k])
	}
	return out
}
