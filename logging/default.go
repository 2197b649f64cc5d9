package logging

import (
	"context"
	"maps"
	"os"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger is the zap-backed Logger implementation
// Debug/Info -> stdout
// Warn/Error/Fatal -> stderr
type DefaultLogger struct {
	zl     *zap.Logger
	level  zap.AtomicLevel
	fields Fields
}

// NewDefaultLogger creates a console logger, colored when stdout is a terminal
func NewDefaultLogger() *DefaultLogger {
	return newConsoleLogger(isTerminal())
}

// NewDefaultLoggerNoColor creates a console logger without colored output
func NewDefaultLoggerNoColor() *DefaultLogger {
	return newConsoleLogger(false)
}

// NewZapLogger wraps an application's zap logger. All levels are forwarded
// until SetLevel narrows them; the zap core may filter further.
func NewZapLogger(zl *zap.Logger) *DefaultLogger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &DefaultLogger{
		zl:     zl,
		level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
		fields: make(Fields),
	}
}

func newConsoleLogger(useColors bool) *DefaultLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if useColors {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	stdout := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l < zapcore.WarnLevel })
	stderr := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.WarnLevel })

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), stdout),
		zapcore.NewCore(encoder.Clone(), zapcore.Lock(os.Stderr), stderr),
	)

	return &DefaultLogger{
		zl:     zap.New(core),
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
		fields: make(Fields),
	}
}

// isTerminal checks if stdout is a character device
func isTerminal() bool {
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

// zapFields merges the preset and call fields; keys are sorted so output
// is stable between runs
func (d *DefaultLogger) zapFields(err error, fields ...Fields) []zap.Field {
	allFields := make(Fields, len(d.fields))
	maps.Copy(allFields, d.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}

	out := make([]zap.Field, 0, len(allFields)+1)
	for _, key := range slices.Sorted(maps.Keys(allFields)) {
		out = append(out, zap.Any(key, allFields[key]))
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	zl := toZapLevel(level)
	if !d.level.Enabled(zl) {
		return
	}

	if ce := d.zl.Check(zl, msg); ce != nil {
		ce.Write(d.zapFields(err, fields...)...)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

// Fatal logs and exits the process with status 1
func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.log(FatalLevel, err, msg, fields...)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields, len(d.fields)+len(fields))
	maps.Copy(newFields, d.fields)
	maps.Copy(newFields, fields)

	return &DefaultLogger{
		zl:     d.zl,
		level:  zap.NewAtomicLevelAt(d.level.Level()),
		fields: newFields,
	}
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := fieldsFromContext(ctx); ok {
		return d.WithFields(fields)
	}
	return d
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered log entries
func (d *DefaultLogger) Sync() error {
	return d.zl.Sync()
}

// NoOpLogger discards everything; use it to silence the library
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) Fatal(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) WithContext(ctx context.Context) Logger        { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
