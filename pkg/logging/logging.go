// Package logging is a thin sugared zap wrapper for structured diagnostics.
// User-facing progress lines are printed by the commands, not through here.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Logger wraps a sugared zap logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a logger writing to stderr. json selects the production encoder;
// anything else gets the development console encoder. verbose enables debug.
func New(format string, verbose bool) (logger *Logger, err error) {
	var cfg zap.Config
	switch strings.ToLower(format) {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	var z *zap.Logger
	z, err = cfg.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to build logger")
		return logger, err
	}

	logger = &Logger{sugar: z.Sugar()}
	return logger, err
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) (logger *Logger) {
	logger = &Logger{sugar: z.Sugar()}
	return logger
}

// Nop returns a logger that discards everything.
func Nop() (logger *Logger) {
	logger = FromZap(zap.NewNop())
	return logger
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(keysAndValues ...interface{}) (child *Logger) {
	child = &Logger{sugar: l.sugar.With(redact(keysAndValues)...)}
	return child
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, redact(keysAndValues)...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, redact(keysAndValues)...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, redact(keysAndValues)...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, redact(keysAndValues)...)
}

// redact masks values whose key names a credential.
func redact(kv []interface{}) (out []interface{}) {
	if len(kv) == 0 {
		return kv
	}

	out = make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if ok && isSecretKey(key) {
			out[i+1] = "[REDACTED]"
		}
	}
	return out
}

func isSecretKey(key string) (secret bool) {
	key = strings.ToLower(key)
	secret = strings.Contains(key, "api_key") ||
		strings.Contains(key, "apikey") ||
		strings.Contains(key, "token") ||
		strings.Contains(key, "secret") ||
		strings.Contains(key, "authorization")
	return secret
}
