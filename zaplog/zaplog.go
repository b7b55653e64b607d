// Package zaplog connects logsafe to zap.
//
// Any builds a single zap field; Logger wraps a *zap.Logger and serializes
// every key/value argument before it reaches the core.
//
//	log := zaplog.New(zap.NewExample(), nil)
//	log.Info("user created", "user", user, "request_id", reqID)
package zaplog

import (
	"fmt"

	"github.com/zoobzio/logsafe"
	"go.uber.org/zap"
)

// badKey is the key used for a trailing value without a key.
const badKey = "!BADKEY"

// Any returns a zap field holding the log-safe form of v.
func Any(key string, v any) zap.Field {
	return field(logsafe.Default(), key, v)
}

func field(s *logsafe.Serializer, key string, v any) zap.Field {
	if out, ok := s.Serialize(v).(string); ok {
		return zap.String(key, out)
	}
	return zap.Any(key, v)
}

// Logger logs through zap with every value passed through a Serializer.
type Logger struct {
	base *zap.Logger
	s    *logsafe.Serializer
}

// New wraps base. A nil serializer selects logsafe.Default().
func New(base *zap.Logger, s *logsafe.Serializer) *Logger {
	if s == nil {
		s = logsafe.Default()
	}
	return &Logger{base: base, s: s}
}

// With returns a Logger whose entries carry the given key/value pairs.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{base: l.base.With(l.fields(kv)...), s: l.s}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, kv ...any) {
	l.base.Debug(msg, l.fields(kv)...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, kv ...any) {
	l.base.Info(msg, l.fields(kv)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, kv ...any) {
	l.base.Warn(msg, l.fields(kv)...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, kv ...any) {
	l.base.Error(msg, l.fields(kv)...)
}

// Sync flushes the underlying core.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// Zap returns the wrapped logger.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// fields pairs alternating keys and values. A zap.Field passes through as is.
func (l *Logger) fields(kv []any) []zap.Field {
	out := make([]zap.Field, 0, len(kv)/2+1)
	for i := 0; i < len(kv); i++ {
		if f, ok := kv[i].(zap.Field); ok {
			out = append(out, f)
			continue
		}
		if i == len(kv)-1 {
			out = append(out, field(l.s, badKey, kv[i]))
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		out = append(out, field(l.s, key, kv[i+1]))
		i++
	}
	return out
}
