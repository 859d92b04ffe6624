// zerolog-backed implementation of the Logger interface, plus the package
// level helpers the rest of the codebase uses. Output is one JSON object per
// line on stderr; SetupLogger installs a stack marshaler so cockroachdb
// errors log with their capture site.

package log

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	loggerMu   sync.RWMutex
	baseLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// SetupLogger configures the global logging backend. Level is one of
// "debug", "info", "warn", "error" (case-insensitive); anything else falls
// back to info. Safe to call more than once; the last call wins.
func SetupLogger(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	zerolog.SetGlobalLevel(lvl)
	zerolog.ErrorStackMarshaler = marshalStack
	baseLogger = zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// GetLogger returns the global zerolog logger for direct chaining:
//
//	log.GetLogger().Error().Err(err).Int("rows", n).Msg("cleaning failed")
func GetLogger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return baseLogger
}

// GetLoggerWithName returns a Logger scoped to a component name.
func GetLoggerWithName(name string) Logger {
	l := GetLogger().With().Str(ComponentKey, name).Logger()
	return &zerologLogger{l: l}
}

// LogError logs err at error level with structured detail: the error chain,
// a stack trace when the error carries one, and the error's own zerolog
// marshaling when implemented.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	logger := GetLogger()
	event := logger.Error().Stack().Err(err)

	var details zerolog.LogObjectMarshaler
	if stderrors.As(err, &details) {
		event = event.Object("details", details)
	}
	// cockroachdb errors render their stack through %+v; plain errors
	// render a single line and are skipped.
	if verbose := fmt.Sprintf("%+v", err); strings.ContainsRune(verbose, '\n') {
		event = event.Str(StacktraceKey, verbose)
	}
	event.Msg(msg)
}

func marshalStack(err error) interface{} {
	return fmt.Sprintf("%+v", err)
}

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger in the Logger interface.
// Useful when a caller has already derived a contextual zerolog logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return &zerologLogger{l: l}
}

func (z *zerologLogger) Debug(msg string, fields ...any) {
	applyFields(z.l.Debug(), fields).Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields ...any) {
	applyFields(z.l.Info(), fields).Msg(msg)
}

func (z *zerologLogger) Warn(msg string, fields ...any) {
	applyFields(z.l.Warn(), fields).Msg(msg)
}

func (z *zerologLogger) Error(msg string, fields ...any) {
	applyFields(z.l.Error().Stack(), fields).Msg(msg)
}

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.l.With()
	i := 0
	for i < len(fields) {
		if err, ok := fields[i].(error); ok {
			ctx = ctx.AnErr("error", err)
			i++
			continue
		}
		key := fmt.Sprintf("%v", fields[i])
		if i+1 >= len(fields) {
			ctx = ctx.Interface(key, "(MISSING)")
			break
		}
		ctx = contextField(ctx, key, fields[i+1])
		i += 2
	}
	return &zerologLogger{l: ctx.Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	zl := toZerologLevel(level)
	if zl < zerolog.GlobalLevel() {
		return false
	}
	own := z.l.GetLevel()
	return own == zerolog.NoLevel || zl >= own
}

// applyFields adds alternating key-value pairs to an event. A bare error in
// key position is logged under the "error" key, matching the Logger
// interface contract.
func applyFields(event *zerolog.Event, fields []any) *zerolog.Event {
	i := 0
	for i < len(fields) {
		if err, ok := fields[i].(error); ok {
			event = event.Err(err)
			i++
			continue
		}
		key := fmt.Sprintf("%v", fields[i])
		if i+1 >= len(fields) {
			event = event.Interface(key, "(MISSING)")
			break
		}
		event = eventField(event, key, fields[i+1])
		i += 2
	}
	return event
}

func eventField(event *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return event.Str(key, v)
	case int:
		return event.Int(key, v)
	case int64:
		return event.Int64(key, v)
	case float64:
		return event.Float64(key, v)
	case bool:
		return event.Bool(key, v)
	case time.Duration:
		return event.Dur(key, v)
	case error:
		return event.AnErr(key, v)
	default:
		return event.Interface(key, v)
	}
}

func contextField(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case int64:
		return ctx.Int64(key, v)
	case float64:
		return ctx.Float64(key, v)
	case bool:
		return ctx.Bool(key, v)
	case time.Duration:
		return ctx.Dur(key, v)
	case error:
		return ctx.AnErr(key, v)
	default:
		return ctx.Interface(key, v)
	}
}

func toZerologLevel(l Level) zerolog.Level {
	switch {
	case l <= LevelDebug:
		return zerolog.DebugLevel
	case l <= LevelInfo:
		return zerolog.InfoLevel
	case l <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
