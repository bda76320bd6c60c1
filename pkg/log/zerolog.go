package log

import (
	"context"
	"io"
	"os"
	"sync"

	cockroacherrors "github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	zl zerolog.Logger
}

// zerologProvider is the default LoggerProvider, writing JSON to stderr.
type zerologProvider struct {
	mu     sync.Mutex
	root   zerolog.Logger
	level  Level
	logger *zerologLogger
}

var defaultProvider = newZerologProvider()

func newZerologProvider() *zerologProvider {
	root := zerolog.New(os.Stderr).With().Timestamp().Logger()
	p := &zerologProvider{
		root:  root,
		level: LevelInfo,
	}
	p.logger = &zerologLogger{zl: root.Level(toZerologLevel(LevelInfo))}
	return p
}

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns the default logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return defaultProvider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level of the default logger.
func SetLevel(level Level) {
	defaultProvider.SetLevel(level)
}

// SetOutput redirects the default logger, mainly for tests.
func SetOutput(w io.Writer) {
	defaultProvider.mu.Lock()
	defer defaultProvider.mu.Unlock()
	defaultProvider.root = zerolog.New(w).With().Timestamp().Logger()
	defaultProvider.logger = &zerologLogger{zl: defaultProvider.root.Level(toZerologLevel(defaultProvider.level))}
}

func (p *zerologProvider) GetLogger() Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.logger
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &zerologLogger{zl: p.logger.zl.With().Str(ComponentKey, name).Logger()}
}

func (p *zerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.logger = &zerologLogger{zl: p.root.Level(toZerologLevel(level))}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	event := l.zl.Error()
	// An error passed as the first field carries its stack trace when one was
	// attached by pkg/errors.
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			if stack := extractStacktrace(err); stack != "" {
				event = event.Str("stacktrace", stack)
			}
			fields = fields[1:]
		}
	}
	emit(event, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

// emit attaches alternating key-value fields to the event and sends it.
func emit(event *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			event = event.Object(key, v)
		case error:
			event = event.AnErr(key, v)
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}

func extractStacktrace(err error) string {
	safeDetails := cockroacherrors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
