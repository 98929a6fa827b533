package mosaic

import "log/slog"

// Logger defines the interface for framework logging.
// The framework uses structured logging with key-value pairs so that host
// applications can route framework logs through whatever logging library
// they already use.
//
// The variadic arguments are alternating key-value pairs:
//
//	logger.Info("route registered", "path", "/users/:id")
//
// This shape is compatible with slog, zap's sugared logger, logrus fields,
// and similar structured loggers.
type Logger interface {
	// Info logs normal framework events: module registration, navigation
	// completion, plugin installation.
	Info(msg string, args ...any)

	// Error logs recovered failures: render errors, handler errors,
	// listener panics.
	Error(msg string, args ...any)

	// Warn logs unusual but non-fatal conditions: unknown event names,
	// duplicate start calls, non-plugin values passed to Use.
	Warn(msg string, args ...any)

	// Debug logs detailed diagnostics, typically disabled in production.
	Debug(msg string, args ...any)
}

// SlogLogger adapts a *slog.Logger to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps an slog logger for framework use.
// Passing nil wraps slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
