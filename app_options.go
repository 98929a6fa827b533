package mosaic

import (
	"github.com/GoCodeAlone/mosaic/dom"
	"github.com/GoCodeAlone/mosaic/history"
)

// Option configures an App at construction time.
type Option func(*App) error

// WithLogger sets the framework logger. Without it the App logs through
// slog.Default.
func WithLogger(logger Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return ErrLoggerNotSet
		}
		a.logger = logger
		return nil
	}
}

// WithDocument supplies the host document the mount container and loading
// indicator are resolved from. Documents implementing dom.ClickSource also
// feed declarative link navigation.
func WithDocument(doc dom.Document) Option {
	return func(a *App) error {
		a.document = doc
		return nil
	}
}

// WithContainer supplies the mount container directly, bypassing selector
// resolution.
func WithContainer(container dom.Container) Option {
	return func(a *App) error {
		a.container = container
		return nil
	}
}

// WithHistory sets the location backend. Without it the App uses an
// in-memory backend rooted at "/".
func WithHistory(backend history.Backend) Option {
	return func(a *App) error {
		a.backend = backend
		return nil
	}
}

// WithSource sets the module source consulted for lazily loaded modules
// when Config.Lazy is enabled.
func WithSource(source Source) Option {
	return func(a *App) error {
		a.source = source
		return nil
	}
}

// WithManifestSource is a convenience for WithSource(NewFSSource(...)) using
// the configured module base path.
func WithManifestSource() Option {
	return func(a *App) error {
		a.source = NewFSSource(a.config.ModuleBase)
		return nil
	}
}

// WithWatchdog sets the container watchdog. The core functions without one;
// a watchdog only adds automatic recovery after container detachment.
func WithWatchdog(w Watchdog) Option {
	return func(a *App) error {
		a.watchdog = w
		return nil
	}
}
