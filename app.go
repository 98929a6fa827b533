package mosaic

import (
	"context"
	"fmt"
	"sync"

	"github.com/GoCodeAlone/mosaic/dom"
	"github.com/GoCodeAlone/mosaic/history"
)

// Event source identifiers for the framework's own emissions.
const (
	sourceApp      = "application"
	sourceRouter   = "router"
	sourceRegistry = "registry"
)

// Plugin extends an App. Use installs any value implementing it; other
// values are ignored with a warning.
type Plugin interface {
	Install(app *App) error
}

// App is the orchestrator: it owns the configuration, the mount container,
// the event listener table, the router and the module registry, and exposes
// the unified public surface. Every App instance owns an independent set of
// registries; there is no ambient global state.
type App struct {
	config   *Config
	logger   Logger
	document dom.Document
	backend  history.Backend
	source   Source
	watchdog Watchdog

	listeners *listenerTable
	bus       *EventBus
	registry  *ModuleRegistry
	router    *Router

	mu        sync.RWMutex
	started   bool
	loading   bool
	container dom.Container
	indicator dom.Container

	valuesMu sync.RWMutex
	values   map[string]string

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates an App from the configuration and options. Defaults are
// applied to the configuration field-by-field before validation; a nil
// configuration gets all defaults. Without WithHistory the App runs on an
// in-memory location backend rooted at "/".
func New(cfg *Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := ProcessConfigDefaults(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{
		config:    cfg,
		listeners: newListenerTable(),
		values:    make(map[string]string),
	}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	if app.logger == nil {
		app.logger = NewSlogLogger(nil)
	}
	if app.backend == nil {
		app.backend = history.NewMemory(history.Location{Path: "/"})
	}

	app.bus = newEventBus(app.listeners, app.logger)
	app.bus.setEventLogging(cfg.LogEvents, cfg.LogLabel)
	app.registry = newModuleRegistry(app)
	app.router = newRouter(app)
	return app, nil
}

// Start brings the App online: resolve the mount container and the optional
// loading indicator, subscribe to external navigations and link clicks,
// start the container watchdog, resolve the current location without
// pushing a history entry, then emit the ready event. A second call is a
// warned no-op.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		a.logger.Warn("start called on a started app")
		return nil
	}
	a.mu.Unlock()

	if err := a.resolveContainer(); err != nil {
		return err
	}
	a.resolveIndicator()

	stop := make(chan struct{})
	a.mu.Lock()
	a.stop = stop
	a.mu.Unlock()

	a.wg.Add(1)
	go a.watchLocation(ctx, stop)
	if clicks, ok := a.document.(dom.ClickSource); ok {
		a.wg.Add(1)
		go a.watchClicks(ctx, clicks, stop)
	}
	if a.watchdog != nil {
		a.watchdog.Start(a.containerAttached, func() { a.recoverContainer(ctx) })
	}

	// The browser already shows the current URL: resolve it in place.
	if err := a.router.navigate(ctx, a.router.readLocation(), false); err != nil {
		return err
	}

	a.mu.Lock()
	a.started = true
	a.mu.Unlock()
	a.bus.Emit(ctx, EventReady, nil, sourceApp)
	return nil
}

// Destroy tears the App down: stop subscriptions and the watchdog, destroy
// the current module, clear the mount target (tolerating a vanished
// container), drop all listeners and emit the destroyed event. Safe to call
// without a prior Start and safe to call repeatedly.
func (a *App) Destroy(ctx context.Context) error {
	a.mu.Lock()
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	a.started = false
	a.mu.Unlock()
	a.wg.Wait()

	if a.watchdog != nil {
		a.watchdog.Stop()
	}

	if cur := a.registry.Current(); cur != nil {
		if d, ok := cur.(Destroyer); ok {
			if err := d.Destroy(ctx); err != nil {
				a.logger.Error("module destroy failed", "module", cur.Name(), "error", err)
			}
		}
		a.registry.clearCurrent()
	}

	a.mu.RLock()
	container := a.container
	a.mu.RUnlock()
	if container != nil && container.Attached() {
		container.Clear()
	}

	a.listeners.clear()
	a.bus.Emit(ctx, EventDestroyed, nil, sourceApp)
	return nil
}

// Started reports whether Start has completed and Destroy has not run.
func (a *App) Started() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.started
}

// Loading reports whether a module load is in flight.
func (a *App) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// Use installs a plugin. Values that do not implement Plugin are ignored
// with a warning; a successful install emits a plugin-installed event.
func (a *App) Use(plugin any) error {
	p, ok := plugin.(Plugin)
	if !ok {
		a.logger.Warn("value passed to Use does not implement Plugin",
			"type", fmt.Sprintf("%T", plugin))
		return nil
	}
	if err := p.Install(a); err != nil {
		return fmt.Errorf("install plugin %T: %w", plugin, err)
	}
	a.bus.Emit(context.Background(), EventPluginInstalled,
		map[string]any{"plugin": fmt.Sprintf("%T", plugin)}, sourceApp)
	return nil
}

// RegisterModule registers a module, running its OnRegister hook and
// auto-registering its declared routes.
func (a *App) RegisterModule(m Module) error {
	return a.registry.Register(m)
}

// UnregisterModule removes a module; unknown names are a no-op.
func (a *App) UnregisterModule(name string) {
	a.registry.Unregister(name)
}

// RegisterRoute registers a route directly.
func (a *App) RegisterRoute(path string, opts RouteOptions) error {
	return a.router.RegisterRoute(path, opts)
}

// Navigate drives a programmatic navigation.
func (a *App) Navigate(ctx context.Context, path string) error {
	return a.router.Navigate(ctx, path)
}

// LoadModule mounts a module outside the navigation flow.
func (a *App) LoadModule(ctx context.Context, name string, params Params) error {
	return a.registry.Load(ctx, name, params)
}

// CurrentRoute returns the route of the last settled navigation, or nil.
func (a *App) CurrentRoute() *ResolvedRoute {
	return a.router.CurrentRoute()
}

// CurrentModule returns the currently mounted module, or nil.
func (a *App) CurrentModule() Module {
	return a.registry.Current()
}

// On registers an event listener and returns its subscription.
func (a *App) On(event string, fn Listener) *Subscription {
	return a.listeners.add(event, fn)
}

// Off cancels a subscription obtained from On.
func (a *App) Off(sub *Subscription) {
	sub.Cancel()
}

// Emit broadcasts an event from the application.
func (a *App) Emit(ctx context.Context, name string, data any) {
	a.bus.Emit(ctx, name, data, sourceApp)
}

// Filter runs the sequential transformation pipeline for name over data.
func (a *App) Filter(ctx context.Context, name string, data any) (any, error) {
	return a.bus.Filter(ctx, name, data, sourceApp)
}

// History returns a copy of the recorded events, oldest first.
func (a *App) History() []Event {
	return a.bus.History()
}

// ClearHistory drops all recorded events.
func (a *App) ClearHistory() {
	a.bus.ClearHistory()
}

// KnownEvents returns the framework's event vocabulary.
func (a *App) KnownEvents() []string {
	return KnownEvents()
}

// Logger returns the framework logger.
func (a *App) Logger() Logger {
	return a.logger
}

// Context returns an execution context emitting as the application.
func (a *App) Context() *Context {
	return a.contextFor("")
}

// contextFor builds the execution context for a module; emissions carry the
// module name as their source.
func (a *App) contextFor(moduleName string) *Context {
	source := moduleName
	if source == "" {
		source = sourceApp
	}
	return &Context{app: a, source: source}
}

// resolveContainer locates the mount container from the configuration
// unless one was supplied directly.
func (a *App) resolveContainer() error {
	a.mu.RLock()
	existing := a.container
	a.mu.RUnlock()
	if existing != nil {
		return nil
	}
	if a.document == nil {
		return ErrNoDocument
	}
	container, err := a.document.Query(a.config.MountSelector)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrContainerNotFound, a.config.MountSelector)
	}
	a.mu.Lock()
	a.container = container
	a.mu.Unlock()
	return nil
}

// resolveIndicator locates the optional loading indicator. A missing
// indicator is only a warning.
func (a *App) resolveIndicator() {
	if a.config.LoadingSelector == "" || a.document == nil {
		return
	}
	indicator, err := a.document.Query(a.config.LoadingSelector)
	if err != nil {
		a.logger.Warn("loading indicator not found", "selector", a.config.LoadingSelector)
		return
	}
	a.mu.Lock()
	a.indicator = indicator
	a.mu.Unlock()
	if v, ok := indicator.(dom.Visibility); ok {
		v.SetVisible(false)
	}
}

// mountContainer returns the live mount container, re-validating attachment
// first. A detached container is re-resolved from the original
// configuration; success emits a container-restored event, failure a
// container-error event plus an error to the direct caller.
func (a *App) mountContainer(ctx context.Context) (dom.Container, error) {
	a.mu.RLock()
	container := a.container
	a.mu.RUnlock()
	if container != nil && container.Attached() {
		return container, nil
	}

	if a.document != nil {
		if fresh, err := a.document.Query(a.config.MountSelector); err == nil {
			a.mu.Lock()
			a.container = fresh
			a.mu.Unlock()
			if container != nil {
				a.logger.Info("mount container re-resolved", "selector", a.config.MountSelector)
				a.bus.Emit(ctx, EventContainerRestored,
					map[string]any{"selector": a.config.MountSelector}, sourceApp)
			}
			return fresh, nil
		}
	}

	a.bus.Emit(ctx, EventContainerError,
		map[string]any{"selector": a.config.MountSelector}, sourceApp)
	if container == nil {
		return nil, ErrContainerNotFound
	}
	return nil, ErrContainerDetached
}

// containerAttached is the watchdog's liveness probe.
func (a *App) containerAttached() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.container != nil && a.container.Attached()
}

// recoverContainer is the watchdog's detach reaction: re-resolve the
// container and re-render the current module into the replacement.
// Best-effort; the failure path already emitted a container-error event.
func (a *App) recoverContainer(ctx context.Context) {
	if _, err := a.mountContainer(ctx); err != nil {
		return
	}
	cur := a.registry.Current()
	if cur == nil {
		return
	}
	params := Params{}
	if route := a.router.CurrentRoute(); route != nil {
		params = route.Params
	}
	if err := a.registry.Load(ctx, cur.Name(), params); err != nil {
		a.logger.Error("re-render after container recovery failed",
			"module", cur.Name(), "error", err)
	}
}

// renderHTML writes markup into the mount container.
func (a *App) renderHTML(ctx context.Context, html string) error {
	container, err := a.mountContainer(ctx)
	if err != nil {
		return err
	}
	container.SetHTML(html)
	return nil
}

// showError renders the recovered-error panel into the mount target, or
// layers it on the document when the container itself is unusable.
func (a *App) showError(ctx context.Context, title string, err error) {
	html := errorPanel(title, err)
	if container, cerr := a.mountContainer(ctx); cerr == nil {
		container.SetHTML(html)
		return
	}
	if overlay, ok := a.document.(dom.Overlay); ok {
		overlay.ShowOverlay(html)
	}
}

// setLoading flips the loading state, toggles the indicator and emits a
// loading-changed event.
func (a *App) setLoading(ctx context.Context, loading bool) {
	a.mu.Lock()
	a.loading = loading
	indicator := a.indicator
	a.mu.Unlock()

	if v, ok := indicator.(dom.Visibility); ok {
		v.SetVisible(loading)
	}
	a.bus.Emit(ctx, EventLoadingChanged,
		map[string]any{"loading": loading}, sourceApp)
}

func (a *App) setValue(key, value string) {
	a.valuesMu.Lock()
	defer a.valuesMu.Unlock()
	a.values[key] = value
}

func (a *App) value(key string) (string, bool) {
	a.valuesMu.RLock()
	defer a.valuesMu.RUnlock()
	v, ok := a.values[key]
	return v, ok
}

// watchLocation funnels externally-driven location changes (browser
// back/forward) into the navigation flow with history updates suppressed.
func (a *App) watchLocation(ctx context.Context, stop <-chan struct{}) {
	defer a.wg.Done()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case loc := <-a.backend.Changes():
			if err := a.router.navigate(ctx, a.router.pathOf(loc), false); err != nil {
				a.logger.Error("external navigation failed", "error", err)
			}
		}
	}
}

// watchClicks converts intercepted navigation-link clicks into programmatic
// navigations.
func (a *App) watchClicks(ctx context.Context, clicks dom.ClickSource, stop <-chan struct{}) {
	defer a.wg.Done()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case path := <-clicks.Navigations():
			if err := a.router.Navigate(ctx, path); err != nil {
				a.logger.Error("link navigation failed", "path", path, "error", err)
			}
		}
	}
}
