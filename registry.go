package mosaic

import (
	"context"
	"fmt"
	"sync"
)

// ModuleRegistry owns the named module definitions and the mount lifecycle
// of the single current module. Mounting is serialized through the router's
// navigation flow; the registry is the only writer of the current-module
// reference.
type ModuleRegistry struct {
	app *App

	mu      sync.RWMutex
	modules map[string]Module
	current Module
}

func newModuleRegistry(app *App) *ModuleRegistry {
	return &ModuleRegistry{
		app:     app,
		modules: make(map[string]Module),
	}
}

// Register stores the module under its name, overwriting any prior entry.
// The module's OnRegister hook runs immediately, its error isolated;
// declared routes are pushed into the router one by one, a failing route
// logged without blocking its siblings. Emits a module-registered event.
func (r *ModuleRegistry) Register(m Module) error {
	if err := validateModule(m); err != nil {
		return err
	}
	name := m.Name()

	r.mu.Lock()
	r.modules[name] = m
	r.mu.Unlock()

	if reg, ok := m.(Registerable); ok {
		if err := r.safeOnRegister(reg, r.app.contextFor(name)); err != nil {
			r.app.logger.Error("module OnRegister failed", "module", name, "error", err)
		}
	}

	if rp, ok := m.(RouteProvider); ok {
		for _, decl := range rp.Routes() {
			opts := decl.normalize(name)
			if err := r.app.router.RegisterRoute(decl.Path, opts); err != nil {
				r.app.logger.Error("module route registration failed",
					"module", name, "path", decl.Path, "error", err)
			}
		}
	}

	r.app.bus.Emit(context.Background(), EventModuleRegistered,
		map[string]any{"module": name}, sourceRegistry)
	return nil
}

// safeOnRegister isolates a panicking OnRegister hook so it cannot abort
// the registration.
func (r *ModuleRegistry) safeOnRegister(reg Registerable, mc *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("OnRegister panic: %v", rec)
		}
	}()
	return reg.OnRegister(mc)
}

// Unregister removes the module if present and emits a module-unregistered
// event. Unknown names are a no-op.
func (r *ModuleRegistry) Unregister(name string) {
	r.mu.Lock()
	_, ok := r.modules[name]
	delete(r.modules, name)
	r.mu.Unlock()

	if !ok {
		return
	}
	r.app.bus.Emit(context.Background(), EventModuleUnregistered,
		map[string]any{"module": name}, sourceRegistry)
}

// Get returns the registered module and whether it exists.
func (r *ModuleRegistry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Current returns the currently mounted module, or nil.
func (r *ModuleRegistry) Current() Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Names returns the registered module names.
func (r *ModuleRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	return names
}

func (r *ModuleRegistry) clearCurrent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// Load mounts the named module: resolve, BeforeMount, tear down the
// previous module, clear the container, Render, AfterMount, then mark it
// current and emit a module-loaded event. The loading state is raised for
// the duration unconditionally.
//
// Resolution and lifecycle failures are recovered here: they emit a
// module-error event and render the error panel instead of propagating, so
// the navigation that triggered the load is not itself rejected. The
// returned error is non-nil only when ctx was cancelled.
func (r *ModuleRegistry) Load(ctx context.Context, name string, params Params) error {
	r.app.setLoading(ctx, true)
	defer r.app.setLoading(ctx, false)

	err := r.load(ctx, name, params)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}

	r.app.logger.Error("module load failed", "module", name, "error", err)
	r.app.bus.Emit(ctx, EventModuleError,
		map[string]any{"module": name, "error": err.Error()}, sourceRegistry)
	r.app.showError(ctx, fmt.Sprintf("Failed to load module %q", name), err)
	return nil
}

func (r *ModuleRegistry) load(ctx context.Context, name string, params Params) error {
	m, err := r.resolve(ctx, name)
	if err != nil {
		return err
	}
	mc := r.app.contextFor(name)

	if bm, ok := m.(BeforeMounter); ok {
		if err := bm.BeforeMount(ctx, params, mc); err != nil {
			return fmt.Errorf("before mount: %w", err)
		}
	}

	// Teardown always precedes the next mount: at most one module is live.
	r.mu.RLock()
	prev := r.current
	r.mu.RUnlock()
	if prev != nil && prev != m {
		if d, ok := prev.(Destroyer); ok {
			if err := d.Destroy(ctx); err != nil {
				return fmt.Errorf("destroy %s: %w", prev.Name(), err)
			}
		}
	}

	container, err := r.app.mountContainer(ctx)
	if err != nil {
		return err
	}
	container.Clear()

	if err := m.Render(ctx, container, params, mc); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if am, ok := m.(AfterMounter); ok {
		if err := am.AfterMount(ctx, container, params, mc); err != nil {
			return fmt.Errorf("after mount: %w", err)
		}
	}

	r.mu.Lock()
	r.current = m
	r.mu.Unlock()

	r.app.bus.Emit(ctx, EventModuleLoaded,
		map[string]any{"module": name, "params": params}, sourceRegistry)
	return nil
}

// resolve looks the module up in the registry, falling back to the lazy
// source when enabled. A lazily resolved module is registered under the
// requested name before it mounts.
func (r *ModuleRegistry) resolve(ctx context.Context, name string) (Module, error) {
	if m, ok := r.Get(name); ok {
		return m, nil
	}
	if !r.app.config.Lazy {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	if r.app.source == nil {
		return nil, fmt.Errorf("%w: cannot resolve %s", ErrNoModuleSource, name)
	}

	m, err := r.app.source.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModuleNotFound, name, err)
	}
	if err := r.Register(m); err != nil {
		return nil, fmt.Errorf("register resolved module %s: %w", name, err)
	}
	return m, nil
}
