package mosaic

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/GoCodeAlone/mosaic/history"
)

// Router owns the path-pattern registry and the navigation state machine.
// A navigation moves through resolving, guarding, loading and settling in
// strict sequence on the caller's goroutine; not-found and error branches
// terminate it early. Routes are stored by exact path and matched lazily,
// in registration order, so registration order is semantically significant:
// of two patterns matching the same path, the first registered wins.
type Router struct {
	app *App

	mu      sync.RWMutex
	routes  map[string]*Route
	order   []*Route
	current *ResolvedRoute
}

func newRouter(app *App) *Router {
	return &Router{
		app:    app,
		routes: make(map[string]*Route),
	}
}

// RegisterRoute stores a route for the path. The options must name a module
// or carry a handler; otherwise registration fails with
// ErrRouteHandlerRequired. Re-registering an exact path overwrites the
// earlier route in place. Emits a route-registered event.
func (r *Router) RegisterRoute(path string, opts RouteOptions) error {
	if path == "" {
		return ErrRoutePathRequired
	}
	if opts.Module == "" && opts.Handler.IsZero() {
		return fmt.Errorf("%w: %s", ErrRouteHandlerRequired, path)
	}

	route := &Route{
		Path:        path,
		Module:      opts.Module,
		Handler:     opts.Handler,
		BeforeEnter: opts.BeforeEnter,
		AfterEnter:  opts.AfterEnter,
		Exact:       opts.Exact,
	}

	r.mu.Lock()
	if prev, ok := r.routes[path]; ok {
		for i, existing := range r.order {
			if existing == prev {
				r.order[i] = route
				break
			}
		}
	} else {
		r.order = append(r.order, route)
	}
	r.routes[path] = route
	r.mu.Unlock()

	r.app.bus.Emit(context.Background(), EventRouteRegistered,
		map[string]any{"path": path, "module": opts.Module}, sourceRouter)
	return nil
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Route, len(r.order))
	copy(out, r.order)
	return out
}

// CurrentRoute returns the route of the last settled navigation, or nil.
func (r *Router) CurrentRoute() *ResolvedRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// findMatchingRoute resolves a path: exact key hit first, then the
// registered patterns in registration order, first match winning. Routes
// marked Exact never participate in pattern matching.
func (r *Router) findMatchingRoute(path string) *ResolvedRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if route, ok := r.routes[path]; ok {
		return &ResolvedRoute{Route: route, Path: path, Params: Params{}}
	}
	for _, route := range r.order {
		if route.Exact {
			continue
		}
		if params, ok := matchPattern(route.Path, path); ok {
			return &ResolvedRoute{Route: route, Path: path, Params: params}
		}
	}
	return nil
}

// Navigate drives a full navigation to path, updating the browser-visible
// location. Recovered failures (no match, guard veto, handler errors) do
// not surface as a returned error; the error return is reserved for context
// cancellation.
func (r *Router) Navigate(ctx context.Context, path string) error {
	return r.navigate(ctx, path, true)
}

// navigate is the state machine. updateHistory is false for the initial
// resolution and for externally-driven navigations, where the visible
// location is already correct.
func (r *Router) navigate(ctx context.Context, path string, updateHistory bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Resolving
	to := r.findMatchingRoute(path)
	if to == nil {
		r.notFound(ctx, path)
		return nil
	}
	from := r.CurrentRoute()

	// Guarding: global, then route, then target module. A false return is
	// a deliberate cancellation: prior route and location stay untouched,
	// and no event is emitted.
	ok, err := r.runGuards(ctx, to, from)
	if err != nil {
		r.fail(ctx, path, fmt.Errorf("guard: %w", err), true)
		return nil
	}
	if !ok {
		r.app.logger.Debug("navigation cancelled by guard", "path", path)
		return nil
	}

	// Loading
	if updateHistory {
		r.writeLocation(path)
	}
	if to.Route.Module != "" {
		if err := r.app.registry.Load(ctx, to.Route.Module, to.Params); err != nil {
			return err
		}
	}
	if err := r.dispatchHandler(ctx, to); err != nil {
		r.fail(ctx, path, fmt.Errorf("handler: %w", err), true)
		return nil
	}

	// Settling: route hook, module hook, then the global one. A hook
	// error takes the error branch and leaves the prior route current.
	if err := r.runAfterEnter(ctx, to, from); err != nil {
		r.fail(ctx, path, fmt.Errorf("after enter: %w", err), false)
		return nil
	}

	r.mu.Lock()
	r.current = to
	r.mu.Unlock()

	r.app.bus.Emit(ctx, EventRouteChanged,
		map[string]any{"path": path, "params": to.Params}, sourceRouter)
	return nil
}

func (r *Router) runGuards(ctx context.Context, to, from *ResolvedRoute) (bool, error) {
	guards := make([]GuardFunc, 0, 3)
	if g := r.app.config.BeforeEach; g != nil {
		guards = append(guards, g)
	}
	if g := to.Route.BeforeEnter; g != nil {
		guards = append(guards, g)
	}
	if to.Route.Module != "" {
		if m, ok := r.app.registry.Get(to.Route.Module); ok {
			if g, ok := m.(BeforeEnterGuard); ok {
				guards = append(guards, g.BeforeEnter)
			}
		}
	}

	for _, guard := range guards {
		ok, err := guard(ctx, to, from)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (r *Router) dispatchHandler(ctx context.Context, to *ResolvedRoute) error {
	mc := r.app.contextFor(to.Route.Module)
	switch to.Route.Handler.kind {
	case handlerCallback:
		return to.Route.Handler.callback(ctx, to.Params, mc, to.Route)
	case handlerTemplate:
		html := substituteTemplate(to.Route.Handler.template, to.Params, mc)
		return r.app.renderHTML(ctx, html)
	default:
		return nil
	}
}

func (r *Router) runAfterEnter(ctx context.Context, to, from *ResolvedRoute) error {
	hooks := make([]HookFunc, 0, 3)
	if h := to.Route.AfterEnter; h != nil {
		hooks = append(hooks, h)
	}
	if to.Route.Module != "" {
		if m, ok := r.app.registry.Get(to.Route.Module); ok {
			if h, ok := m.(AfterEnterHook); ok {
				hooks = append(hooks, h.AfterEnter)
			}
		}
	}
	if h := r.app.config.AfterEach; h != nil {
		hooks = append(hooks, h)
	}

	for _, hook := range hooks {
		if err := hook(ctx, to, from); err != nil {
			return err
		}
	}
	return nil
}

// fail is the error branch: log, emit a route-error event, optionally show
// the error panel, and leave the prior route current.
func (r *Router) fail(ctx context.Context, path string, err error, showPanel bool) {
	r.app.logger.Error("navigation failed", "path", path, "error", err)
	r.app.bus.Emit(ctx, EventRouteError,
		map[string]any{"path": path, "error": err.Error()}, sourceRouter)
	if showPanel {
		r.app.showError(ctx, fmt.Sprintf("Navigation to %q failed", path), err)
	}
}

// notFound dispatches the configured not-found handling by its shape and
// always emits a route-not-found event.
func (r *Router) notFound(ctx context.Context, path string) {
	r.app.logger.Warn("no route matched", "path", path)
	r.app.bus.Emit(ctx, EventRouteNotFound,
		map[string]any{"path": path}, sourceRouter)

	nf := r.app.config.NotFound
	var err error
	switch nf.kind {
	case notFoundCallback:
		err = nf.callback(ctx, path, r.app.contextFor(""))
	case notFoundTemplate:
		mc := r.app.contextFor("")
		html := substituteTemplate(nf.template, Params{"path": path}, mc)
		err = r.app.renderHTML(ctx, html)
	case notFoundModule:
		err = r.app.registry.Load(ctx, nf.module, Params{"path": path})
	default:
		err = r.app.renderHTML(ctx, notFoundPanel(path))
	}
	if err != nil {
		r.app.logger.Error("not-found handling failed", "path", path, "error", err)
		r.app.bus.Emit(ctx, EventRouteError,
			map[string]any{"path": path, "error": err.Error()}, sourceRouter)
	}
}

// writeLocation pushes the path into the location backend according to the
// router mode: history mode writes the base-prefixed document path, the
// fragment modes write the fragment and leave the path alone.
func (r *Router) writeLocation(path string) {
	loc := r.app.backend.Location()
	switch r.app.config.Mode {
	case ModeHash:
		loc.Fragment = path
	case ModeHashbang:
		loc.Fragment = "!" + path
	default:
		loc.Path = joinBase(r.app.config.BasePath, path)
		loc.Fragment = ""
	}
	r.app.backend.Push(loc)
}

// readLocation performs the inverse of writeLocation on the current
// location, defaulting to "/".
func (r *Router) readLocation() string {
	return r.pathOf(r.app.backend.Location())
}

func (r *Router) pathOf(loc history.Location) string {
	var path string
	switch r.app.config.Mode {
	case ModeHash:
		path = loc.Fragment
	case ModeHashbang:
		path = strings.TrimPrefix(loc.Fragment, "!")
	default:
		path = strings.TrimPrefix(loc.Path, r.app.config.BasePath)
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// joinBase combines the configured base prefix with a path, avoiding a
// doubled or missing separator.
func joinBase(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
