package mosaic

import (
	"context"
	"strings"
)

// Params carries the values extracted from a matched route pattern, keyed by
// the ":name" segment names without the colon.
type Params map[string]string

// HandlerFunc is a callback route handler. It runs after the route's module
// (if any) has mounted.
type HandlerFunc func(ctx context.Context, params Params, mc *Context, route *Route) error

// GuardFunc can veto a navigation before it takes effect. Returning false
// cancels the navigation silently; an error is a runtime failure.
type GuardFunc func(ctx context.Context, to, from *ResolvedRoute) (bool, error)

// HookFunc observes a completed navigation.
type HookFunc func(ctx context.Context, to, from *ResolvedRoute) error

// handlerKind discriminates the closed set of handler shapes. The shape is
// resolved once at registration time; dispatch never re-inspects types.
type handlerKind int

const (
	handlerNone handlerKind = iota
	handlerTemplate
	handlerCallback
)

// Handler is the resolution strategy attached to a route beyond (or instead
// of) a module: nothing, a template string with {{var}} placeholders, or a
// callback. The zero value is "no handler".
type Handler struct {
	kind     handlerKind
	template string
	callback HandlerFunc
}

// TemplateHandler renders the given template into the mount target,
// substituting {{var}} tokens from the resolved params and then from the
// execution context. Unmatched tokens are left verbatim.
func TemplateHandler(template string) Handler {
	return Handler{kind: handlerTemplate, template: template}
}

// CallbackHandler invokes fn with the resolved params, the execution context
// and the matched route.
func CallbackHandler(fn HandlerFunc) Handler {
	return Handler{kind: handlerCallback, callback: fn}
}

// IsZero reports whether the handler is the "no handler" shape.
func (h Handler) IsZero() bool { return h.kind == handlerNone }

// RouteOptions configures a route at registration time. At least one of
// Module or Handler must be set; registration fails with
// ErrRouteHandlerRequired otherwise.
type RouteOptions struct {
	// Module names the module to mount when the route matches.
	Module string

	// Handler runs after the module mount (or alone, if Module is empty).
	Handler Handler

	// BeforeEnter and AfterEnter are per-route guards, run between the
	// global guards and the target module's own.
	BeforeEnter GuardFunc
	AfterEnter  HookFunc

	// Exact restricts the route to full-path equality; it never
	// participates in pattern matching.
	Exact bool
}

// Route is a registered path-to-resolution mapping. Routes are additive:
// there is no removal, and re-registering an exact path overwrites the
// earlier entry (last write wins).
type Route struct {
	Path        string
	Module      string
	Handler     Handler
	BeforeEnter GuardFunc
	AfterEnter  HookFunc
	Exact       bool
}

// ResolvedRoute is a route plus the params extracted for one navigation. It
// is produced fresh per navigation and retained only as the current route.
type ResolvedRoute struct {
	Route  *Route
	Path   string
	Params Params
}

// RouteDecl is a route declared by a module, auto-registered when the module
// is. The declaration shapes form a closed set, resolved once at
// registration:
//
//   - all fields zero: the route mounts the declaring module itself
//   - Template set: a template handler
//   - Handler set: a callback handler
//   - Options set: full route options; if they name neither handler nor
//     module, the declaring module is mounted
type RouteDecl struct {
	Path     string
	Template string
	Handler  HandlerFunc
	Options  *RouteOptions
}

// normalize resolves a declaration into registration-ready options for the
// declaring module.
func (d RouteDecl) normalize(moduleName string) RouteOptions {
	switch {
	case d.Options != nil:
		opts := *d.Options
		if opts.Handler.IsZero() && opts.Module == "" {
			opts.Module = moduleName
		}
		return opts
	case d.Template != "":
		return RouteOptions{Handler: TemplateHandler(d.Template)}
	case d.Handler != nil:
		return RouteOptions{Handler: CallbackHandler(d.Handler)}
	default:
		return RouteOptions{Module: moduleName}
	}
}

// matchPattern tests path against a ":param" pattern segment-wise: equal
// segment counts, literal segments must match exactly, each parameter
// segment binds its value positionally.
func matchPattern(pattern, path string) (Params, bool) {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patternSegs) != len(pathSegs) {
		return nil, false
	}

	params := make(Params)
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return nil, false
		}
	}
	return params, true
}

// splitPath breaks a path into its non-empty segments. "/" and "" both
// yield zero segments, so they compare equal under matchPattern.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}
