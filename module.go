// Package mosaic is a composition runtime for micro-frontend applications.
// Independently authored UI modules are registered with an App, routed to by
// path, mounted into a shared container, and torn down again, while a
// central event bus lets modules and plugins communicate without direct
// references to each other.
//
// The runtime is rendering-target agnostic: it writes markup into a
// dom.Container and synchronizes navigation state through a
// history.Backend, both narrow capabilities supplied by the host. A browser
// host backs them with the real DOM and History API; tests and server-side
// harnesses use the in-memory implementations shipped with the framework.
//
// Basic usage:
//
//	doc := dom.NewMemoryDocument()
//	doc.AddElement("#app")
//	app, err := mosaic.New(&mosaic.Config{MountSelector: "#app"},
//		mosaic.WithDocument(doc),
//		mosaic.WithLogger(mosaic.NewSlogLogger(nil)),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	app.RegisterModule(&mosaic.ModuleDef{
//		ModuleName: "home",
//		RenderFunc: func(ctx context.Context, c dom.Container, p mosaic.Params, mc *mosaic.Context) error {
//			c.SetHTML("<h1>Home</h1>")
//			return nil
//		},
//		RouteDecls: []mosaic.RouteDecl{{Path: "/"}},
//	})
//	app.Start(context.Background())
package mosaic

import (
	"context"

	"github.com/GoCodeAlone/mosaic/dom"
)

// Module is a named unit of UI behavior. Rendering is the only mandatory
// capability; everything else a module can do is declared through the
// optional interfaces below, which the framework discovers by type
// assertion.
type Module interface {
	// Name returns the unique identifier for this module. It is the key
	// in the registry; registering another module under the same name
	// overwrites the first.
	Name() string

	// Render produces the module's visible output into the provided
	// mount target. The container is cleared before the call. Params
	// carry the values extracted from the matched route pattern.
	Render(ctx context.Context, container dom.Container, params Params, mc *Context) error
}

// Registerable modules are notified once, at registration time. An error
// is logged and does not abort the registration.
type Registerable interface {
	OnRegister(mc *Context) error
}

// BeforeMounter modules run logic before each mount, ahead of the
// previous module's teardown. An error aborts the mount.
type BeforeMounter interface {
	BeforeMount(ctx context.Context, params Params, mc *Context) error
}

// AfterMounter modules run logic after each successful render.
type AfterMounter interface {
	AfterMount(ctx context.Context, container dom.Container, params Params, mc *Context) error
}

// Destroyer modules release resources when they are unmounted. Destroy is
// awaited before the next module renders, and during App teardown.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// BeforeEnterGuard modules can veto navigations into their routes.
// Returning false cancels the navigation silently; an error is a runtime
// failure and is reported as one.
type BeforeEnterGuard interface {
	BeforeEnter(ctx context.Context, to, from *ResolvedRoute) (bool, error)
}

// AfterEnterHook modules observe completed navigations into their routes.
type AfterEnterHook interface {
	AfterEnter(ctx context.Context, to, from *ResolvedRoute) error
}

// RouteProvider modules declare routes that are pushed into the router
// when the module is registered. Declarations are processed in order; a
// declaration with empty options routes to the module's own Render.
type RouteProvider interface {
	Routes() []RouteDecl
}

// ModuleDef is a function-field Module for object-style definitions: the
// zero value plus a name and a render function is a complete module, and
// every optional capability is picked up from the corresponding field.
// Registering a ModuleDef without a RenderFunc fails with
// ErrModuleRenderRequired.
type ModuleDef struct {
	ModuleName string

	RenderFunc      func(ctx context.Context, container dom.Container, params Params, mc *Context) error
	OnRegisterFunc  func(mc *Context) error
	BeforeMountFunc func(ctx context.Context, params Params, mc *Context) error
	AfterMountFunc  func(ctx context.Context, container dom.Container, params Params, mc *Context) error
	DestroyFunc     func(ctx context.Context) error
	BeforeEnterFunc func(ctx context.Context, to, from *ResolvedRoute) (bool, error)
	AfterEnterFunc  func(ctx context.Context, to, from *ResolvedRoute) error

	// RouteDecls are auto-registered with the router, in order.
	RouteDecls []RouteDecl
}

// Name implements Module.
func (d *ModuleDef) Name() string { return d.ModuleName }

// Render implements Module.
func (d *ModuleDef) Render(ctx context.Context, container dom.Container, params Params, mc *Context) error {
	if d.RenderFunc == nil {
		return ErrModuleRenderRequired
	}
	return d.RenderFunc(ctx, container, params, mc)
}

// OnRegister implements Registerable.
func (d *ModuleDef) OnRegister(mc *Context) error {
	if d.OnRegisterFunc == nil {
		return nil
	}
	return d.OnRegisterFunc(mc)
}

// BeforeMount implements BeforeMounter.
func (d *ModuleDef) BeforeMount(ctx context.Context, params Params, mc *Context) error {
	if d.BeforeMountFunc == nil {
		return nil
	}
	return d.BeforeMountFunc(ctx, params, mc)
}

// AfterMount implements AfterMounter.
func (d *ModuleDef) AfterMount(ctx context.Context, container dom.Container, params Params, mc *Context) error {
	if d.AfterMountFunc == nil {
		return nil
	}
	return d.AfterMountFunc(ctx, container, params, mc)
}

// Destroy implements Destroyer.
func (d *ModuleDef) Destroy(ctx context.Context) error {
	if d.DestroyFunc == nil {
		return nil
	}
	return d.DestroyFunc(ctx)
}

// BeforeEnter implements BeforeEnterGuard.
func (d *ModuleDef) BeforeEnter(ctx context.Context, to, from *ResolvedRoute) (bool, error) {
	if d.BeforeEnterFunc == nil {
		return true, nil
	}
	return d.BeforeEnterFunc(ctx, to, from)
}

// AfterEnter implements AfterEnterHook.
func (d *ModuleDef) AfterEnter(ctx context.Context, to, from *ResolvedRoute) error {
	if d.AfterEnterFunc == nil {
		return nil
	}
	return d.AfterEnterFunc(ctx, to, from)
}

// Routes implements RouteProvider.
func (d *ModuleDef) Routes() []RouteDecl { return d.RouteDecls }

// validateModule checks the registration-time invariants shared by
// interface modules and ModuleDef values.
func validateModule(m Module) error {
	if m == nil {
		return ErrModuleNil
	}
	if m.Name() == "" {
		return ErrModuleNameRequired
	}
	if def, ok := m.(*ModuleDef); ok && def.RenderFunc == nil {
		return ErrModuleRenderRequired
	}
	return nil
}
