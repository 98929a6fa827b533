package mosaic

import "context"

// Context is the capability facade handed to modules, handlers and guards.
// It exposes navigation, rendering into the mount container, both event
// delivery modes, listener management and a shared key-value store: a
// narrow surface instead of the full App.
//
// The key-value store is shared across the whole App instance and doubles
// as the fallback substitution source for template handlers.
type Context struct {
	app    *App
	source string
}

// Navigate drives a programmatic navigation to path.
func (c *Context) Navigate(ctx context.Context, path string) error {
	return c.app.router.Navigate(ctx, path)
}

// Render writes markup into the mount container, re-validating the
// container first.
func (c *Context) Render(ctx context.Context, html string) error {
	return c.app.renderHTML(ctx, html)
}

// Emit broadcasts an event. The emitting module's name is recorded as the
// event source.
func (c *Context) Emit(ctx context.Context, name string, data any) {
	c.app.bus.Emit(ctx, name, data, c.source)
}

// Filter runs the sequential transformation pipeline for name over data.
func (c *Context) Filter(ctx context.Context, name string, data any) (any, error) {
	return c.app.bus.Filter(ctx, name, data, c.source)
}

// On registers a listener for the event name.
func (c *Context) On(event string, fn Listener) *Subscription {
	return c.app.listeners.add(event, fn)
}

// Off cancels a subscription obtained from On.
func (c *Context) Off(sub *Subscription) {
	sub.Cancel()
}

// Set stores a shared value, visible to every module and to template
// substitution.
func (c *Context) Set(key, value string) {
	c.app.setValue(key, value)
}

// Value returns a shared value and whether it is set.
func (c *Context) Value(key string) (string, bool) {
	return c.app.value(key)
}

// Logger returns the framework logger.
func (c *Context) Logger() Logger {
	return c.app.logger
}
