package dom

import (
	"fmt"
	"sync"
)

// MemoryDocument is an in-memory Document for tests and server-side
// harnesses. Elements are registered under selectors and behave like
// detachable containers; link clicks can be simulated with Click.
type MemoryDocument struct {
	mu       sync.RWMutex
	elements map[string]*Element
	overlays []string
	clicks   chan string
}

// NewMemoryDocument creates an empty in-memory document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{
		elements: make(map[string]*Element),
		clicks:   make(chan string, 16),
	}
}

// AddElement registers an element under the given selector and returns it.
// Re-adding a selector returns the existing element re-attached.
func (d *MemoryDocument) AddElement(selector string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[selector]; ok {
		el.attach()
		return el
	}
	el := &Element{
		selector: selector,
		attrs:    make(map[string]string),
		attached: true,
		visible:  true,
	}
	d.elements[selector] = el
	return el
}

// RemoveElement detaches the element registered under selector and drops
// it from the document. A later AddElement for the same selector creates a
// fresh element, modeling a host page replacing a node.
func (d *MemoryDocument) RemoveElement(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[selector]; ok {
		el.Detach()
		delete(d.elements, selector)
	}
}

// ReplaceElement atomically swaps the element under selector for a fresh
// one: the old element detaches and the replacement is registered in the
// same step, so the selector never resolves to a dead node in between.
func (d *MemoryDocument) ReplaceElement(selector string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[selector]; ok {
		el.Detach()
	}
	el := &Element{
		selector: selector,
		attrs:    make(map[string]string),
		attached: true,
		visible:  true,
	}
	d.elements[selector] = el
	return el
}

// Query implements Document.
func (d *MemoryDocument) Query(selector string) (Container, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	el, ok := d.elements[selector]
	if !ok || !el.Attached() {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return el, nil
}

// Click simulates a user click on the element registered under selector.
// If the element carries the navigation link attribute, the path is
// delivered on the Navigations channel; other clicks are ignored, matching
// document-level interception of marked links only.
func (d *MemoryDocument) Click(selector string) {
	d.mu.RLock()
	el, ok := d.elements[selector]
	d.mu.RUnlock()
	if !ok || !el.Attached() {
		return
	}

	path := el.Attr(LinkAttr)
	if path == "" {
		return
	}
	select {
	case d.clicks <- path:
	default:
	}
}

// Navigations implements ClickSource.
func (d *MemoryDocument) Navigations() <-chan string {
	return d.clicks
}

// ShowOverlay implements Overlay by recording the markup.
func (d *MemoryDocument) ShowOverlay(html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlays = append(d.overlays, html)
}

// Overlays returns the markup layered on the document so far.
func (d *MemoryDocument) Overlays() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.overlays))
	copy(out, d.overlays)
	return out
}

// Element is an in-memory container. It supports detachment so container
// liveness handling can be exercised without a browser.
type Element struct {
	mu       sync.RWMutex
	selector string
	html     string
	attrs    map[string]string
	attached bool
	visible  bool
}

// SetHTML implements Container.
func (e *Element) SetHTML(html string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.html = html
}

// HTML implements Container.
func (e *Element) HTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.html
}

// Clear implements Container.
func (e *Element) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.html = ""
}

// Attached implements Container.
func (e *Element) Attached() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attached
}

// Detach removes the element from its document. Subsequent Query calls for
// its selector fail until the element is re-added.
func (e *Element) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attached = false
}

func (e *Element) attach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attached = true
}

// SetVisible implements Visibility.
func (e *Element) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = visible
}

// Visible implements Visibility.
func (e *Element) Visible() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.visible
}

// SetAttr sets an attribute on the element.
func (e *Element) SetAttr(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

// Attr returns the attribute value, or "" if unset.
func (e *Element) Attr(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attrs[name]
}
