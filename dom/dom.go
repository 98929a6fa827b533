// Package dom defines the rendering-target capabilities the framework
// consumes. The framework never touches a real DOM directly: the host hands
// it a Document to resolve elements from and Containers to write markup
// into. Browser hosts back these with real elements; tests and server-side
// harnesses use the in-memory implementation in this package.
package dom

import "errors"

// Package errors
var (
	ErrElementNotFound = errors.New("element not found")
)

// LinkAttr is the data attribute that marks an element as a navigation
// link. Clicks on elements carrying it are intercepted at the document
// level and converted into programmatic navigations.
const LinkAttr = "data-mosaic-link"

// Container is the single element the framework is permitted to overwrite.
// Implementations must tolerate writes of arbitrary markup; the framework
// performs no escaping or diffing.
type Container interface {
	// SetHTML replaces the container's content with the given markup.
	SetHTML(html string)

	// HTML returns the container's current content.
	HTML() string

	// Clear removes all content from the container.
	Clear()

	// Attached reports whether the container is still part of its
	// document. The framework re-validates this before every render.
	Attached() bool
}

// Visibility is an optional container capability used for the loading
// indicator element, which is toggled rather than written into.
type Visibility interface {
	SetVisible(visible bool)
	Visible() bool
}

// Document resolves containers by selector. It stands in for the host
// page: the framework asks it for the mount target and, optionally, the
// loading indicator.
type Document interface {
	// Query returns the container matching the selector, or
	// ErrElementNotFound if the document has no such element.
	Query(selector string) (Container, error)
}

// ClickSource is an optional document capability. Documents that can
// observe user interaction deliver the paths of clicked navigation links
// (elements carrying LinkAttr) on the returned channel, with the default
// link behavior already suppressed.
type ClickSource interface {
	// Navigations returns the channel of link-click paths.
	Navigations() <-chan string
}

// Overlay is an optional document capability used as the last-resort
// surface for error panels when the mount container itself is unusable.
type Overlay interface {
	// ShowOverlay layers the given markup on top of the document.
	ShowOverlay(html string)
}
