// Package history defines the location capability the router synchronizes
// with. A Backend models the browser-visible navigation state: a path, a
// fragment, and a history stack. Browser hosts back it with the History and
// Location APIs; the in-memory implementation serves tests and server-side
// harnesses, including simulated back/forward traversal.
package history

// Location is the browser-visible navigation state the router reads and
// writes. Path carries the document path, Fragment the part after "#",
// without the "#" itself.
type Location struct {
	Path     string
	Fragment string
}

// Backend is the navigation state store.
//
// Push and Replace originate from the framework; Changes delivers
// navigations that originate outside it (browser back/forward), which the
// router re-resolves without writing the location again.
type Backend interface {
	// Location returns the current navigation state.
	Location() Location

	// Push appends a new history entry and makes it current.
	Push(loc Location)

	// Replace overwrites the current history entry.
	Replace(loc Location)

	// Changes returns the channel on which externally-driven location
	// changes are delivered.
	Changes() <-chan Location
}
