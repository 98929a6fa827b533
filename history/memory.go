package history

import "sync"

// Memory is an in-memory Backend with a real history stack. Back and
// Forward emulate browser traversal: they move the cursor and deliver the
// resulting location on the Changes channel, exactly as a browser delivers
// popstate after it has already updated the visible URL.
type Memory struct {
	mu      sync.Mutex
	entries []Location
	cursor  int
	changes chan Location
}

// NewMemory creates a memory backend positioned at the given initial
// location. A zero Location places it at the document root.
func NewMemory(initial Location) *Memory {
	return &Memory{
		entries: []Location{initial},
		changes: make(chan Location, 16),
	}
}

// Location implements Backend.
func (m *Memory) Location() Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.cursor]
}

// Push implements Backend. Entries after the cursor are discarded, as a
// browser discards the forward stack on a new navigation.
func (m *Memory) Push(loc Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries[:m.cursor+1], loc)
	m.cursor = len(m.entries) - 1
}

// Replace implements Backend.
func (m *Memory) Replace(loc Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.cursor] = loc
}

// Changes implements Backend.
func (m *Memory) Changes() <-chan Location {
	return m.changes
}

// Back moves one entry backwards and reports whether it moved. The
// resulting location is delivered on Changes.
func (m *Memory) Back() bool {
	m.mu.Lock()
	if m.cursor == 0 {
		m.mu.Unlock()
		return false
	}
	m.cursor--
	loc := m.entries[m.cursor]
	m.mu.Unlock()

	m.changes <- loc
	return true
}

// Forward moves one entry forwards and reports whether it moved. The
// resulting location is delivered on Changes.
func (m *Memory) Forward() bool {
	m.mu.Lock()
	if m.cursor >= len(m.entries)-1 {
		m.mu.Unlock()
		return false
	}
	m.cursor++
	loc := m.entries[m.cursor]
	m.mu.Unlock()

	m.changes <- loc
	return true
}

// Depth returns the number of entries on the stack.
func (m *Memory) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
