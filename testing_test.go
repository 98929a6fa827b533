package mosaic

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/mosaic/dom"
)

// testLogger records log calls for assertions while mirroring them to the
// test log.
type testLogger struct {
	t *testing.T

	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func newTestLogger(t *testing.T) *testLogger {
	return &testLogger{t: t}
}

func (l *testLogger) log(level, msg string, args []any) string {
	line := fmt.Sprintf("[%s] %s %v", level, msg, args)
	l.t.Log(line)
	return msg
}

func (l *testLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, l.log("INFO", msg, args))
}

func (l *testLogger) Error(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, l.log("ERROR", msg, args))
}

func (l *testLogger) Warn(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, l.log("WARN", msg, args))
}

func (l *testLogger) Debug(msg string, args ...any) {
	l.log("DEBUG", msg, args)
}

func (l *testLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

func (l *testLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

// newTestApp builds an App backed by an in-memory document that already
// carries the default mount element.
func newTestApp(t *testing.T, cfg *Config, opts ...Option) (*App, *dom.MemoryDocument) {
	t.Helper()

	doc := dom.NewMemoryDocument()
	doc.AddElement("#app")
	all := append([]Option{
		WithDocument(doc),
		WithLogger(newTestLogger(t)),
	}, opts...)

	app, err := New(cfg, all...)
	require.NoError(t, err)
	return app, doc
}

// mount returns the test document's mount element.
func mount(t *testing.T, doc *dom.MemoryDocument) *dom.Element {
	t.Helper()
	return doc.AddElement("#app")
}

// staticModule is a minimal interface-style module rendering fixed markup.
type staticModule struct {
	name string
	html string
}

func (m *staticModule) Name() string { return m.name }

func (m *staticModule) Render(ctx context.Context, container dom.Container, params Params, mc *Context) error {
	container.SetHTML(m.html)
	return nil
}
