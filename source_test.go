package mosaic

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644))
}

func TestFSSourceResolvesManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifestFile(t, dir, "promo", "render: \"<p>promo</p>\"\nroutes:\n  - path: /promo\n")

	source := NewFSSource(dir)
	m, err := source.Resolve(context.Background(), "promo")
	require.NoError(t, err)
	assert.Equal(t, "promo", m.Name())
}

func TestFSSourceMissingManifest(t *testing.T) {
	t.Parallel()

	source := NewFSSource(t.TempDir())
	_, err := source.Resolve(context.Background(), "ghost")
	require.Error(t, err)
}

func TestFSSourceRejectsPathTraversal(t *testing.T) {
	t.Parallel()

	source := NewFSSource(t.TempDir())
	_, err := source.Resolve(context.Background(), "../escape")
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestLazyLoadFromManifestDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifestFile(t, dir, "promo", "render: \"<p>promo for {{campaign}}</p>\"\nroutes:\n  - path: /promo/:campaign\n")

	app, doc := newTestApp(t, &Config{Lazy: true, ModuleBase: dir}, WithSource(NewFSSource(dir)))

	// Loading by name resolves the manifest and registers it, which also
	// auto-registers its declared routes.
	require.NoError(t, app.LoadModule(context.Background(), "promo", Params{"campaign": "spring"}))
	assert.Equal(t, "<p>promo for spring</p>", mount(t, doc).HTML())

	require.NoError(t, app.Navigate(context.Background(), "/promo/summer"))
	assert.Equal(t, "<p>promo for summer</p>", mount(t, doc).HTML())
}
