package mosaic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ManifestWatcher keeps the registry synchronized with the manifest files
// under a directory: a created or rewritten <name>.yaml re-registers the
// module (re-rendering it when it is currently mounted), a removed one
// unregisters it. This is the development-time complement of FSSource;
// the core functions fully without it.
type ManifestWatcher struct {
	app *App
	dir string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewManifestWatcher creates a watcher over dir for the given app. Start
// must be called to begin watching.
func NewManifestWatcher(app *App, dir string) *ManifestWatcher {
	return &ManifestWatcher{app: app, dir: dir}
}

// Start begins watching the manifest directory. A second Start without an
// intervening Stop is a no-op.
func (w *ManifestWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create manifest watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = watcher

	w.wg.Add(1)
	go w.run(ctx, watcher)
	return nil
}

// Stop ends watching; idempotent.
func (w *ManifestWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return
	}
	w.watcher.Close()
	w.watcher = nil
	w.wg.Wait()
}

func (w *ManifestWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.app.logger.Error("manifest watcher error", "dir", w.dir, "error", err)
		}
	}
}

func (w *ManifestWatcher) handle(ctx context.Context, event fsnotify.Event) {
	name, ok := manifestName(event.Name)
	if !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.app.UnregisterModule(name)
		w.app.logger.Info("manifest removed", "module", name)

	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if err := w.reload(ctx, name, event.Name); err != nil {
			w.app.logger.Error("manifest reload failed", "module", name, "error", err)
		}
	}
}

// reload re-registers the module from its manifest file and re-renders it
// when it is the one currently mounted.
func (w *ManifestWatcher) reload(ctx context.Context, name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	manifest, err := ParseManifestNamed(data, name)
	if err != nil {
		return err
	}
	if err := w.app.RegisterModule(manifest.Module()); err != nil {
		return err
	}
	w.app.logger.Info("manifest reloaded", "module", name)

	current := w.app.registry.Current()
	if current == nil || current.Name() != name {
		return nil
	}
	params := Params{}
	if route := w.app.router.CurrentRoute(); route != nil {
		params = route.Params
	}
	return w.app.registry.Load(ctx, name, params)
}

// manifestName maps a manifest file path to its module name.
func manifestName(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".yaml") {
		return "", false
	}
	name := strings.TrimSuffix(base, ".yaml")
	if name == "" || strings.HasPrefix(name, ".") {
		return "", false
	}
	return name, true
}
