package mosaic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source resolves modules that are not in the registry when a load asks for
// them. It is consulted only when Config.Lazy is enabled; a resolved module
// is registered under the requested name before it mounts.
type Source interface {
	Resolve(ctx context.Context, name string) (Module, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, name string) (Module, error)

// Resolve implements Source.
func (f SourceFunc) Resolve(ctx context.Context, name string) (Module, error) {
	return f(ctx, name)
}

// FSSource resolves modules from manifest files on disk by the convention
// <base>/<name>.yaml.
type FSSource struct {
	base string
}

// NewFSSource creates a manifest source rooted at base.
func NewFSSource(base string) *FSSource {
	return &FSSource{base: base}
}

// Resolve implements Source. The manifest's declared name must match the
// requested one; a manifest without a name inherits it from the file.
func (s *FSSource) Resolve(ctx context.Context, name string) (Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrModuleNotFound, name)
	}

	path := filepath.Join(s.base, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	manifest, err := ParseManifestNamed(data, name)
	if err != nil {
		return nil, err
	}
	return manifest.Module(), nil
}
