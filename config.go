package mosaic

import (
	"context"
	"fmt"
)

// Mode selects how the router synchronizes the browser-visible location.
type Mode string

const (
	// ModeHistory writes the document path and pushes history entries,
	// combined with the configured base path.
	ModeHistory Mode = "history"

	// ModeHash writes the URL fragment.
	ModeHash Mode = "hash"

	// ModeHashbang writes the URL fragment with a "!" prefix.
	ModeHashbang Mode = "hashbang"
)

// notFoundKind discriminates the closed set of not-found handling shapes.
type notFoundKind int

const (
	notFoundDefault notFoundKind = iota
	notFoundCallback
	notFoundTemplate
	notFoundModule
)

// NotFound configures what happens when no route matches a navigation. The
// zero value renders the built-in fallback panel. Whichever shape is
// configured, a route-not-found event is always emitted.
type NotFound struct {
	kind     notFoundKind
	callback func(ctx context.Context, path string, mc *Context) error
	template string
	module   string
}

// NotFoundCallback invokes fn with the unmatched path.
func NotFoundCallback(fn func(ctx context.Context, path string, mc *Context) error) NotFound {
	return NotFound{kind: notFoundCallback, callback: fn}
}

// NotFoundTemplate renders the template into the mount target, with the
// unmatched path available as {{path}}.
func NotFoundTemplate(template string) NotFound {
	return NotFound{kind: notFoundTemplate, template: template}
}

// NotFoundModule mounts the named module with the unmatched path in its
// params under "path".
func NotFoundModule(name string) NotFound {
	return NotFound{kind: notFoundModule, module: name}
}

// Config is the framework configuration. Every field has an explicit
// default, applied field-by-field by ProcessConfigDefaults; file and
// environment loading go through LoadConfigFile. Function-valued fields are
// programmatic only and excluded from serialization.
type Config struct {
	// MountSelector locates the mount container in the host document.
	// Ignored when a container is supplied directly via WithContainer.
	MountSelector string `yaml:"mount_selector" json:"mount_selector" toml:"mount_selector" env:"MOUNT_SELECTOR" default:"#app" desc:"Selector of the element the framework renders into"`

	// LoadingSelector optionally locates an element toggled visible
	// while a module load is in flight.
	LoadingSelector string `yaml:"loading_selector" json:"loading_selector" toml:"loading_selector" env:"LOADING_SELECTOR" desc:"Selector of the loading indicator element"`

	// Mode selects location synchronization: history, hash or hashbang.
	Mode Mode `yaml:"mode" json:"mode" toml:"mode" env:"MODE" default:"history" desc:"Router mode: history, hash or hashbang"`

	// BasePath is prepended to paths written in history mode and
	// stripped when reading the location.
	BasePath string `yaml:"base_path" json:"base_path" toml:"base_path" env:"BASE_PATH" desc:"Path prefix for history mode"`

	// ModuleBase is the directory lazy module manifests are resolved
	// from, by the convention <ModuleBase><name>.yaml.
	ModuleBase string `yaml:"module_base" json:"module_base" toml:"module_base" env:"MODULE_BASE" default:"modules/" desc:"Base path for lazily resolved module manifests"`

	// Lazy enables resolving unregistered modules through the configured
	// module source at load time.
	Lazy bool `yaml:"lazy" json:"lazy" toml:"lazy" env:"LAZY" default:"false" desc:"Resolve unknown modules through the module source"`

	// LogEvents mirrors every recorded event to the framework logger.
	LogEvents bool `yaml:"log_events" json:"log_events" toml:"log_events" env:"LOG_EVENTS" default:"false" desc:"Log every recorded event"`

	// LogLabel is the message used when mirroring events to the logger.
	LogLabel string `yaml:"log_label" json:"log_label" toml:"log_label" env:"LOG_LABEL" default:"mosaic event" desc:"Log message for mirrored events"`

	// BeforeEach and AfterEach are the global navigation guards, run
	// around every navigation's route-level guards.
	BeforeEach GuardFunc `yaml:"-" json:"-" toml:"-"`
	AfterEach  HookFunc  `yaml:"-" json:"-" toml:"-"`

	// NotFound handles navigations no route matches.
	NotFound NotFound `yaml:"-" json:"-" toml:"-"`
}

// Validate implements ConfigValidator.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeHistory, ModeHash, ModeHashbang:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRouterMode, c.Mode)
	}
}
