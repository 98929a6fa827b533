package mosaic

import (
	"errors"
)

// Framework errors
var (
	// Configuration errors
	ErrContainerNotFound    = errors.New("mount container not found")
	ErrContainerDetached    = errors.New("mount container detached from document")
	ErrNoDocument           = errors.New("no document capability configured")
	ErrLoggerNotSet         = errors.New("logger is not set")
	ErrInvalidRouterMode    = errors.New("invalid router mode")
	ErrConfigNil            = errors.New("config is nil")
	ErrConfigNotPointer     = errors.New("config must be a pointer to a struct")
	ErrUnsupportedConfig    = errors.New("unsupported config file format")
	ErrDefaultValueParse    = errors.New("failed to parse default value")
	ErrUnsupportedFieldKind = errors.New("unsupported field kind for default value")

	// Module registry errors
	ErrModuleNil            = errors.New("module is nil")
	ErrModuleNameRequired   = errors.New("module name is required")
	ErrModuleRenderRequired = errors.New("module must provide a render capability")
	ErrModuleNotFound       = errors.New("module not found")
	ErrNoModuleSource       = errors.New("no module source configured")

	// Router errors
	ErrRouteHandlerRequired = errors.New("route requires a handler or a module")
	ErrRoutePathRequired    = errors.New("route path is required")
	ErrNotStarted           = errors.New("framework not started")

	// Manifest errors
	ErrManifestNameRequired = errors.New("manifest must declare a module name")
	ErrManifestNoRender     = errors.New("manifest must declare a render template or routes")
	ErrManifestRouteInvalid = errors.New("manifest route must name a template or a handler module")
)
