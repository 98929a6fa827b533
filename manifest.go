package mosaic

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/GoCodeAlone/mosaic/dom"
)

// Manifest is a declarative YAML module definition, the data-only
// counterpart of a ModuleDef. Manifests are how lazily resolved modules are
// shipped: a file <ModuleBase><name>.yaml describing the module's render
// template and its routes.
//
//	name: greeter
//	render: "<h1>Hello {{name}}</h1>"
//	routes:
//	  - path: /greet/:name
//	  - path: /farewell/:name
//	    template: "<p>Bye {{name}}</p>"
type Manifest struct {
	// Name is the module name; for file-resolved manifests it must match
	// the file's base name.
	Name string `yaml:"name" json:"name"`

	// Render is the template for the module's own render, substituted
	// with the resolved params and the execution context.
	Render string `yaml:"render" json:"render"`

	// Routes are auto-registered when the module is.
	Routes []ManifestRoute `yaml:"routes" json:"routes"`
}

// ManifestRoute declares one route of a manifest module. With neither
// Template nor Module set, the route renders the manifest's own template.
type ManifestRoute struct {
	Path     string `yaml:"path" json:"path"`
	Template string `yaml:"template" json:"template"`
	Module   string `yaml:"module" json:"module"`
	Exact    bool   `yaml:"exact" json:"exact"`
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseManifestNamed decodes a manifest that may omit its name, inheriting
// the given one. An explicitly mismatching name is an error. This is the
// entry point for file-resolved manifests, where the file's base name is
// authoritative.
func ParseManifestNamed(data []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Name == "" {
		m.Name = name
	}
	if m.Name != name {
		return nil, fmt.Errorf("%w: manifest declares %q, resolved as %q",
			ErrManifestNameRequired, m.Name, name)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest invariants: a name, something to render, and
// per-route resolvability.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrManifestNameRequired
	}
	if m.Render == "" && len(m.Routes) == 0 {
		return fmt.Errorf("%w: %s", ErrManifestNoRender, m.Name)
	}
	for _, route := range m.Routes {
		if route.Path == "" {
			return fmt.Errorf("%w: %s", ErrRoutePathRequired, m.Name)
		}
		if route.Template == "" && route.Module == "" && m.Render == "" {
			return fmt.Errorf("%w: %s %s", ErrManifestRouteInvalid, m.Name, route.Path)
		}
	}
	return nil
}

// Module materializes the manifest as a registerable module.
func (m *Manifest) Module() Module {
	def := &ModuleDef{
		ModuleName: m.Name,
		RenderFunc: func(ctx context.Context, container dom.Container, params Params, mc *Context) error {
			container.SetHTML(substituteTemplate(m.Render, params, mc))
			return nil
		},
	}
	for _, route := range m.Routes {
		decl := RouteDecl{Path: route.Path, Template: route.Template}
		if route.Module != "" || route.Exact {
			decl = RouteDecl{Path: route.Path, Options: &RouteOptions{
				Module:  route.Module,
				Exact:   route.Exact,
				Handler: templateOrNone(route.Template),
			}}
		}
		def.RouteDecls = append(def.RouteDecls, decl)
	}
	return def
}

func templateOrNone(template string) Handler {
	if template == "" {
		return Handler{}
	}
	return TemplateHandler(template)
}
