package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
)

var moduleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// NewNewCommand builds the new command group.
func NewNewCommand() *cobra.Command {
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold mosaic components",
	}
	newCmd.AddCommand(newModuleCommand())
	newCmd.AddCommand(newManifestCommand())
	return newCmd
}

func newModuleCommand() *cobra.Command {
	var outDir string

	moduleCmd := &cobra.Command{
		Use:   "module <name>",
		Short: "Scaffold a Go module implementation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			name := args[0]
			if !moduleNamePattern.MatchString(name) {
				return fmt.Errorf("invalid module name %q: want lowercase letters, digits and dashes", name)
			}
			path := filepath.Join(outDir, name+".go")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			file, err := os.Create(path)
			if err != nil {
				return err
			}
			defer file.Close()

			data := moduleTemplateData{
				Name:    name,
				Ident:   goIdent(name),
				Package: filepath.Base(absOrSelf(outDir)),
			}
			if err := moduleTemplate.Execute(file, data); err != nil {
				return err
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}

	moduleCmd.Flags().StringVar(&outDir, "dir", ".", "output directory")
	return moduleCmd
}

func newManifestCommand() *cobra.Command {
	var outDir string

	manifestCmd := &cobra.Command{
		Use:   "manifest <name>",
		Short: "Scaffold a declarative module manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			name := args[0]
			if !moduleNamePattern.MatchString(name) {
				return fmt.Errorf("invalid module name %q: want lowercase letters, digits and dashes", name)
			}
			path := filepath.Join(outDir, name+".yaml")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			content := fmt.Sprintf("name: %s\nrender: \"<h1>%s</h1>\"\nroutes:\n  - path: /%s\n", name, name, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}

	manifestCmd.Flags().StringVar(&outDir, "dir", "modules", "output directory")
	return manifestCmd
}

type moduleTemplateData struct {
	Name    string
	Ident   string
	Package string
}

// goIdent converts a dashed module name into an exported Go identifier.
func goIdent(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

var moduleTemplate = template.Must(template.New("module").Parse(`package {{.Package}}

import (
	"context"

	"github.com/GoCodeAlone/mosaic"
	"github.com/GoCodeAlone/mosaic/dom"
)

// {{.Ident}}Module renders the {{.Name}} view.
type {{.Ident}}Module struct{}

// Name implements mosaic.Module.
func (m *{{.Ident}}Module) Name() string { return "{{.Name}}" }

// Render implements mosaic.Module.
func (m *{{.Ident}}Module) Render(ctx context.Context, container dom.Container, params mosaic.Params, mc *mosaic.Context) error {
	container.SetHTML("<h1>{{.Name}}</h1>")
	return nil
}

// Routes implements mosaic.RouteProvider.
func (m *{{.Ident}}Module) Routes() []mosaic.RouteDecl {
	return []mosaic.RouteDecl{
		{Path: "/{{.Name}}"},
	}
}
`))
