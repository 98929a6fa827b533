package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/GoCodeAlone/mosaic"
)

// manifestIndexEntry is one row of the /manifests index.
type manifestIndexEntry struct {
	Name   string   `json:"name"`
	Routes []string `json:"routes"`
}

// NewServeCommand builds the serve command: a development host for a
// mosaic application's static assets and module manifests. Manifests are
// served with permissive CORS so a shell on another origin can resolve
// them lazily.
func NewServeCommand() *cobra.Command {
	var (
		addr      string
		staticDir string
		manifests string
	)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve static assets and module manifests for development",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			router := chi.NewRouter()
			router.Use(middleware.Logger)
			router.Use(middleware.Recoverer)
			router.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{http.MethodGet, http.MethodHead},
				MaxAge:         300,
			}))

			router.Get("/manifests", manifestIndexHandler(manifests))
			router.Get("/manifests/{name}", manifestHandler(manifests))
			router.Handle("/*", http.FileServer(http.Dir(staticDir)))

			server := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(),
				"serving %s (manifests from %s) on %s\n", staticDir, manifests, addr)
			return server.ListenAndServe()
		},
	}

	serve.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serve.Flags().StringVar(&staticDir, "dir", ".", "static asset directory")
	serve.Flags().StringVar(&manifests, "manifests", "modules", "module manifest directory")
	return serve
}

func manifestIndexHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := indexManifests(dir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func manifestHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		name = strings.TrimSuffix(name, ".yaml")
		if strings.ContainsAny(name, `/\.`) {
			http.Error(w, "invalid manifest name", http.StatusBadRequest)
			return
		}
		path := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		http.ServeFile(w, r, path)
	}
}

// indexManifests parses every manifest under dir into the index. Files
// that fail to parse are skipped; vet reports them.
func indexManifests(dir string) ([]manifestIndexEntry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}

	entries := make([]manifestIndexEntry, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		manifest, err := mosaic.ParseManifestNamed(data, name)
		if err != nil {
			continue
		}
		routes := make([]string, 0, len(manifest.Routes))
		for _, route := range manifest.Routes {
			routes = append(routes, route.Path)
		}
		entries = append(entries, manifestIndexEntry{Name: manifest.Name, Routes: routes})
	}
	return entries, nil
}
