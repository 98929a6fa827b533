package mosaic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		want    Params
		ok      bool
	}{
		{"literal match", "/users", "/users", Params{}, true},
		{"literal mismatch", "/users", "/orders", nil, false},
		{"single param", "/users/:id", "/users/42", Params{"id": "42"}, true},
		{"two params", "/users/:id/posts/:post", "/users/7/posts/9", Params{"id": "7", "post": "9"}, true},
		{"segment count short", "/users/:id", "/users", nil, false},
		{"segment count long", "/users/:id", "/users/42/extra", nil, false},
		{"literal segment mismatch", "/users/:id/posts", "/users/42/orders", nil, false},
		{"root", "/", "/", Params{}, true},
		{"trailing slash equivalence", "/users/", "/users", Params{}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params, ok := matchPattern(tt.pattern, tt.path)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, params)
			}
		})
	}
}

func TestRouteDeclNormalize(t *testing.T) {
	t.Parallel()

	t.Run("empty declaration routes to the module itself", func(t *testing.T) {
		t.Parallel()
		opts := RouteDecl{Path: "/p"}.normalize("home")
		assert.Equal(t, "home", opts.Module)
		assert.True(t, opts.Handler.IsZero())
	})

	t.Run("template declaration", func(t *testing.T) {
		t.Parallel()
		opts := RouteDecl{Path: "/p", Template: "<p>{{x}}</p>"}.normalize("home")
		assert.Empty(t, opts.Module)
		assert.Equal(t, handlerTemplate, opts.Handler.kind)
	})

	t.Run("callback declaration", func(t *testing.T) {
		t.Parallel()
		fn := func(ctx context.Context, params Params, mc *Context, route *Route) error { return nil }
		opts := RouteDecl{Path: "/p", Handler: fn}.normalize("home")
		assert.Empty(t, opts.Module)
		assert.Equal(t, handlerCallback, opts.Handler.kind)
	})

	t.Run("options without handler fall back to the module", func(t *testing.T) {
		t.Parallel()
		opts := RouteDecl{Path: "/p", Options: &RouteOptions{Exact: true}}.normalize("home")
		assert.Equal(t, "home", opts.Module)
		assert.True(t, opts.Exact)
	})

	t.Run("options with handler are kept as declared", func(t *testing.T) {
		t.Parallel()
		opts := RouteDecl{Path: "/p", Options: &RouteOptions{
			Handler: TemplateHandler("<p>hi</p>"),
		}}.normalize("home")
		assert.Empty(t, opts.Module)
		assert.Equal(t, handlerTemplate, opts.Handler.kind)
	})

	t.Run("options naming another module are kept", func(t *testing.T) {
		t.Parallel()
		opts := RouteDecl{Path: "/p", Options: &RouteOptions{Module: "other"}}.normalize("home")
		assert.Equal(t, "other", opts.Module)
	})
}
