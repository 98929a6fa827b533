package mosaic

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/GoCodeAlone/mosaic/dom"
	"github.com/GoCodeAlone/mosaic/history"
)

// Navigation BDD test context
type NavigationBDDTestContext struct {
	app     *App
	doc     *dom.MemoryDocument
	backend *history.Memory

	usersDestroyed bool
	lastError      error
}

func (ctx *NavigationBDDTestContext) resetContext() {
	ctx.app = nil
	ctx.doc = nil
	ctx.backend = nil
	ctx.usersDestroyed = false
	ctx.lastError = nil
}

func (ctx *NavigationBDDTestContext) iHaveAMosaicApplicationWithAUsersModuleConfigured() error {
	ctx.resetContext()

	ctx.doc = dom.NewMemoryDocument()
	ctx.doc.AddElement("#app")
	ctx.backend = history.NewMemory(history.Location{Path: "/"})

	app, err := New(nil,
		WithDocument(ctx.doc),
		WithHistory(ctx.backend),
	)
	if err != nil {
		return fmt.Errorf("failed to create app: %v", err)
	}
	ctx.app = app

	users := &ModuleDef{
		ModuleName: "users",
		RenderFunc: func(c context.Context, container dom.Container, params Params, mc *Context) error {
			container.SetHTML("<h1>User " + params["id"] + "</h1>")
			return nil
		},
		DestroyFunc: func(c context.Context) error {
			ctx.usersDestroyed = true
			return nil
		},
		RouteDecls: []RouteDecl{{Path: "/users/:id"}},
	}
	if err := ctx.app.RegisterModule(users); err != nil {
		return fmt.Errorf("failed to register users module: %v", err)
	}
	return nil
}

func (ctx *NavigationBDDTestContext) anOrdersModuleIsAlsoConfigured() error {
	orders := &ModuleDef{
		ModuleName: "orders",
		RenderFunc: func(c context.Context, container dom.Container, params Params, mc *Context) error {
			container.SetHTML("<h1>Orders</h1>")
			return nil
		},
		RouteDecls: []RouteDecl{{Path: "/orders"}},
	}
	if err := ctx.app.RegisterModule(orders); err != nil {
		return fmt.Errorf("failed to register orders module: %v", err)
	}
	return nil
}

func (ctx *NavigationBDDTestContext) aGlobalGuardThatRejects(path string) error {
	ctx.app.config.BeforeEach = func(c context.Context, to, from *ResolvedRoute) (bool, error) {
		return to == nil || to.Path != path, nil
	}
	return nil
}

func (ctx *NavigationBDDTestContext) iNavigateTo(path string) error {
	ctx.lastError = ctx.app.Navigate(context.Background(), path)
	if ctx.lastError != nil {
		return fmt.Errorf("navigation to %s failed: %v", path, ctx.lastError)
	}
	return nil
}

func (ctx *NavigationBDDTestContext) theContainerShouldShow(html string) error {
	got := ctx.doc.AddElement("#app").HTML()
	if got != html {
		return fmt.Errorf("expected container %q, got %q", html, got)
	}
	return nil
}

func (ctx *NavigationBDDTestContext) theContainerShouldShowTheNotFoundPanel() error {
	got := ctx.doc.AddElement("#app").HTML()
	if !strings.Contains(got, "mosaic-panel-notfound") {
		return fmt.Errorf("expected not found panel, got %q", got)
	}
	return nil
}

func (ctx *NavigationBDDTestContext) theCurrentRoutePathShouldBe(path string) error {
	current := ctx.app.CurrentRoute()
	got := ""
	if current != nil {
		got = current.Path
	}
	if got != path {
		return fmt.Errorf("expected current route %q, got %q", path, got)
	}
	return nil
}

// eventType expands the short names used in feature text into the
// reverse-domain event vocabulary.
func eventType(name string) string {
	if strings.HasPrefix(name, "com.mosaic.") {
		return name
	}
	return "com.mosaic." + name
}

func (ctx *NavigationBDDTestContext) anEventShouldHaveBeenRecorded(name string) error {
	want := eventType(name)
	for _, e := range ctx.app.History() {
		if e.Type() == want {
			return nil
		}
	}
	return fmt.Errorf("no %s event recorded", want)
}

func (ctx *NavigationBDDTestContext) noEventShouldHaveBeenRecorded(name string) error {
	want := eventType(name)
	for _, e := range ctx.app.History() {
		if e.Type() == want {
			return fmt.Errorf("unexpected %s event recorded", want)
		}
	}
	return nil
}

func (ctx *NavigationBDDTestContext) theUsersModuleShouldHaveBeenDestroyed() error {
	if !ctx.usersDestroyed {
		return fmt.Errorf("users module was not destroyed")
	}
	return nil
}

func (ctx *NavigationBDDTestContext) theHistoryDepthShouldBe(depth int) error {
	if got := ctx.backend.Depth(); got != depth {
		return fmt.Errorf("expected history depth %d, got %d", depth, got)
	}
	return nil
}

// InitializeNavigationScenario registers the navigation step definitions.
func InitializeNavigationScenario(ctx *godog.ScenarioContext) {
	testCtx := &NavigationBDDTestContext{}

	// Background steps
	ctx.Step(`^I have a mosaic application with a users module configured$`, testCtx.iHaveAMosaicApplicationWithAUsersModuleConfigured)
	ctx.Step(`^an orders module is also configured$`, testCtx.anOrdersModuleIsAlsoConfigured)
	ctx.Step(`^a global guard that rejects "([^"]*)"$`, testCtx.aGlobalGuardThatRejects)

	// Navigation steps
	ctx.Step(`^I navigate to "([^"]*)"$`, testCtx.iNavigateTo)
	ctx.Step(`^the container should show "([^"]*)"$`, testCtx.theContainerShouldShow)
	ctx.Step(`^the container should show the not found panel$`, testCtx.theContainerShouldShowTheNotFoundPanel)
	ctx.Step(`^the current route path should be "([^"]*)"$`, testCtx.theCurrentRoutePathShouldBe)

	// Event and lifecycle steps
	ctx.Step(`^a "([^"]*)" event should have been recorded$`, testCtx.anEventShouldHaveBeenRecorded)
	ctx.Step(`^no "([^"]*)" event should have been recorded$`, testCtx.noEventShouldHaveBeenRecorded)
	ctx.Step(`^the users module should have been destroyed$`, testCtx.theUsersModuleShouldHaveBeenDestroyed)
	ctx.Step(`^the history depth should be (\d+)$`, testCtx.theHistoryDepthShouldBe)
}

// TestNavigation runs the BDD tests for the navigation flow
func TestNavigation(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeNavigationScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/navigation.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
