package router_test

import (
	"errors"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/browser"
	"github.com/wayfind-dev/wayfind/pkg/navtest"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func view(name string) router.View {
	return func(router.Props) string { return name }
}

func demoTable() router.Table {
	return router.Table{
		{Pattern: "/", View: view("home")},
		{Pattern: "/users/:id", View: view("user")},
		{Pattern: "/docs/*", View: view("docs")},
		{Pattern: "/about", View: view("about")},
	}
}

func TestControllerInitialResolution(t *testing.T) {
	h := navtest.New(demoTable()).Build()
	defer h.Stop()

	if !h.Controller.Resolved() {
		t.Fatal("controller not resolved after Start")
	}

	cur, ok := h.LastRender()
	if !ok {
		t.Fatal("no render recorded on mount")
	}
	if cur.Route != "/" || !cur.Matched {
		t.Errorf("initial snapshot = %+v, want route /", cur)
	}
}

func TestControllerNavigateExtractsParams(t *testing.T) {
	h := navtest.New(demoTable()).Build()
	defer h.Stop()

	if err := h.Navigate("/users/42", router.WithQuery(map[string]string{"tab": "posts"})); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	cur, _ := h.LastRender()
	if cur.Route != "/users/:id" {
		t.Fatalf("route = %q, want /users/:id", cur.Route)
	}
	if got := cur.Params["id"]; got != "42" {
		t.Errorf("params[id] = %q, want %q", got, "42")
	}
	if got := cur.Query.Get("tab"); got != "posts" {
		t.Errorf("query tab = %q, want %q", got, "posts")
	}
}

func TestControllerIdempotentNotification(t *testing.T) {
	h := navtest.New(demoTable()).Build()
	defer h.Stop()

	if err := h.Navigate("/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	before := h.RenderCount()

	// Same resulting location again: the candidate snapshot is equal
	// and must be discarded.
	if err := h.Navigate("/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if got := h.RenderCount(); got != before {
		t.Errorf("render count = %d after duplicate navigation, want %d", got, before)
	}
}

func TestControllerNotFoundFallback(t *testing.T) {
	h := navtest.New(demoTable()).
		WithNotFound(view("missing")).
		Build()
	defer h.Stop()

	if err := h.Navigate("/nope"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	cur, _ := h.LastRender()
	if cur.Matched {
		t.Fatal("unmatched navigation produced a matched snapshot")
	}
	if cur.Route != "" {
		t.Errorf("route = %q, want empty", cur.Route)
	}
	if got := cur.View(cur.Props()); got != "missing" {
		t.Errorf("rendered %q, want fallback view", got)
	}

	props := cur.Props()
	if len(props.Params) != 0 || len(props.Query) != 0 {
		t.Errorf("fallback props = %+v, want empty params and query", props)
	}
}

func TestControllerMountAtUnmatchedPath(t *testing.T) {
	// Starting on a path no pattern matches must still install the
	// not-found snapshot; the zero snapshot may not survive the first
	// resolution.
	h := navtest.New(demoTable()).
		WithPath("/missing").
		WithNotFound(view("missing")).
		Build()
	defer h.Stop()

	cur := h.Controller.Current()
	if cur.Matched {
		t.Fatal("unmatched mount produced a matched snapshot")
	}
	if cur.View == nil {
		t.Fatal("not-found view never installed on mount")
	}
	if got := h.Controller.Render(); got != "missing" {
		t.Errorf("Render() = %q, want fallback %q", got, "missing")
	}
	if h.RenderCount() != 1 {
		t.Errorf("RenderCount() = %d after mount, want 1", h.RenderCount())
	}
}

func TestControllerNavigateWithoutScroll(t *testing.T) {
	h := navtest.New(demoTable()).
		WithElement("team").
		Build()
	defer h.Stop()

	if err := h.Navigate("/about", router.WithFragment("team"), router.WithoutScroll()); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if scrolled := h.Document.Scrolled(); len(scrolled) != 0 {
		t.Errorf("scrolled = %v, want none with WithoutScroll", scrolled)
	}

	cur, _ := h.LastRender()
	if cur.Fragment != "team" {
		t.Errorf("fragment = %q, want team (suppression is scroll-only)", cur.Fragment)
	}

	// The suppression covers one navigation, not the controller.
	if err := h.Navigate("/users/1", router.WithFragment("team")); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if scrolled := h.Document.Scrolled(); len(scrolled) != 1 || scrolled[0] != "team" {
		t.Errorf("scrolled = %v, want [team] after plain navigation", scrolled)
	}
}

func TestControllerFragmentScroll(t *testing.T) {
	h := navtest.New(demoTable()).
		WithElement("team").
		Build()
	defer h.Stop()

	if err := h.Navigate("/about", router.WithFragment("team")); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	scrolled := h.Document.Scrolled()
	if len(scrolled) != 1 || scrolled[0] != "team" {
		t.Errorf("scrolled = %v, want [team]", scrolled)
	}
}

func TestControllerMissingScrollTargetIgnored(t *testing.T) {
	h := navtest.New(demoTable()).Build()
	defer h.Stop()

	if err := h.Navigate("/about", router.WithFragment("ghost")); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if scrolled := h.Document.Scrolled(); len(scrolled) != 0 {
		t.Errorf("scrolled = %v, want none", scrolled)
	}
}

func TestControllerFragmentOnlyNavigation(t *testing.T) {
	h := navtest.New(demoTable()).
		WithElement("team", "history").
		Build()
	defer h.Stop()

	if err := h.Navigate("/about", router.WithFragment("team")); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	before := h.RenderCount()

	// Same route, different fragment: re-render with the updated
	// fragment and a fresh scroll attempt.
	if err := h.Navigate("/about", router.WithFragment("history")); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if got := h.RenderCount(); got != before+1 {
		t.Fatalf("render count = %d, want %d", got, before+1)
	}
	cur, _ := h.LastRender()
	if cur.Route != "/about" || cur.Fragment != "history" {
		t.Errorf("snapshot = %+v, want /about with fragment history", cur)
	}
	scrolled := h.Document.Scrolled()
	if len(scrolled) != 2 || scrolled[1] != "history" {
		t.Errorf("scrolled = %v, want [team history]", scrolled)
	}
}

func TestControllerCanonicalizationRewrite(t *testing.T) {
	h := navtest.New(demoTable()).Build()
	defer h.Stop()

	lenBefore := h.History.Len()

	// Push a non-canonical URL directly, as a browser would on a
	// hand-typed address.
	h.History.Push("/users/42/")

	// The rewrite replaces in place: one new entry from the push,
	// nothing extra from the canonicalization.
	if got := h.History.Len(); got != lenBefore+1 {
		t.Errorf("history length = %d, want %d", got, lenBefore+1)
	}
	if got := h.History.Location().Path; got != "/users/42" {
		t.Errorf("visible path = %q, want canonical %q", got, "/users/42")
	}

	cur, _ := h.LastRender()
	if cur.Route != "/users/:id" || cur.Params["id"] != "42" {
		t.Errorf("snapshot = %+v, want matched /users/:id", cur)
	}
}

func TestControllerStartStopNoLeak(t *testing.T) {
	h := navtest.New(demoTable()).Build()

	h.Controller.Stop()
	renders := h.RenderCount()

	// Location changes while stopped are ignored.
	h.History.Push("/about")
	if got := h.RenderCount(); got != renders {
		t.Fatalf("render count = %d after change while stopped, want %d", got, renders)
	}

	// Restarting picks the location back up exactly once.
	h.Controller.Start()
	cur, _ := h.LastRender()
	if cur.Route != "/about" {
		t.Errorf("route after restart = %q, want /about", cur.Route)
	}

	// Repeated cycles must not stack subscriptions.
	h.Controller.Stop()
	h.Controller.Start()
	h.Controller.Start() // second Start is a no-op
	before := h.RenderCount()
	h.History.Push("/users/7")
	if got := h.RenderCount(); got != before+1 {
		t.Errorf("one navigation caused %d renders, want 1", got-before)
	}
	h.Stop()
}

func TestControllerBackForward(t *testing.T) {
	h := navtest.New(demoTable()).Build()
	defer h.Stop()

	if err := h.Navigate("/users/1"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := h.Navigate("/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	h.History.Back()
	cur, _ := h.LastRender()
	if cur.Route != "/users/:id" || cur.Params["id"] != "1" {
		t.Errorf("after Back, snapshot = %+v, want /users/1", cur)
	}

	h.History.Forward()
	cur, _ = h.LastRender()
	if cur.Route != "/about" {
		t.Errorf("after Forward, route = %q, want /about", cur.Route)
	}
}

func TestControllerNavigateRejectsAbsoluteURL(t *testing.T) {
	h := navtest.New(demoTable()).Build()
	defer h.Stop()

	before := h.RenderCount()
	err := h.Navigate("https://evil.example/phish")
	if err == nil {
		t.Fatal("expected error for absolute URL")
	}
	if got := h.RenderCount(); got != before {
		t.Errorf("rejected navigation caused %d renders", got-before)
	}
}

func TestControllerMiddlewareOrderAndOutcome(t *testing.T) {
	var order []string
	var sawRoute string
	var sawMatched bool

	mw := router.MiddlewareFunc(func(ctx *router.NavContext, next func() error) error {
		order = append(order, "before")
		err := next()
		order = append(order, "after")
		sawRoute = ctx.Route
		sawMatched = ctx.Matched
		return err
	})

	h := navtest.New(demoTable()).WithMiddleware(mw).Build()
	defer h.Stop()

	order = nil
	if err := h.Navigate("/users/9"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if len(order) != 2 || order[0] != "before" || order[1] != "after" {
		t.Errorf("middleware order = %v", order)
	}
	if sawRoute != "/users/:id" || !sawMatched {
		t.Errorf("middleware saw route %q matched=%v, want /users/:id true", sawRoute, sawMatched)
	}
}

func TestControllerMiddlewareErrorKeepsSnapshot(t *testing.T) {
	boom := errors.New("boom")
	fail := false
	mw := router.MiddlewareFunc(func(ctx *router.NavContext, next func() error) error {
		if fail {
			return boom
		}
		return next()
	})

	h := navtest.New(demoTable()).WithMiddleware(mw).Build()
	defer h.Stop()

	fail = true
	if err := h.Navigate("/about"); err != nil {
		t.Fatalf("Navigate returned %v; middleware errors are contained", err)
	}

	cur, _ := h.LastRender()
	if cur.Route != "/" {
		t.Errorf("route = %q after failed resolution, want previous /", cur.Route)
	}
}

func TestControllerRender(t *testing.T) {
	ctrl := router.NewController(demoTable(), router.WithSource(browser.NewHistory("/users/3")))
	ctrl.Start()
	defer ctrl.Stop()

	if got := ctrl.Render(); got != "user" {
		t.Errorf("Render() = %q, want %q", got, "user")
	}
}
