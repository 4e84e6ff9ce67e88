package wayfind_test

import (
	"testing"

	"github.com/wayfind-dev/wayfind"
)

func TestFacadeEndToEnd(t *testing.T) {
	src := wayfind.NewHistory("/")

	table := wayfind.Table{
		{Pattern: "/", View: func(wayfind.Props) string { return "home" }},
		{Pattern: "/users/:id", View: func(p wayfind.Props) string { return "user " + p.Params["id"] }},
	}

	ctrl := wayfind.New(table, wayfind.WithSource(src))
	ctrl.Start()
	defer ctrl.Stop()

	if got := ctrl.Render(); got != "home" {
		t.Fatalf("Render() = %q, want home", got)
	}

	if err := ctrl.Navigate("/users/42"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := ctrl.Render(); got != "user 42" {
		t.Errorf("Render() = %q, want %q", got, "user 42")
	}

	cur := ctrl.Current()
	if cur.Route != "/users/:id" || !cur.Matched {
		t.Errorf("Current() = %+v, want matched /users/:id", cur)
	}
}

func TestFacadeNotFound(t *testing.T) {
	ctrl := wayfind.New(wayfind.Table{
		{Pattern: "/", View: func(wayfind.Props) string { return "home" }},
	},
		wayfind.WithNotFound(func(wayfind.Props) string { return "lost" }),
	)
	ctrl.Start()
	defer ctrl.Stop()

	if err := ctrl.Navigate("/missing"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := ctrl.Render(); got != "lost" {
		t.Errorf("Render() = %q, want lost", got)
	}
}

func TestFacadeConfig(t *testing.T) {
	src := wayfind.NewHistory("/missing")

	ctrl := wayfind.NewFromConfig(wayfind.Table{
		{Pattern: "/", View: func(wayfind.Props) string { return "home" }},
	}, wayfind.Config{
		Source:   src,
		NotFound: func(wayfind.Props) string { return "lost" },
	})
	ctrl.Start()
	defer ctrl.Stop()

	// Mounting on an unmatched path renders the configured fallback.
	if got := ctrl.Render(); got != "lost" {
		t.Fatalf("Render() = %q, want lost", got)
	}

	if err := ctrl.Navigate("/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := ctrl.Render(); got != "home" {
		t.Errorf("Render() = %q, want home", got)
	}
}

func TestFacadeNavigateStandalone(t *testing.T) {
	src := wayfind.NewHistory("/")

	if err := wayfind.Navigate(src, "/a", wayfind.WithFragment("x")); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	loc := src.Location()
	if loc.Path != "/a" || loc.Fragment != "#x" {
		t.Errorf("location = %+v, want /a#x", loc)
	}
}
