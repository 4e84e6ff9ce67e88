// Package router matches browser locations against a declarative route
// table and keeps the rendered view in sync with the location.
//
// The router provides:
//   - Ordered first-match-wins pattern matching (":name" dynamic
//     segments, trailing "/*" catch-all)
//   - Parameter extraction with optional typed binding
//   - A controller that owns the current-route snapshot, deduplicates
//     identical resolutions, and performs fragment scrolling
//   - A navigation trigger that updates the location without a reload
//
// # Patterns
//
// Patterns are declared in order; the first one that structurally
// matches wins, with no specificity scoring:
//
//	"/"            root only
//	"/users/:id"   dynamic segment, captured under "id"
//	"/docs/*"      "/docs" and everything below it
//	"/about"       exact match ("/about/" is equivalent)
//
// # Usage
//
//	table := router.Table{
//	    {Pattern: "/", View: home},
//	    {Pattern: "/users/:id", View: userShow},
//	    {Pattern: "/docs/*", View: docs},
//	}
//
//	src := browser.NewHistory("/")
//	ctrl := router.NewController(table,
//	    router.WithSource(src),
//	    router.WithNotFound(notFound),
//	)
//	ctrl.Watch(func(cur router.Current) {
//	    render(cur.View(cur.Props()))
//	})
//	ctrl.Start()
//
//	ctrl.Navigate("/users/42")
package router
