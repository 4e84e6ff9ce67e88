// Package wayfind provides the public API for the wayfind router.
//
// This is the recommended import for most applications:
//
//	import "github.com/wayfind-dev/wayfind"
//
// Usage:
//
//	ctrl := wayfind.New(wayfind.Table{
//	    {Pattern: "/", View: home},
//	    {Pattern: "/users/:id", View: userShow},
//	    {Pattern: "/docs/*", View: docs},
//	})
//	ctrl.Start()
//	defer ctrl.Stop()
//
//	ctrl.Navigate("/users/42", wayfind.WithFragment("bio"))
package wayfind

import (
	"log/slog"

	"github.com/wayfind-dev/wayfind/pkg/browser"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Core routing types re-exported for the common single-import case.
type (
	// Table is the ordered route declaration list.
	Table = router.Table

	// Route pairs a pattern with its view.
	Route = router.Route

	// View renders a matched route.
	View = router.View

	// Props are the inputs injected into a view.
	Props = router.Props

	// Current is the resolved-location snapshot.
	Current = router.Current

	// Controller owns the current-route state.
	Controller = router.Controller

	// Option configures the controller.
	Option = router.ControllerOption

	// NavigateOption configures a navigation.
	NavigateOption = router.NavigateOption

	// Middleware wraps a navigation resolution.
	Middleware = router.Middleware
)

// Controller options.
var (
	// WithSource injects the location source.
	WithSource = router.WithSource

	// WithDocument injects the document surface for fragment scrolling.
	WithDocument = router.WithDocument

	// WithNotFound sets the fallback view.
	WithNotFound = router.WithNotFound

	// WithLogger sets the structured logger.
	WithLogger = router.WithLogger

	// WithMiddleware wraps every resolution with middleware.
	WithMiddleware = router.WithMiddleware
)

// Navigation options.
var (
	// WithReplace replaces the current history entry instead of pushing.
	WithReplace = router.WithReplace

	// WithQuery adds query parameters to the navigation URL.
	WithQuery = router.WithQuery

	// WithFragment adds a hash fragment to the navigation URL.
	WithFragment = router.WithFragment

	// WithoutScroll disables the fragment scroll after navigation.
	WithoutScroll = router.WithoutScroll
)

// Config collects controller settings for hosts that prefer one struct
// over a list of functional options. Zero fields keep their defaults.
type Config struct {
	// Source is the location source. Nil means an in-memory history
	// rooted at "/".
	Source browser.Source

	// Document is the surface used for fragment scrolling.
	Document browser.Document

	// NotFound is the fallback view rendered when no pattern matches.
	NotFound View

	// Logger is the structured logger. Nil means slog.Default().
	Logger *slog.Logger

	// Middleware wraps every navigation resolution, in order.
	Middleware []Middleware
}

// Options converts the config into the equivalent controller options.
func (c Config) Options() []Option {
	var opts []Option
	if c.Source != nil {
		opts = append(opts, WithSource(c.Source))
	}
	if c.Document != nil {
		opts = append(opts, WithDocument(c.Document))
	}
	if c.NotFound != nil {
		opts = append(opts, WithNotFound(c.NotFound))
	}
	if c.Logger != nil {
		opts = append(opts, WithLogger(c.Logger))
	}
	if len(c.Middleware) > 0 {
		opts = append(opts, WithMiddleware(c.Middleware...))
	}
	return opts
}

// NewFromConfig creates a router controller from a Config.
func NewFromConfig(table Table, cfg Config) *Controller {
	return router.NewController(table, cfg.Options()...)
}

// New creates a router controller for the given route table.
// Call Start to subscribe to location changes and run the initial
// resolution.
func New(table Table, opts ...Option) *Controller {
	return router.NewController(table, opts...)
}

// NewHistory creates an in-memory location source rooted at url.
// Hosts embedding wayfind in a real browser environment supply their
// own browser.Source instead.
func NewHistory(url string) *browser.History {
	return browser.NewHistory(url)
}

// Navigate updates a location source directly, outside any controller.
func Navigate(src browser.Source, path string, opts ...NavigateOption) error {
	return router.Navigate(src, path, opts...)
}
