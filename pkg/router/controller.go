package router

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wayfind-dev/wayfind/pkg/browser"
	"github.com/wayfind-dev/wayfind/pkg/location"
	"github.com/wayfind-dev/wayfind/pkg/state"
)

// Controller owns the current-route state. It subscribes to location
// changes, re-runs parsing and matching on each one, and replaces its
// snapshot only when the result actually differs, so identical
// notifications never cause a redundant re-render or scroll.
//
// The controller starts Unresolved; the first resolution (run on Start)
// moves it to Resolved and every later one replaces or discards a
// candidate snapshot. All resolution work runs synchronously inside the
// notification handler; ordering is whatever the source delivers.
type Controller struct {
	table    Table
	notFound View
	source   browser.Source
	doc      browser.Document
	log      *slog.Logger
	mw       []Middleware

	current *state.Value[Current]

	mu       sync.Mutex
	cancel   func()
	resolved bool

	// skipScroll suppresses the fragment scroll for the next
	// resolution; set by Navigate with WithoutScroll and consumed
	// exactly once.
	skipScroll bool

	// rewriting suppresses the nested notification fired by the
	// canonicalization Replace; the outer resolution keeps going with
	// the canonical path.
	rewriting bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSource injects the location source. Defaults to an in-memory
// history rooted at "/".
func WithSource(src browser.Source) ControllerOption {
	return func(c *Controller) { c.source = src }
}

// WithDocument injects the document surface used for fragment
// scrolling. Defaults to a document with no elements.
func WithDocument(doc browser.Document) ControllerOption {
	return func(c *Controller) { c.doc = doc }
}

// WithNotFound sets the fallback view rendered when no pattern matches.
func WithNotFound(view View) ControllerOption {
	return func(c *Controller) { c.notFound = view }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) ControllerOption {
	return func(c *Controller) { c.log = log }
}

// WithMiddleware appends middleware wrapped around every resolution.
func WithMiddleware(mw ...Middleware) ControllerOption {
	return func(c *Controller) { c.mw = append(c.mw, mw...) }
}

// NewController creates a controller for the given route table.
// The table is consumed read-only and must not change afterwards.
func NewController(table Table, opts ...ControllerOption) *Controller {
	c := &Controller{
		table:    table,
		notFound: defaultNotFound,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.source == nil {
		c.source = browser.NewHistory("/")
	}
	if c.doc == nil {
		c.doc = browser.NopDocument{}
	}
	if c.log == nil {
		c.log = slog.Default()
	}

	// Dedupe belongs to commit, which knows whether a first resolution
	// happened. The container itself must install every candidate it is
	// handed: the zero snapshot is identity-equal to an unmatched,
	// fragmentless candidate, so an equality gate here would swallow
	// the not-found fallback on mount.
	c.current = state.NewValue(Current{}).WithEquals(func(Current, Current) bool {
		return false
	})
	return c
}

// defaultNotFound is the fallback view when none is configured.
func defaultNotFound(Props) string {
	return "404 page not found"
}

// Start subscribes to the location source and runs the initial
// resolution. Starting an already started controller is a no-op, so
// repeated Start/Stop cycles hold at most one subscription.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	c.cancel = c.source.Subscribe(c.resolve)
	c.mu.Unlock()

	c.resolve()
}

// Stop cancels the location subscription. The last snapshot stays
// readable; Start may be called again later.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Current returns the latest snapshot. Before the first resolution it
// is the zero Current.
func (c *Controller) Current() Current {
	return c.current.Get()
}

// Resolved reports whether the controller has left the initial
// unresolved state.
func (c *Controller) Resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}

// Watch registers a render subscriber for snapshot replacements.
func (c *Controller) Watch(fn func(Current)) (cancel func()) {
	return c.current.Watch(fn)
}

// Render runs the current snapshot's view with its props.
func (c *Controller) Render() string {
	snap := c.current.Get()
	if snap.View == nil {
		return ""
	}
	return snap.View(snap.Props())
}

// Navigate updates the location through the controller's source.
// Resolution happens via the source's change notification.
func (c *Controller) Navigate(path string, opts ...NavigateOption) error {
	options := newNavigateOptions(opts...)

	if !options.Scroll {
		c.mu.Lock()
		c.skipScroll = true
		c.mu.Unlock()
	}

	if err := navigate(c.source, path, options); err != nil {
		c.mu.Lock()
		c.skipScroll = false
		c.mu.Unlock()
		return err
	}
	return nil
}

// resolve is the navigation-change handler: parse the latest location,
// rewrite it if canonicalization changed it, match, and commit or
// discard the candidate snapshot.
func (c *Controller) resolve() {
	if c.rewriting {
		return
	}

	raw := c.source.Location()
	loc := location.Parse(raw.Path, raw.Query, raw.Fragment)

	if loc.Canonicalized {
		c.rewriting = true
		c.source.Replace(browser.JoinURL(browser.Raw{
			Path:     loc.Path,
			Query:    raw.Query,
			Fragment: raw.Fragment,
		}))
		c.rewriting = false
	}

	c.mu.Lock()
	skipScroll := c.skipScroll
	c.skipScroll = false
	c.mu.Unlock()

	navCtx := &NavContext{
		Path:     loc.Path,
		Fragment: loc.Fragment,
		stdCtx:   context.Background(),
	}

	err := ComposeMiddleware(navCtx, c.mw, func() error {
		c.commit(navCtx, loc, skipScroll)
		return nil
	})
	if err != nil {
		c.log.Error("navigation middleware failed",
			"path", loc.Path, "error", err)
	}
}

// commit builds the candidate snapshot and replaces the state when the
// route identity or fragment changed.
func (c *Controller) commit(navCtx *NavContext, loc location.Location, skipScroll bool) {
	var candidate Current

	result, ok := Match(loc.Path, c.table)
	navCtx.Route = result.Pattern
	navCtx.Matched = ok

	if ok {
		candidate = Current{
			Route:    result.Pattern,
			View:     result.View,
			Params:   result.Params,
			Query:    loc.Query,
			Fragment: loc.Fragment,
			Matched:  true,
		}
	} else {
		// No declared pattern matches: fall back without inventing a
		// matched route. The fallback view receives no inputs.
		candidate = Current{
			View:     c.notFound,
			Params:   map[string]string{},
			Query:    location.Values{},
			Fragment: loc.Fragment,
		}
		c.log.Debug("no route matched", "path", loc.Path)
	}

	c.mu.Lock()
	resolved := c.resolved
	c.resolved = true
	c.mu.Unlock()

	if resolved && sameIdentity(c.current.Get(), candidate) {
		c.log.Debug("navigation suppressed",
			"path", loc.Path, "route", candidate.Route)
		return
	}

	navCtx.Replaced = c.current.Replace(candidate)

	// The scroll effect runs only after render watchers saw the new
	// snapshot; a missing target is silently ignored.
	c.scrollToFragment(navCtx, candidate.Fragment, skipScroll)
}

// scrollToFragment scrolls the fragment's element into view if the
// rendered output contains one, recording the attempt and its outcome
// on the navigation context.
func (c *Controller) scrollToFragment(navCtx *NavContext, fragment string, skip bool) {
	if fragment == "" || skip {
		return
	}
	navCtx.ScrollAttempted = true
	if !c.doc.HasElement(fragment) {
		return
	}
	navCtx.ScrollFound = true
	c.doc.ScrollIntoView(fragment)
}

// sameIdentity reports whether two snapshots resolve to the same route
// identity and fragment. Candidates that compare equal are discarded to
// avoid redundant re-renders and scroll effects.
func sameIdentity(a, b Current) bool {
	return a.Route == b.Route && a.Matched == b.Matched && a.Fragment == b.Fragment
}
