// Package navtest provides a deterministic harness for exercising the
// router without a browser: an in-memory history, a recording document
// surface, and a render recorder.
package navtest

import (
	"sync"

	"github.com/wayfind-dev/wayfind/pkg/browser"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// RecordingDocument is a browser.Document that tracks which elements
// exist and records every scroll request.
type RecordingDocument struct {
	mu       sync.Mutex
	elements map[string]bool
	scrolled []string
}

// NewRecordingDocument creates a document containing the given ids.
func NewRecordingDocument(ids ...string) *RecordingDocument {
	d := &RecordingDocument{elements: make(map[string]bool)}
	for _, id := range ids {
		d.elements[id] = true
	}
	return d
}

// AddElement makes an element id visible to HasElement.
func (d *RecordingDocument) AddElement(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[id] = true
}

// HasElement implements browser.Document.
func (d *RecordingDocument) HasElement(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[id]
}

// ScrollIntoView implements browser.Document.
func (d *RecordingDocument) ScrollIntoView(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrolled = append(d.scrolled, id)
}

// Scrolled returns the ids scrolled to, in order.
func (d *RecordingDocument) Scrolled() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.scrolled))
	copy(out, d.scrolled)
	return out
}

// Builder assembles a harness fluently.
//
// Example:
//
//	h := navtest.New(table).
//	    WithPath("/users/42#bio").
//	    WithElement("bio").
//	    Build()
//	defer h.Stop()
type Builder struct {
	table    router.Table
	path     string
	notFound router.View
	doc      *RecordingDocument
	mw       []router.Middleware
}

// New creates a builder for the given route table.
func New(table router.Table) *Builder {
	return &Builder{
		table: table,
		path:  "/",
		doc:   NewRecordingDocument(),
	}
}

// WithPath sets the initial location, which may carry a query string
// and fragment.
func (b *Builder) WithPath(url string) *Builder {
	b.path = url
	return b
}

// WithNotFound sets the fallback view.
func (b *Builder) WithNotFound(view router.View) *Builder {
	b.notFound = view
	return b
}

// WithElement adds element ids to the document surface.
func (b *Builder) WithElement(ids ...string) *Builder {
	for _, id := range ids {
		b.doc.AddElement(id)
	}
	return b
}

// WithMiddleware appends controller middleware.
func (b *Builder) WithMiddleware(mw ...router.Middleware) *Builder {
	b.mw = append(b.mw, mw...)
	return b
}

// Build assembles the harness and starts the controller.
func (b *Builder) Build() *Harness {
	h := &Harness{
		History:  browser.NewHistory(b.path),
		Document: b.doc,
	}

	opts := []router.ControllerOption{
		router.WithSource(h.History),
		router.WithDocument(b.doc),
	}
	if b.notFound != nil {
		opts = append(opts, router.WithNotFound(b.notFound))
	}
	if len(b.mw) > 0 {
		opts = append(opts, router.WithMiddleware(b.mw...))
	}

	h.Controller = router.NewController(b.table, opts...)
	h.cancelWatch = h.Controller.Watch(func(cur router.Current) {
		h.mu.Lock()
		h.renders = append(h.renders, cur)
		h.mu.Unlock()
	})
	h.Controller.Start()
	return h
}

// Harness bundles a started controller with its fake environment.
type Harness struct {
	History    *browser.History
	Document   *RecordingDocument
	Controller *router.Controller

	mu          sync.Mutex
	renders     []router.Current
	cancelWatch func()
}

// Navigate pushes a new location through the harness history.
func (h *Harness) Navigate(path string, opts ...router.NavigateOption) error {
	return h.Controller.Navigate(path, opts...)
}

// Renders returns every snapshot replacement seen so far.
func (h *Harness) Renders() []router.Current {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]router.Current, len(h.renders))
	copy(out, h.renders)
	return out
}

// RenderCount returns how many snapshot replacements happened.
func (h *Harness) RenderCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.renders)
}

// LastRender returns the most recent snapshot, if any.
func (h *Harness) LastRender() (router.Current, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.renders) == 0 {
		return router.Current{}, false
	}
	return h.renders[len(h.renders)-1], true
}

// Stop tears down the controller subscription and the recorder.
func (h *Harness) Stop() {
	h.Controller.Stop()
	if h.cancelWatch != nil {
		h.cancelWatch()
		h.cancelWatch = nil
	}
}
