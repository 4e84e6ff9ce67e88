// Package browser abstracts the pieces of the host environment the
// router touches: the location/history resource and the document
// surface used for fragment scrolling.
//
// The browser location is a single process-wide mutable resource. By
// modeling it as an injected Source the controller depends on an
// interface instead of ambient global state, and tests run against the
// in-memory History implementation.
package browser

import "strings"

// Raw is an unparsed browser location, split into the three components
// the location parser consumes.
type Raw struct {
	// Path is the raw path portion, e.g. "/users/42/".
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Fragment is the raw hash including the leading "#", or "".
	Fragment string
}

// Source is the router's view of the browser location.
//
// Only the navigation emitter mutates the location via Push, with one
// exception: the controller issues a Replace when it canonicalizes a
// path so the address bar reflects the canonical form without a new
// history entry. Everything else treats the source as read-only.
type Source interface {
	// Location returns the current raw location.
	Location() Raw

	// Push records a new history entry for url and notifies subscribers.
	Push(url string)

	// Replace rewrites the current history entry in place and notifies
	// subscribers.
	Replace(url string)

	// Subscribe registers fn to run after every location change.
	// The returned cancel function removes the subscription.
	Subscribe(fn func()) (cancel func())
}

// Document is the rendered-output surface used for fragment scrolling.
type Document interface {
	// HasElement reports whether an element with the id exists.
	HasElement(id string) bool

	// ScrollIntoView scrolls the element with the id into view.
	ScrollIntoView(id string)
}

// NopDocument is a Document with no elements. Scrolling is a no-op.
type NopDocument struct{}

func (NopDocument) HasElement(string) bool { return false }
func (NopDocument) ScrollIntoView(string) {}

// SplitURL breaks a url-ish string ("/a/b?x=1#frag") into a Raw.
// The fragment keeps its "#" so Raw round-trips through JoinURL.
func SplitURL(url string) Raw {
	rest, fragment, hasFrag := strings.Cut(url, "#")
	path, query, _ := strings.Cut(rest, "?")
	if hasFrag {
		fragment = "#" + fragment
	}
	return Raw{Path: path, Query: query, Fragment: fragment}
}

// JoinURL reassembles a Raw into a single url string.
func JoinURL(raw Raw) string {
	url := raw.Path
	if raw.Query != "" {
		url += "?" + raw.Query
	}
	return url + raw.Fragment
}
