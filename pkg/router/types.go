package router

import "github.com/wayfind-dev/wayfind/pkg/location"

// View renders a matched route. It receives the extracted path
// parameters, the decoded query values, and the fragment, and returns
// the rendered output.
type View func(Props) string

// Props are the inputs injected into a View.
type Props struct {
	// Params holds the values captured by dynamic pattern segments.
	Params map[string]string

	// Query holds the decoded query parameters.
	Query location.Values

	// Fragment is the decoded hash fragment, or "".
	Fragment string
}

// Route pairs a pattern with the view it renders.
type Route struct {
	// Pattern is the path template, e.g. "/", "/users/:id", "/docs/*".
	Pattern string

	// View renders the route when the pattern matches.
	View View
}

// Table is the ordered route declaration list. It is supplied once at
// construction and read-only to the router; first structural match
// wins, declaration order only.
type Table []Route

// MatchResult is the outcome of a successful match. A fresh result is
// built on every match and never mutated afterwards.
type MatchResult struct {
	// Pattern is the matched route pattern.
	Pattern string

	// View is the view registered for the pattern.
	View View

	// Params are the values captured by dynamic segments, raw and not
	// further decoded.
	Params map[string]string
}

// Current is the resolved-location snapshot owned by the controller.
// It is replaced wholesale, never mutated in place.
type Current struct {
	// Route is the matched pattern, or "" when nothing matched.
	Route string

	// View is the view to render: the matched view, or the configured
	// not-found fallback when Matched is false.
	View View

	// Params are the captured dynamic segment values.
	Params map[string]string

	// Query holds the decoded query parameters.
	Query location.Values

	// Fragment is the decoded hash fragment.
	Fragment string

	// Matched reports whether any pattern matched.
	Matched bool
}

// Props returns the view inputs carried by the snapshot.
// An unmatched snapshot yields empty inputs: the fallback view receives
// nothing.
func (c Current) Props() Props {
	if !c.Matched {
		return Props{Params: map[string]string{}, Query: location.Values{}}
	}
	return Props{Params: c.Params, Query: c.Query, Fragment: c.Fragment}
}
