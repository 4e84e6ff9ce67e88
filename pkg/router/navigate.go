package router

import (
	"net/url"

	"github.com/wayfind-dev/wayfind/pkg/browser"
	"github.com/wayfind-dev/wayfind/pkg/location"
)

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Query are query parameters appended to the target URL.
	Query map[string]string

	// Fragment is a hash fragment appended to the target URL.
	Fragment string

	// Scroll controls whether a fragment target is scrolled into view
	// once the navigation resolves. Defaults to true.
	Scroll bool
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// newNavigateOptions applies opts over the defaults.
func newNavigateOptions(opts ...NavigateOption) NavigateOptions {
	options := NavigateOptions{Scroll: true}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithQuery adds query parameters to the navigation URL.
func WithQuery(query map[string]string) NavigateOption {
	return func(o *NavigateOptions) {
		o.Query = query
	}
}

// WithFragment adds a hash fragment to the navigation URL.
func WithFragment(fragment string) NavigateOption {
	return func(o *NavigateOptions) {
		o.Fragment = fragment
	}
}

// WithoutScroll disables the fragment scroll after navigation.
func WithoutScroll() NavigateOption {
	return func(o *NavigateOptions) {
		o.Scroll = false
	}
}

// Navigate is the single navigation trigger surface. It validates the
// target, updates the visible location without a reload, and lets the
// source's change notification drive re-evaluation. Only this function
// (plus the controller's canonicalization rewrite) mutates the source.
func Navigate(src browser.Source, path string, opts ...NavigateOption) error {
	return navigate(src, path, newNavigateOptions(opts...))
}

func navigate(src browser.Source, path string, options NavigateOptions) error {
	target, err := BuildURL(path, options)
	if err != nil {
		return err
	}

	if options.Replace {
		src.Replace(target)
	} else {
		src.Push(target)
	}
	return nil
}

// BuildURL constructs the full navigation URL from a path and options.
// The path may already carry a query string; option query parameters
// are merged into it.
func BuildURL(path string, options NavigateOptions) (string, error) {
	target, err := location.NormalizeNavPath(path)
	if err != nil {
		return "", err
	}

	if len(options.Query) > 0 {
		rawPath, rawQuery := location.SplitPathAndQuery(target)
		q, err := url.ParseQuery(rawQuery)
		if err != nil {
			q = url.Values{}
		}
		for k, v := range options.Query {
			q.Set(k, v)
		}
		target = rawPath + "?" + q.Encode()
	}

	if options.Fragment != "" {
		target += "#" + options.Fragment
	}

	return target, nil
}
