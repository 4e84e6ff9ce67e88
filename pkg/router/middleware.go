package router

import "context"

// NavContext carries the facts about one navigation resolution through
// the middleware chain. Path and Fragment are set before the chain
// runs; Route and Matched are filled in once matching has happened, so
// middleware that wants them must read them after calling next.
type NavContext struct {
	// Path is the canonical path being resolved.
	Path string

	// Fragment is the decoded hash fragment.
	Fragment string

	// Route is the matched pattern, "" until matching ran or when
	// nothing matched.
	Route string

	// Matched reports whether a pattern matched.
	Matched bool

	// Replaced reports whether the resolution replaced the controller's
	// snapshot (false when the candidate was a duplicate).
	Replaced bool

	// ScrollAttempted reports whether the resolution tried to scroll a
	// fragment target into view (non-empty fragment, scrolling not
	// suppressed).
	ScrollAttempted bool

	// ScrollFound reports whether the attempted scroll target existed.
	ScrollFound bool

	stdCtx context.Context
}

// StdContext returns the context.Context for this navigation, for
// propagating trace spans and deadlines into downstream calls.
func (c *NavContext) StdContext() context.Context {
	if c.stdCtx == nil {
		return context.Background()
	}
	return c.stdCtx
}

// SetStdContext swaps the navigation's context.Context.
func (c *NavContext) SetStdContext(ctx context.Context) {
	c.stdCtx = ctx
}

// Middleware wraps a navigation resolution.
type Middleware interface {
	// Handle processes the navigation and optionally calls next.
	// Returning an error stops the chain; the controller logs it and
	// leaves the previous snapshot in place.
	Handle(ctx *NavContext, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx *NavContext, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx *NavContext, next func() error) error {
	return f(ctx, next)
}

// ComposeMiddleware builds a handler chain from middleware and a final
// handler. Middleware runs in order, first to last, with the handler at
// the end.
func ComposeMiddleware(ctx *NavContext, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(ctx, next)
		}
	}

	return chain()
}

// Chain combines multiple middleware into one, preserving order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx *NavContext, next func() error) error {
		return ComposeMiddleware(ctx, middleware, next)
	})
}

// Skip runs mw only when the condition is false.
func Skip(condition func(ctx *NavContext) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx *NavContext, next func() error) error {
		if condition(ctx) {
			return next()
		}
		return mw.Handle(ctx, next)
	})
}

// Only runs mw only when the condition is true.
func Only(condition func(ctx *NavContext) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx *NavContext, next func() error) error {
		if !condition(ctx) {
			return next()
		}
		return mw.Handle(ctx, next)
	})
}
