package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Default tracer name for wayfind applications.
const defaultTracerName = "wayfind"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// IncludeFragment includes the hash fragment in span attributes.
	// Fragments sometimes carry user content, disabled by default.
	IncludeFragment bool

	// Filter determines which navigations to trace. Return true to
	// trace, false to skip. Nil traces everything.
	Filter func(ctx *router.NavContext) bool

	// AttributeExtractor extracts custom attributes per navigation.
	AttributeExtractor func(ctx *router.NavContext) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeFragment enables recording the fragment in spans.
func WithIncludeFragment(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeFragment = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(ctx *router.NavContext) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *router.NavContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// Each resolution gets one span. The span records the path up front;
// route, match outcome, and whether the snapshot was replaced are
// recorded once matching finished. The tracer comes from the global
// provider, so configure otel.SetTracerProvider in main() first.
//
// Example:
//
//	ctrl := router.NewController(table,
//	    router.WithMiddleware(
//	        middleware.OpenTelemetry(middleware.WithTracerName("my-app")),
//	    ),
//	)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	config.tracer = otel.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(ctx *router.NavContext, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("wayfind.path", ctx.Path),
		}
		if config.IncludeFragment && ctx.Fragment != "" {
			attrs = append(attrs, attribute.String("wayfind.fragment", ctx.Fragment))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx)...)
		}

		spanCtx, span := config.tracer.Start(
			ctx.StdContext(),
			"wayfind.navigate",
			trace.WithAttributes(attrs...),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		ctx.SetStdContext(spanCtx)

		err := next()

		span.SetAttributes(
			attribute.String("wayfind.route", ctx.Route),
			attribute.Bool("wayfind.matched", ctx.Matched),
			attribute.Bool("wayfind.replaced", ctx.Replaced),
		)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		span.SetStatus(codes.Ok, "")
		return nil
	})
}
