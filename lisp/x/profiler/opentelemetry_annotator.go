package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/roots/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"

	// DefaultTracerName is the tracer name used when the parent context does
	// not name one.
	DefaultTracerName = "roots"
)

var _ lisp.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    trace.Span
}

// NewOpenTelemetryAnnotator returns a profiler that records a span for each
// function application as a child of the span in parentContext.
func NewOpenTelemetryAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) lisp.Profiler {
	p := &otelAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

func (p *otelAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = DefaultTracerName
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(fun *lisp.LVal) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, funName := p.prettyFunName(fun)
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, prettyLabel)
	p.addCodeAttributes(fun, funName)
	return func() {
		p.currentSpan.End()
		// And pop the current context back
		p.currentContext = oldContext
		p.currentSpan = trace.SpanFromContext(p.currentContext)
	}
}

// Span attribute keys describing the function application.
const (
	attrFunKind     = attribute.Key("roots.function.kind")
	attrStackHeight = attribute.Key("roots.stack.height")
	attrEnvID       = attribute.Key("roots.env.id")
)

func (p *otelAnnotator) addCodeAttributes(fun *lisp.LVal, funName string) {
	attrs := []attribute.KeyValue{
		semconv.CodeFunction(funName),
		attrStackHeight.Int(p.runtime.Stack.Height()),
	}
	if fun.IsBuiltin() {
		p.currentSpan.SetAttributes(append(attrs, attrFunKind.String("primitive"))...)
		return
	}
	attrs = append(attrs, attrFunKind.String("closure"))
	if env := fun.Env(); env != nil {
		attrs = append(attrs, attrEnvID.Int64(int64(env.ID)))
	}
	// a closure is located where it was defined
	if loc := getSourceLoc(fun); loc != nil {
		attrs = append(attrs,
			semconv.CodeFilepath(loc.File),
			semconv.CodeLineNumber(loc.Line),
			semconv.CodeColumn(loc.Col),
		)
	}
	p.currentSpan.SetAttributes(attrs...)
}
