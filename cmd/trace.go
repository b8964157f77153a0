// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"fmt"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisp/x/profiler"
	"github.com/sirupsen/logrus"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Values accepted by the trace setting.
const (
	traceNone          = "none"
	traceOpenTelemetry = "otel"
	traceOpenCensus    = "opencensus"
)

// logSpanExporter writes finished opentelemetry spans to a logger.
type logSpanExporter struct {
	log logrus.FieldLogger
}

var _ sdktrace.SpanExporter = (*logSpanExporter)(nil)

func (e *logSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		fields := logrus.Fields{
			"trace_id": s.SpanContext().TraceID().String(),
			"span_id":  s.SpanContext().SpanID().String(),
			"duration": s.EndTime().Sub(s.StartTime()),
		}
		if s.Parent().IsValid() {
			fields["parent_id"] = s.Parent().SpanID().String()
		}
		for _, kv := range s.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}
		e.log.WithFields(fields).Info(s.Name())
	}
	return nil
}

func (e *logSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// logViewExporter writes finished opencensus spans to a logger.
type logViewExporter struct {
	log logrus.FieldLogger
}

var _ octrace.Exporter = (*logViewExporter)(nil)

func (e *logViewExporter) ExportSpan(s *octrace.SpanData) {
	fields := logrus.Fields{
		"trace_id": s.TraceID.String(),
		"span_id":  s.SpanID.String(),
		"duration": s.EndTime.Sub(s.StartTime),
	}
	if s.ParentSpanID != (octrace.SpanID{}) {
		fields["parent_id"] = s.ParentSpanID.String()
	}
	for _, a := range s.Annotations {
		for k, v := range a.Attributes {
			fields[k] = v
		}
	}
	e.log.WithFields(fields).Info(s.Name)
}

// traceConfig returns a lisp.Config that installs the profiler named by mode
// in an environment's runtime.  The returned function completes the profiler
// and flushes any buffered spans.  A nil Config is returned when mode
// disables tracing.
func traceConfig(mode string, log logrus.FieldLogger) (lisp.Config, func(), error) {
	var (
		newProfiler func(rt *lisp.Runtime) lisp.Profiler
		shutdown    func()
	)
	switch mode {
	case "", traceNone:
		return nil, func() {}, nil
	case traceOpenTelemetry:
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(&logSpanExporter{log: log}),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		newProfiler = func(rt *lisp.Runtime) lisp.Profiler {
			return profiler.NewOpenTelemetryAnnotator(rt, context.Background())
		}
		shutdown = func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("Unable to shut down tracer provider")
			}
		}
	case traceOpenCensus:
		exporter := &logViewExporter{log: log}
		octrace.RegisterExporter(exporter)
		octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
		newProfiler = func(rt *lisp.Runtime) lisp.Profiler {
			return profiler.NewOpenCensusAnnotator(rt, context.Background())
		}
		shutdown = func() {
			octrace.UnregisterExporter(exporter)
		}
	default:
		return nil, nil, fmt.Errorf("unknown trace mode: %s", mode)
	}

	var prof lisp.Profiler
	config := func(env *lisp.LEnv) error {
		prof = newProfiler(env.Runtime)
		return lisp.WithProfiler(prof)(env)
	}
	done := func() {
		if prof != nil {
			if err := prof.Complete(); err != nil {
				log.WithError(err).Warn("Unable to complete trace")
			}
		}
		shutdown()
	}
	return config, done, nil
}
