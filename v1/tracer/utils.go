package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// RecordErrorOnSpan records an error on a span and sets its status to error.
// This method is used to indicate that a span represents a failed operation,
// which helps with error tracing and monitoring in observability systems.
//
// Parameters:
//   - span: The span on which to record the error
//   - err: The error to record on the span
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// StartSpan creates a new span with the given name and returns an updated context
// containing the span, along with the span itself. This is the primary method for
// creating spans to trace operations in your application.
//
// The created span becomes a child of any span that exists in the provided context.
// If no span exists in the context, a new root span is created.
//
// Example:
//
//	func insertRecords(ctx context.Context, recs []record.Record) error {
//	    ctx, span := tracer.StartSpan(ctx, "insert-records")
//	    defer span.End()
//
//	    if err := connector.InsertMany(ctx, recs); err != nil {
//	        tracer.RecordErrorOnSpan(span, err)
//	        return err
//	    }
//	    return nil
//	}
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	tracer := t.tracer.Tracer("")
	ctx, span := tracer.Start(ctx, name)
	return ctx, span
}

// SetAttributes adds one or more attributes to a span with support for different data types.
// Attributes provide additional context and metadata for spans, making traces more
// informative for debugging and analysis.
//
// Supported value types:
//   - string: Stored as string attributes
//   - int/int64: Stored as integer attributes
//   - float64: Stored as floating-point attributes
//   - bool: Stored as boolean attributes
//   - other types: Converted to strings using fmt.Sprint
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			// For unsupported types, convert to string
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// GetCarrier extracts the current trace context from a context object and returns
// it as a map that can be transmitted across service boundaries. The returned map
// contains W3C Trace Context headers ("traceparent" and, if present, "tracestate").
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext extracts trace information from a carrier map and injects it
// into a context. This is the complement to GetCarrier and is typically used when
// receiving requests or messages from other services that include trace headers.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
