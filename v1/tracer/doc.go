// Package tracer provides distributed tracing functionality using OpenTelemetry.
//
// The tracer package offers a simplified interface for implementing distributed
// tracing in Go applications. It abstracts away the complexity of OpenTelemetry
// to provide a clean, easy-to-use API for creating and managing trace spans.
//
// Core Features:
//   - Simple span creation and management
//   - Error recording and status tracking
//   - Customizable span attributes
//   - Cross-service trace context propagation
//   - Integration with OpenTelemetry backends
//
// Basic Usage:
//
//	tracerClient := tracer.NewClient(tracer.Config{
//		ServiceName:  "archival-memory",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//
//	ctx, span := tracerClient.StartSpan(ctx, "query-records")
//	defer span.End()
//
//	tracerClient.SetAttributes(span, map[string]interface{}{
//		"table":  "passages",
//		"top_k":  10,
//	})
//
// When export is enabled, spans are sent over OTLP HTTP to the endpoint
// configured through the standard OTEL_EXPORTER_OTLP_* environment variables.
package tracer
