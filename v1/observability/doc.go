// Package observability instruments storage connectors with metrics and
// distributed tracing.
//
// Connectors stay free of any observability concern. Instead, this package
// wraps a storage.Connector with decorators that report every operation to
// an Observer (Prometheus counters and histograms via MetricsObserver) or
// open an OpenTelemetry span around it (Traced).
//
// Example:
//
//	conn, err := chromem.NewConnector(cfg, nil, log)
//	if err != nil {
//	    return err
//	}
//
//	observer := observability.NewMetricsObserver(m)
//	instrumented := observability.Observed(conn, observer, "chromem", cfg.Storage.CollectionName())
//
// Decorators compose, so a connector can be both observed and traced:
//
//	instrumented = observability.Traced(instrumented, tracerClient, "chromem")
package observability
