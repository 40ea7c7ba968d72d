package observability

import (
	"go.uber.org/fx"
)

// FXModule wires the observability helpers into Fx.
//
// It provides:
//   - *MetricsObserver        (NewMetricsObserver)
//   - Observer                (the same instance, as the interface)
//
// The metrics module must also be part of the application so that a
// metrics.MetricsCollector is available in the container.
var FXModule = fx.Module(
	"observability",

	fx.Provide(
		NewMetricsObserver, // -> *MetricsObserver
		func(o *MetricsObserver) Observer { return o },
	),
)
