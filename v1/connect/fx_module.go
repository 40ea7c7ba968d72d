package connect

import (
	"context"

	chromemgo "github.com/philippgille/chromem-go"
	"go.uber.org/fx"

	"github.com/taddeusb90/MemGPT/v1/logger"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// FXModule provides a storage.Connector via dependency injection.
// The concrete adapter is selected from the storage.Config in the container.
//
// Usage:
//
//	app := fx.New(
//	    connect.FXModule,
//	    fx.Provide(func() *storage.Config {
//	        cfg := storage.DefaultConfig()
//	        cfg.URI = "localhost:6334"
//	        return cfg
//	    }),
//	    fx.Invoke(func(conn storage.Connector) {
//	        // backend-agnostic code
//	    }),
//	)
var FXModule = fx.Module("connect",
	fx.Provide(OpenWithDI),
	fx.Invoke(RegisterConnectorLifecycle),
)

// ConnectorParams groups the dependencies needed to open a connector.
type ConnectorParams struct {
	fx.In

	Config   *storage.Config
	Embedder chromemgo.EmbeddingFunc `optional:"true"`
	Logger   *logger.Logger          `optional:"true"`
}

// OpenWithDI opens the configured backend from injected dependencies.
func OpenWithDI(params ConnectorParams) (storage.Connector, error) {
	return Open(Params{
		Storage:  params.Config,
		Embedder: params.Embedder,
		Logger:   params.Logger,
	})
}

// LifecycleParams groups the dependencies for lifecycle management.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Connector storage.Connector
}

// RegisterConnectorLifecycle closes the connector on application shutdown.
func RegisterConnectorLifecycle(params LifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Connector.Close()
		},
	})
}
