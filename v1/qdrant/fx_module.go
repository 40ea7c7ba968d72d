package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/taddeusb90/MemGPT/v1/logger"
)

// FXModule is an fx.Module that provides the Qdrant connector.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    fx.Provide(func() qdrant.Config { return loadConfig() }),
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewConnectorWithDI,
	),
	fx.Invoke(RegisterConnectorLifecycle),
)

// ConnectorParams groups the dependencies needed to create the connector.
type ConnectorParams struct {
	fx.In

	Config Config
	Logger *logger.Logger `optional:"true"`
}

// NewConnectorWithDI creates the connector from injected dependencies.
func NewConnectorWithDI(params ConnectorParams) (*Connector, error) {
	return NewConnector(params.Config, params.Logger)
}

// LifecycleParams groups the dependencies for lifecycle management.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Connector *Connector
}

// RegisterConnectorLifecycle closes the connector on application shutdown.
func RegisterConnectorLifecycle(params LifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Connector.Close()
		},
	})
}
