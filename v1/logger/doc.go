// Package logger provides structured logging functionality for Go applications.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual fields, and JSON output.
// It integrates with the fx dependency injection framework for easy
// incorporation into applications.
//
// # Architecture
//
//   - Logger struct: Thin wrapper around Uber's Zap logger
//   - NewLoggerClient constructor: Returns *Logger (concrete type)
//   - NewNop constructor: Returns a no-op *Logger for tests
//   - FX module: Provides *Logger and registers a flush-on-shutdown hook
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warning, Error)
//   - JSON encoding with ISO8601 timestamps
//   - Process ID and service name attached to every entry
//   - Integration with common log collection systems
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/taddeusb90/MemGPT/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "archival-memory",
//	})
//
//	log.Info("User logged in", nil, map[string]interface{}{
//		"user_id": "12345",
//		"ip":      "192.168.1.1",
//	})
//
// # FX Module Integration
//
// For production applications using Uber's fx, include the FXModule:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{
//				Level:       logger.Info,
//				ServiceName: "archival-memory",
//			}
//		}),
//		fx.Invoke(func(log *logger.Logger) {
//			log.Info("Service started", nil, nil)
//		}),
//	)
//	app.Run()
//
// # Logging Levels
//
//	log.Debug("Debug message", nil, nil) // Only appears if level is Debug
//	log.Info("Info message", nil, nil)
//	log.Warn("Warning message", nil, nil)
//	log.Error("Error message", err, nil)
//
// # Configuration
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_ENABLE_TRACING=true      # Enable distributed tracing integration
//
// # Thread Safety
//
// All methods on the Logger struct are safe for concurrent use by multiple
// goroutines.
package logger
