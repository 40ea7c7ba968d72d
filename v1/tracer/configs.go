package tracer

// Config defines the configuration structure for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies the service emitting spans. It becomes the
	// service.name resource attribute on every exported trace.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable TRACER_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv names the deployment environment (e.g. "development",
	// "staging", "production") and is attached as a resource attribute.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "app_env" key
	//   - Environment variable TRACER_APP_ENV
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport controls whether spans are exported over OTLP HTTP.
	// When false, spans are still created and propagated but never leave
	// the process, which is the right mode for tests and local runs.
	//
	// The OTLP endpoint itself is configured through the standard
	// OTEL_EXPORTER_OTLP_* environment variables.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "enable_export" key
	//   - Environment variable TRACER_ENABLE_EXPORT
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
