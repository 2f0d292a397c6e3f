package config

import "time"

// ApplyDefaults fills unset fields of cfg with sensible defaults.
//
// Zero values (0, "", false) are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyHTTPAPIDefaults(&cfg.HTTPAPI)
	applyDictionaryDefaults(&cfg.Dictionary)
	applyRADIUSDefaults(&cfg.RADIUS)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
	if cfg.Profiling.Endpoint == "" {
		cfg.Profiling.Endpoint = "http://localhost:4040"
	}
	if len(cfg.Profiling.ProfileTypes) == 0 {
		cfg.Profiling.ProfileTypes = []string{"cpu", "alloc_objects", "alloc_space", "inuse_objects", "inuse_space"}
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyHTTPAPIDefaults(cfg *HTTPAPIConfig) {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
}

func applyDictionaryDefaults(cfg *DictionaryConfig) {
	if cfg.Source == "" {
		cfg.Source = "builtin"
	}
}

func applyRADIUSDefaults(cfg *RADIUSConfig) {
	if cfg.MaxAttrLen == 0 {
		cfg.MaxAttrLen = 128 * 1024
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
}
