package config

import "fmt"

// validate validates the configuration.
func validate(cfg *Config) error {
	if cfg.Encoder.SampleRate <= 0 {
		return fmt.Errorf("encoder.sample_rate must be positive")
	}
	if cfg.Encoder.ToneSpacingHz <= 0 {
		return fmt.Errorf("encoder.tone_spacing_hz must be positive")
	}
	if cfg.Encoder.BaseFreqHz < 0 {
		return fmt.Errorf("encoder.base_freq_hz must not be negative")
	}

	if cfg.Web.Enabled {
		if cfg.Web.Port <= 0 || cfg.Web.Port > 65535 {
			return fmt.Errorf("web.port must be between 1 and 65535")
		}
	}

	if cfg.Logbook.Enabled && cfg.Logbook.DSN == "" {
		return fmt.Errorf("logbook.dsn is required when logbook is enabled")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Prometheus.Enabled {
		if cfg.Metrics.Prometheus.Port <= 0 || cfg.Metrics.Prometheus.Port > 65535 {
			return fmt.Errorf("metrics.prometheus.port must be between 1 and 65535")
		}
		if cfg.Metrics.Prometheus.Path == "" {
			return fmt.Errorf("metrics.prometheus.path is required when prometheus metrics are enabled")
		}
	}

	return nil
}
