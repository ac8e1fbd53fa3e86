package config

import "errors"

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests-per-minute"`
	Burst             int `mapstructure:"burst"`
}

func (cfg *RateLimitConfig) Validate() error {
	if cfg.RequestsPerMinute <= 0 {
		return errors.New("requests-per-minute must be positive")
	}
	if cfg.Burst <= 0 {
		return errors.New("burst must be positive")
	}
	return nil
}
