package config

import "errors"

const minAdminSecretLength = 32

type AdminConfig struct {
	Secret string `mapstructure:"secret"`
}

func (cfg *AdminConfig) Validate() error {
	if len(cfg.Secret) < minAdminSecretLength {
		return errors.New("admin secret must be at least 32 characters")
	}
	return nil
}
