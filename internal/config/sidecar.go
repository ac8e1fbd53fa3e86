package config

import "errors"

// SidecarConfig holds the credential of the node sidecar. The sidecar watches
// the vault purse and is the only client allowed to report deposits and exits
// on behalf of an account.
type SidecarConfig struct {
	Secret string `mapstructure:"secret"`
}

func (cfg *SidecarConfig) Validate() error {
	if len(cfg.Secret) < minAdminSecretLength {
		return errors.New("sidecar secret must be at least 32 characters")
	}
	return nil
}
