package config

import (
	"errors"
	"net/url"
)

// NodeConfig points at the sidecar that signs and submits deploys for the
// vault purse.
type NodeConfig struct {
	Url      string `mapstructure:"url"`
	Timeout  int    `mapstructure:"timeout"`
	ApiToken string `mapstructure:"token"`
}

func (cfg *NodeConfig) Validate() error {
	if cfg.Url == "" {
		return errors.New("node url cannot be empty")
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout cannot be smaller or equal to 0")
	}

	if cfg.ApiToken == "" {
		return errors.New("node api token cannot be empty")
	}

	parsedURL, err := url.ParseRequestURI(cfg.Url)
	if err != nil {
		return errors.New("invalid node url")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("node url must start with http or https")
	}

	return nil
}
