package config

import (
	"fmt"
	"time"
)

// QueueConfig describes the broker the vault events are published to.
type QueueConfig struct {
	Url            string        `mapstructure:"url"`
	QueueUser      string        `mapstructure:"user"`
	QueuePassword  string        `mapstructure:"password"`
	Exchange       string        `mapstructure:"exchange"`
	RoutingKey     string        `mapstructure:"routing-key"`
	PublishTimeout time.Duration `mapstructure:"publish-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}

	if cfg.Exchange == "" {
		return fmt.Errorf("missing queue exchange")
	}

	if cfg.PublishTimeout <= 0 {
		return fmt.Errorf("publish timeout must be positive")
	}

	return nil
}

func (cfg *QueueConfig) AmqpURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)
}
