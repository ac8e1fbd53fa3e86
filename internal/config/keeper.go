package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// KeeperConfig schedules the periodic drain and harvest. Specs use the
// standard cron syntax or descriptors such as "@every 1m".
type KeeperConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	DrainSchedule   string `mapstructure:"drain-schedule"`
	HarvestSchedule string `mapstructure:"harvest-schedule"`
}

func (cfg *KeeperConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(cfg.DrainSchedule); err != nil {
		return fmt.Errorf("invalid keeper drain-schedule: %w", err)
	}
	if _, err := cron.ParseStandard(cfg.HarvestSchedule); err != nil {
		return fmt.Errorf("invalid keeper harvest-schedule: %w", err)
	}
	return nil
}
