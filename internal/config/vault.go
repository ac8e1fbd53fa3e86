package config

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/babylonchain/staking-vault-service/internal/vault"
)

type VaultConfig struct {
	// Minimum delegation in motes. Empty means the protocol default.
	MinDelegation string `mapstructure:"min-delegation"`
}

func (cfg *VaultConfig) Validate() error {
	if cfg.MinDelegation == "" {
		return nil
	}
	amount, err := vault.ParseAmount(cfg.MinDelegation)
	if err != nil {
		return fmt.Errorf("invalid vault min-delegation: %w", err)
	}
	if amount.IsZero() {
		return fmt.Errorf("vault min-delegation must be positive")
	}
	return nil
}

func (cfg *VaultConfig) GetMinDelegation() *uint256.Int {
	if cfg.MinDelegation == "" {
		return vault.DefaultMinDelegation.Clone()
	}
	amount, err := vault.ParseAmount(cfg.MinDelegation)
	if err != nil {
		return vault.DefaultMinDelegation.Clone()
	}
	return amount
}
