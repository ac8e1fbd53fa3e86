package model

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Amounts are stored as base-10 strings: BSON has no 256 bit integer type.

func encodeAmount(amount *uint256.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.Dec()
}

func decodeAmount(field, s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("corrupted %s %q: %w", field, s, err)
	}
	return amount, nil
}
