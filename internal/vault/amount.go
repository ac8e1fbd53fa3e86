package vault

import (
	"fmt"

	"github.com/holiman/uint256"
)

// MotesPerCSPR is the number of motes in one CSPR.
const MotesPerCSPR uint64 = 1_000_000_000

// DefaultMinDelegation is the smallest amount the vault delegates in one call.
var DefaultMinDelegation = uint256.NewInt(50 * MotesPerCSPR)

// ParseAmount parses a base-10 amount of motes. Signs, whitespace and values
// that do not fit in 256 bits are rejected.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
		}
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return amount, nil
}

// subSaturating returns x-y, or zero when y > x.
func subSaturating(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(x, y)
}
