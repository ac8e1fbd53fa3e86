package vault

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestComputeSurplus(t *testing.T) {
	maxInt := new(uint256.Int).SetAllOne()

	tests := []struct {
		name      string
		pool      func(p *PoolState)
		holdings  *uint256.Int
		want      *uint256.Int
		wantFound bool
	}{
		{
			name:     "balanced pool",
			pool:     func(p *PoolState) { p.TotalPrincipal = uint256.NewInt(100); p.StakedAmount = uint256.NewInt(100) },
			holdings: uint256.NewInt(0),
		},
		{
			name: "rewards in the purse",
			pool: func(p *PoolState) {
				p.TotalPrincipal = uint256.NewInt(100)
				p.PendingStakePool = uint256.NewInt(40)
				p.StakedAmount = uint256.NewInt(60)
			},
			holdings:  uint256.NewInt(90),
			want:      uint256.NewInt(10),
			wantFound: true,
		},
		{
			name:     "liabilities above assets",
			pool:     func(p *PoolState) { p.TotalPrincipal = uint256.NewInt(100); p.TotalUnstakedAmount = uint256.NewInt(50) },
			holdings: uint256.NewInt(120),
		},
		{
			name:      "assets overflow",
			pool:      func(p *PoolState) { p.TotalPrincipal = uint256.NewInt(20); p.StakedAmount = maxInt.Clone() },
			holdings:  uint256.NewInt(10),
			want:      new(uint256.Int).Sub(maxInt, uint256.NewInt(10)),
			wantFound: true,
		},
		{
			name:      "assets overflow beyond 256 bits of surplus",
			pool:      func(p *PoolState) { p.StakedAmount = maxInt.Clone() },
			holdings:  maxInt.Clone(),
			want:      maxInt.Clone(),
			wantFound: true,
		},
		{
			name:     "liabilities overflow",
			pool:     func(p *PoolState) { p.TotalPrincipal = maxInt.Clone(); p.PendingStakePool = uint256.NewInt(1) },
			holdings: maxInt.Clone(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPoolState()
			tt.pool(pool)
			got, found := computeSurplus(pool, tt.holdings)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
