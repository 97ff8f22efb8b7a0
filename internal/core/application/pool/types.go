package pool

import (
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking/formula"
)

// Options tweak the behavior of the pool engine.
type Options struct {
	// LpCodeHash is the code template used to instantiate the LP token.
	LpCodeHash string
	// Rounding of the swap formula. Defaults to pool favoring.
	Rounding formula.Rounding
	// ReserveSource defines what backs the pricing. Defaults to the balances
	// held by the pool.
	ReserveSource domain.ReserveSource
}

func (o Options) reserveSource() domain.ReserveSource {
	if len(o.ReserveSource) <= 0 {
		return domain.ReserveSourceBalance
	}
	return o.ReserveSource
}

// Balances contains the balances of the pool account.
type Balances struct {
	Token0 uint64
	Token1 uint64
	Lp     uint64
}

// Reserves contains the reserves backing the pricing of the pool.
type Reserves struct {
	Token0 uint64
	Token1 uint64
}
