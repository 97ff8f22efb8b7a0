package pool

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
)

// Token0Balance returns the balance of token0 held by the pool.
func (s *Service) Token0Balance(ctx context.Context) (uint64, error) {
	return s.token0.BalanceOf(ctx, s.pool.Account)
}

// Token1Balance returns the balance of token1 held by the pool.
func (s *Service) Token1Balance(ctx context.Context) (uint64, error) {
	return s.token1.BalanceOf(ctx, s.pool.Account)
}

// LpBalance returns the balance of LP token held by the pool.
func (s *Service) LpBalance(ctx context.Context) (uint64, error) {
	return s.lp.BalanceOf(ctx, s.pool.Account)
}

// Balances returns the balances of the pool account for all its tokens.
func (s *Service) Balances(ctx context.Context) (*Balances, error) {
	balance0, err := s.Token0Balance(ctx)
	if err != nil {
		return nil, err
	}
	balance1, err := s.Token1Balance(ctx)
	if err != nil {
		return nil, err
	}
	lpBalance, err := s.LpBalance(ctx)
	if err != nil {
		return nil, err
	}
	return &Balances{balance0, balance1, lpBalance}, nil
}

// Reserves returns the reserves backing the pricing of the pool.
func (s *Service) Reserves(ctx context.Context) (*Reserves, error) {
	reserve0, err := s.reserve(ctx, s.token0)
	if err != nil {
		return nil, err
	}
	reserve1, err := s.reserve(ctx, s.token1)
	if err != nil {
		return nil, err
	}
	return &Reserves{reserve0, reserve1}, nil
}

// SpotPrice returns the units of the other asset given for one unit of the
// from asset at the current reserves.
func (s *Service) SpotPrice(
	ctx context.Context, from string,
) (decimal.Decimal, error) {
	offer, ask, ok := s.direction(from)
	if !ok {
		return decimal.Zero, domain.ErrUnknownAsset
	}

	opts, err := s.formulaOpts(ctx, offer, ask)
	if err != nil {
		return decimal.Zero, err
	}

	price, err := s.strategy.Formula().SpotPrice(opts)
	if err != nil {
		return decimal.Zero, formulaError(err)
	}
	return price, nil
}

func (s *Service) reserve(
	ctx context.Context, token ports.TokenService,
) (uint64, error) {
	if s.pool.ReserveSource == domain.ReserveSourceSupply {
		return token.TotalSupply(ctx)
	}
	return token.BalanceOf(ctx, s.pool.Account)
}

// formulaOpts reads the reserves of the offer and ask tokens.
func (s *Service) formulaOpts(
	ctx context.Context, offer, ask ports.TokenService,
) (*marketmaking.FormulaOpts, error) {
	offerReserve, err := s.reserve(ctx, offer)
	if err != nil {
		return nil, err
	}
	askReserve, err := s.reserve(ctx, ask)
	if err != nil {
		return nil, err
	}
	return &marketmaking.FormulaOpts{
		BalanceIn:  offerReserve,
		BalanceOut: askReserve,
	}, nil
}

// direction returns the handles of the offer and ask tokens of a trade
// selling the given asset to the pool.
func (s *Service) direction(
	asset string,
) (offer, ask ports.TokenService, ok bool) {
	offerAsset, _, ok := s.pool.Direction(asset)
	if !ok {
		return nil, nil, false
	}
	if offerAsset == s.pool.Token0 {
		return s.token0, s.token1, true
	}
	return s.token1, s.token0, true
}
