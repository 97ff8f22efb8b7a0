package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
	"github.com/tdex-network/tdex-pool/pkg/stats"
)

// Swap sells value units of the from asset to the pool in exchange for the
// other asset. The caller must have authorized the pool to move value units
// of the from asset. Nothing is moved if any check fails.
func (s *Service) Swap(
	ctx context.Context, from string, value uint64,
) (*domain.SwapReceipt, error) {
	if err := s.guard.enter(); err != nil {
		return nil, err
	}
	defer s.guard.exit()

	receipt, err := s.swap(ctx, from, value)
	if err != nil {
		stats.RecordFailure("swap")
		return nil, err
	}

	stats.RecordSwap(
		receipt.AssetIn, receipt.AssetOut, receipt.AmountIn, receipt.AmountOut,
	)
	s.recordReserves(ctx)
	s.publishSwap(*receipt)
	return receipt, nil
}

// Simulate returns the amount of the other asset a swap of value units of the
// from asset would pay out at the current reserves. An unknown asset returns
// 0 since nothing would be swapped.
func (s *Service) Simulate(
	ctx context.Context, from string, value uint64,
) (uint64, error) {
	offer, ask, ok := s.direction(from)
	if !ok {
		return 0, nil
	}

	opts, err := s.formulaOpts(ctx, offer, ask)
	if err != nil {
		return 0, err
	}
	return s.outGivenIn(opts, value)
}

// Quote returns the minimum amount of the from asset to swap for receiving at
// least amountOut units of the other asset at the current reserves.
func (s *Service) Quote(
	ctx context.Context, from string, amountOut uint64,
) (uint64, error) {
	offer, ask, ok := s.direction(from)
	if !ok {
		return 0, domain.ErrUnknownAsset
	}

	opts, err := s.formulaOpts(ctx, offer, ask)
	if err != nil {
		return 0, err
	}

	amountIn, err := s.strategy.Formula().InGivenOut(opts, amountOut)
	if err != nil {
		return 0, formulaError(err)
	}
	return amountIn, nil
}

func (s *Service) swap(
	ctx context.Context, from string, value uint64,
) (*domain.SwapReceipt, error) {
	caller, err := s.env.Caller(ctx)
	if err != nil {
		return nil, err
	}

	offer, ask, ok := s.direction(from)
	if !ok {
		return nil, domain.ErrUnknownAsset
	}

	opts, err := s.formulaOpts(ctx, offer, ask)
	if err != nil {
		return nil, err
	}
	amountOut, err := s.outGivenIn(opts, value)
	if err != nil {
		return nil, err
	}
	if amountOut == 0 {
		return nil, fmt.Errorf(
			"%w: selling %d units pays out nothing", domain.ErrAmountTooLow, value,
		)
	}

	if err := s.checkFunds(ctx, offer, caller, value); err != nil {
		return nil, err
	}
	poolBalance, err := ask.BalanceOf(ctx, s.pool.Account)
	if err != nil {
		return nil, err
	}
	if poolBalance < amountOut {
		return nil, fmt.Errorf(
			"%w: pool holds %d units of %s, needs %d",
			domain.ErrReserveExhausted, poolBalance, ask.Address(), amountOut,
		)
	}

	if err := offer.TransferFrom(
		ctx, caller, s.pool.Account, value,
	); err != nil {
		return nil, transferError(err)
	}

	if err := s.verifyReserves(ctx, offer, ask, opts, value); err != nil {
		s.refund(ctx, offer, caller, value)
		return nil, err
	}

	if err := ask.Transfer(ctx, caller, amountOut); err != nil {
		s.refund(ctx, offer, caller, value)
		return nil, transferError(err)
	}

	log.Debugf(
		"pool %s: %s swapped %d %s for %d %s",
		s.pool.Account, caller, value, offer.Address(), amountOut, ask.Address(),
	)

	return &domain.SwapReceipt{
		ID:        uuid.New().String(),
		Account:   caller,
		AssetIn:   offer.Address(),
		AssetOut:  ask.Address(),
		AmountIn:  value,
		AmountOut: amountOut,
		Timestamp: time.Now().Unix(),
	}, nil
}

func (s *Service) outGivenIn(
	opts *marketmaking.FormulaOpts, value uint64,
) (uint64, error) {
	amountOut, err := s.strategy.Formula().OutGivenIn(opts, value)
	if err != nil {
		return 0, formulaError(err)
	}
	return amountOut, nil
}

// verifyReserves makes sure the reserves after the deposit are exactly those
// the output was computed for, plus the deposit itself when the reserves are
// the pool balances.
func (s *Service) verifyReserves(
	ctx context.Context,
	offer, ask ports.TokenService,
	expected *marketmaking.FormulaOpts, deposit uint64,
) error {
	current, err := s.formulaOpts(ctx, offer, ask)
	if err != nil {
		return err
	}

	expectedIn := expected.BalanceIn
	if s.pool.ReserveSource == domain.ReserveSourceBalance {
		if expectedIn, err = mathutil.Add(expectedIn, deposit); err != nil {
			return formulaError(err)
		}
	}

	if current.BalanceIn != expectedIn || current.BalanceOut != expected.BalanceOut {
		return fmt.Errorf(
			"%w: expected %d/%d, got %d/%d", domain.ErrReservesDrifted,
			expectedIn, expected.BalanceOut, current.BalanceIn, current.BalanceOut,
		)
	}
	return nil
}

func (s *Service) publishSwap(receipt domain.SwapReceipt) {
	if s.events == nil {
		return
	}

	go func() {
		if err := s.events.PublishSwapEvent(s.pool, receipt); err != nil {
			log.WithError(err).Warnf(
				"pubsub: failed to publish topic for swap with id %s", receipt.ID,
			)
			return
		}
		log.Debugf("pubsub: published topic for swap with id %s", receipt.ID)
	}()
}
