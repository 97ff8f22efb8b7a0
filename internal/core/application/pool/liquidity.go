package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/pkg/stats"
)

// ProvideLiquidity moves value0 units of token0 and value1 units of token1
// from the caller to the pool. The caller must have authorized the pool to
// move both amounts. Either both legs are deposited or none is.
// No LP token is minted in exchange.
func (s *Service) ProvideLiquidity(
	ctx context.Context, value0, value1 uint64,
) (*domain.LiquidityReceipt, error) {
	if err := s.guard.enter(); err != nil {
		return nil, err
	}
	defer s.guard.exit()

	receipt, err := s.provideLiquidity(ctx, value0, value1)
	if err != nil {
		stats.RecordFailure("provide_liquidity")
		return nil, err
	}

	stats.RecordLiquidity(s.pool.Token0, receipt.Amount0)
	stats.RecordLiquidity(s.pool.Token1, receipt.Amount1)
	stats.RecordReserves(
		s.pool.Token0, receipt.Reserve0, s.pool.Token1, receipt.Reserve1,
	)
	s.publishLiquidity(*receipt)
	return receipt, nil
}

func (s *Service) provideLiquidity(
	ctx context.Context, value0, value1 uint64,
) (*domain.LiquidityReceipt, error) {
	if value0 == 0 && value1 == 0 {
		return nil, fmt.Errorf(
			"%w: at least one amount must be positive", domain.ErrAmountTooLow,
		)
	}

	caller, err := s.env.Caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.checkFunds(ctx, s.token0, caller, value0); err != nil {
		return nil, err
	}
	if err := s.checkFunds(ctx, s.token1, caller, value1); err != nil {
		return nil, err
	}

	if err := s.token0.TransferFrom(
		ctx, caller, s.pool.Account, value0,
	); err != nil {
		return nil, transferError(err)
	}
	if err := s.token1.TransferFrom(
		ctx, caller, s.pool.Account, value1,
	); err != nil {
		s.refund(ctx, s.token0, caller, value0)
		return nil, transferError(err)
	}

	reserves, err := s.Reserves(ctx)
	if err != nil {
		return nil, err
	}

	log.Debugf(
		"pool %s: %s provided %d %s and %d %s",
		s.pool.Account, caller, value0, s.pool.Token0, value1, s.pool.Token1,
	)

	return &domain.LiquidityReceipt{
		ID:        uuid.New().String(),
		Account:   caller,
		Amount0:   value0,
		Amount1:   value1,
		Reserve0:  reserves.Token0,
		Reserve1:  reserves.Token1,
		LpMinted:  0,
		Timestamp: time.Now().Unix(),
	}, nil
}

// checkFunds makes sure the account holds and has authorized the pool to move
// at least amount units of the given token.
func (s *Service) checkFunds(
	ctx context.Context, token ports.TokenService, account string, amount uint64,
) error {
	if amount == 0 {
		return nil
	}

	balance, err := token.BalanceOf(ctx, account)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf(
			"%w: %s holds %d units of %s, needs %d",
			domain.ErrInsufficientBalance, account, balance, token.Address(), amount,
		)
	}

	allowance, err := token.Allowance(ctx, account, s.pool.Account)
	if err != nil {
		return err
	}
	if allowance < amount {
		return fmt.Errorf(
			"%w: %s authorized the pool to move %d units of %s, needs %d",
			domain.ErrInsufficientBalance, account, allowance, token.Address(), amount,
		)
	}
	return nil
}

// refund gives back to the account the amount deposited within an operation
// that could not be completed.
func (s *Service) refund(
	ctx context.Context, token ports.TokenService, account string, amount uint64,
) {
	if amount == 0 {
		return
	}
	if err := token.Transfer(ctx, account, amount); err != nil {
		log.WithError(err).Errorf(
			"pool %s: failed to refund %d units of %s to %s",
			s.pool.Account, amount, token.Address(), account,
		)
		return
	}
	log.Debugf(
		"pool %s: refunded %d units of %s to %s",
		s.pool.Account, amount, token.Address(), account,
	)
}

func (s *Service) recordReserves(ctx context.Context) {
	reserves, err := s.Reserves(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to read reserves")
		return
	}
	stats.RecordReserves(
		s.pool.Token0, reserves.Token0, s.pool.Token1, reserves.Token1,
	)
}

func (s *Service) publishLiquidity(receipt domain.LiquidityReceipt) {
	if s.events == nil {
		return
	}

	go func() {
		if err := s.events.PublishLiquidityEvent(s.pool, receipt); err != nil {
			log.WithError(err).Warnf(
				"pubsub: failed to publish topic for deposit with id %s", receipt.ID,
			)
			return
		}
		log.Debugf("pubsub: published topic for deposit with id %s", receipt.ID)
	}()
}
