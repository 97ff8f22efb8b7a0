package pool_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

func newHookedPool(
	t *testing.T, asset string, hook *hookedToken,
) (*testEnv, *pool.Service) {
	env := newTestEnv(t, 1000000)
	env.registry = hookedRegistry{env.rt, map[string]*hookedToken{asset: hook}}
	svc := env.newFundedPool(t, 1000, 1000, pool.Options{})
	return env, svc
}

func TestReentrantSwap(t *testing.T) {
	t.Parallel()

	hook := &hookedToken{}
	env, svc := newHookedPool(t, token0, hook)
	env.fund(t, bob, 100, 0)

	var reentrantErr error
	hook.afterTransferFrom = func(ctx context.Context) {
		_, reentrantErr = svc.Swap(ctx, token1, 10)
	}

	receipt, err := svc.Swap(as(bob), token0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(90), receipt.AmountOut)
	require.ErrorIs(t, reentrantErr, domain.ErrReentrantCall)

	hook.afterTransferFrom = func(ctx context.Context) {
		_, reentrantErr = svc.ProvideLiquidity(ctx, 1, 1)
	}
	env.fund(t, bob, 100, 0)

	_, err = svc.Swap(as(bob), token0, 100)
	require.NoError(t, err)
	require.ErrorIs(t, reentrantErr, domain.ErrReentrantCall)
}

func TestSwapWithDriftedReserves(t *testing.T) {
	t.Parallel()

	hook := &hookedToken{}
	env, svc := newHookedPool(t, token0, hook)
	env.fund(t, bob, 100, 0)

	hook.afterTransferFrom = func(ctx context.Context) {
		err := env.token(t, token1, faucet).Transfer(ctx, poolAccount, 5)
		require.NoError(t, err)
	}

	_, err := svc.Swap(as(bob), token0, 100)
	require.ErrorIs(t, err, domain.ErrReservesDrifted)
	require.Equal(t, uint64(100), env.balanceOf(t, token0, bob))
	require.Zero(t, env.balanceOf(t, token1, bob))

	balances, err := svc.Balances(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), balances.Token0)
	require.Equal(t, uint64(1005), balances.Token1)
}

func TestSwapWithFailingPayout(t *testing.T) {
	t.Parallel()

	hook := &hookedToken{}
	env, svc := newHookedPool(t, token1, hook)
	env.fund(t, bob, 100, 0)
	hook.failTransfer = errors.New("token is paused")

	_, err := svc.Swap(as(bob), token0, 100)
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	require.Equal(t, uint64(100), env.balanceOf(t, token0, bob))

	reserves, err := svc.Reserves(ctx)
	require.NoError(t, err)
	require.Equal(t, pool.Reserves{Token0: 1000, Token1: 1000}, *reserves)
}

func TestProvideLiquidityWithFailingLeg(t *testing.T) {
	t.Parallel()

	hook := &hookedToken{}
	env, svc := newHookedPool(t, token1, hook)
	env.fund(t, alice, 10, 10)
	hook.failTransferFrom = errors.New("token is paused")

	_, err := svc.ProvideLiquidity(as(alice), 10, 10)
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	require.Equal(t, uint64(10), env.balanceOf(t, token0, alice))
	require.Equal(t, uint64(10), env.balanceOf(t, token1, alice))

	reserves, err := svc.Reserves(ctx)
	require.NoError(t, err)
	require.Equal(t, pool.Reserves{Token0: 1000, Token1: 1000}, *reserves)
}

func TestPublishEvents(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 1000000)
	deposits := make(chan domain.LiquidityReceipt, 1)
	swaps := make(chan domain.SwapReceipt, 1)

	publisher := &mockEventPublisher{}
	publisher.On("PublishLiquidityEvent", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			deposits <- args.Get(1).(domain.LiquidityReceipt)
		})
	publisher.On("PublishSwapEvent", mock.Anything, mock.Anything).
		Return(errors.New("endpoint unreachable")).
		Run(func(args mock.Arguments) {
			swaps <- args.Get(1).(domain.SwapReceipt)
		})

	svc := env.newService(t, publisher, pool.Options{})
	env.fund(t, alice, 1000, 1000)
	env.fund(t, bob, 100, 0)

	deposit, err := svc.ProvideLiquidity(as(alice), 1000, 1000)
	require.NoError(t, err)

	select {
	case published := <-deposits:
		require.Equal(t, *deposit, published)
	case <-time.After(time.Second):
		t.Fatal("deposit event not published")
	}

	// a failure while publishing doesn't affect the swap.
	swap, err := svc.Swap(as(bob), token0, 100)
	require.NoError(t, err)

	select {
	case published := <-swaps:
		require.Equal(t, *swap, published)
	case <-time.After(time.Second):
		t.Fatal("swap event not published")
	}

	publisher.AssertCalled(t, "PublishSwapEvent", svc.Pool(), *swap)
}
