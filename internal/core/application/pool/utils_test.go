package pool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/inmemory"
)

const (
	poolAccount = "pool"
	faucet      = "faucet"
	alice       = "alice"
	bob         = "bob"

	token0 = "1111111111111111111111111111111111111111"
	token1 = "2222222222222222222222222222222222222222"

	nativeBalance = 1000
)

var ctx = context.Background()

type testEnv struct {
	rt       *hostenv.Runtime
	repo     domain.PoolRepository
	registry ports.TokenRegistry
}

func newTestEnv(t *testing.T, supply uint64) *testEnv {
	repoManager := inmemory.NewRepoManager()
	ledger := erc20.NewLedger(repoManager.TokenStore())
	rt := hostenv.NewRuntime(repoManager.AccountStore(), ledger)

	err := rt.Fund(ctx, poolAccount, nativeBalance)
	require.NoError(t, err)

	_, err = ledger.Deploy(ctx, token0, "Token Zero", "TK0", supply, faucet)
	require.NoError(t, err)
	_, err = ledger.Deploy(ctx, token1, "Token One", "TK1", supply, faucet)
	require.NoError(t, err)

	return &testEnv{rt, repoManager.PoolRepository(), rt}
}

func (e *testEnv) newService(
	t *testing.T, events ports.EventPublisher, opts pool.Options,
) *pool.Service {
	if len(opts.LpCodeHash) <= 0 {
		opts.LpCodeHash = hostenv.ERC20CodeHash
	}
	svc, err := pool.NewService(
		ctx, e.rt.Env(poolAccount), e.rt, e.registry, e.repo, events,
		token0, token1, opts,
	)
	require.NoError(t, err)
	return svc
}

func (e *testEnv) token(t *testing.T, asset, holder string) *erc20.Ref {
	token, err := e.rt.Ledger().Token(ctx, asset, holder)
	require.NoError(t, err)
	return token
}

// fund sends tokens from the faucet to the account and authorizes the pool
// to move them.
func (e *testEnv) fund(t *testing.T, account string, amount0, amount1 uint64) {
	for asset, amount := range map[string]uint64{token0: amount0, token1: amount1} {
		err := e.token(t, asset, faucet).Transfer(ctx, account, amount)
		require.NoError(t, err)
		err = e.token(t, asset, account).Approve(ctx, poolAccount, amount)
		require.NoError(t, err)
	}
}

func (e *testEnv) balanceOf(t *testing.T, asset, account string) uint64 {
	balance, err := e.token(t, asset, account).BalanceOf(ctx, account)
	require.NoError(t, err)
	return balance
}

// newFundedPool returns a pool service whose reserves are reserve0 and
// reserve1, provided by alice.
func (e *testEnv) newFundedPool(
	t *testing.T, reserve0, reserve1 uint64, opts pool.Options,
) *pool.Service {
	svc := e.newService(t, nil, opts)
	e.fund(t, alice, reserve0, reserve1)

	_, err := svc.ProvideLiquidity(as(alice), reserve0, reserve1)
	require.NoError(t, err)
	return svc
}

func as(account string) context.Context {
	return hostenv.WithCaller(ctx, account)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishSwapEvent(
	pool domain.Pool, receipt domain.SwapReceipt,
) error {
	args := m.Called(pool, receipt)
	return args.Error(0)
}

func (m *mockEventPublisher) PublishLiquidityEvent(
	pool domain.Pool, receipt domain.LiquidityReceipt,
) error {
	args := m.Called(pool, receipt)
	return args.Error(0)
}

// hookedRegistry wraps the handles of the given tokens to intercept their
// transfers.
type hookedRegistry struct {
	ports.TokenRegistry
	hooks map[string]*hookedToken
}

func (r hookedRegistry) Token(
	ctx context.Context, address, holder string,
) (ports.TokenService, error) {
	token, err := r.TokenRegistry.Token(ctx, address, holder)
	if err != nil {
		return nil, err
	}
	if hook, ok := r.hooks[address]; ok {
		hook.TokenService = token
		return hook, nil
	}
	return token, nil
}

type hookedToken struct {
	ports.TokenService

	// afterTransferFrom is invoked once the funds have been moved.
	afterTransferFrom func(ctx context.Context)
	// failTransfer and failTransferFrom make the transfers fail without
	// moving any fund.
	failTransfer     error
	failTransferFrom error
}

func (h *hookedToken) TransferFrom(
	ctx context.Context, owner, recipient string, amount uint64,
) error {
	if h.failTransferFrom != nil {
		return h.failTransferFrom
	}
	if err := h.TokenService.TransferFrom(ctx, owner, recipient, amount); err != nil {
		return err
	}
	if h.afterTransferFrom != nil {
		h.afterTransferFrom(ctx)
	}
	return nil
}

func (h *hookedToken) Transfer(
	ctx context.Context, recipient string, amount uint64,
) error {
	if h.failTransfer != nil {
		return h.failTransfer
	}
	return h.TokenService.Transfer(ctx, recipient, amount)
}
