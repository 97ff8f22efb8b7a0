package pool

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking/formula"
)

// Service is the engine of a constant-product pool bound to the account of
// the given environment.
type Service struct {
	env    ports.Env
	repo   domain.PoolRepository
	events ports.EventPublisher

	pool     domain.Pool
	token0   ports.TokenService
	token1   ports.TokenService
	lp       ports.TokenService
	strategy *marketmaking.MakingStrategy
	guard    *guard
}

// NewService returns the engine of the pool owned by the env account. If the
// pool already exists it's reloaded from the repository, otherwise a new one
// trading token0 and token1 is created and its LP token is instantiated.
// Invalid assets are rejected with the domain errors of the pool, while any
// failure at binding the tokens or deploying the LP token returns an error
// wrapping ErrLpTokenDeploy. In both cases no pool is stored.
func NewService(
	ctx context.Context,
	env ports.Env,
	deployer ports.TokenDeployer,
	tokens ports.TokenRegistry,
	repo domain.PoolRepository,
	events ports.EventPublisher,
	token0, token1 string,
	opts Options,
) (*Service, error) {
	if env == nil {
		return nil, fmt.Errorf("missing env")
	}
	if deployer == nil {
		return nil, fmt.Errorf("missing token deployer")
	}
	if tokens == nil {
		return nil, fmt.Errorf("missing token registry")
	}
	if repo == nil {
		return nil, fmt.Errorf("missing pool repository")
	}
	if !opts.reserveSource().IsValid() {
		return nil, domain.ErrPoolInvalidReserveSource
	}

	var (
		pool    *domain.Pool
		handles []ports.TokenService
	)
	stored, err := repo.GetPool(ctx, env.AccountID())
	if err != nil {
		if !errors.Is(err, domain.ErrPoolNotFound) {
			return nil, err
		}
		pool, handles, err = createPool(
			ctx, env, deployer, tokens, repo, token0, token1, opts,
		)
		if err != nil {
			return nil, err
		}
	} else {
		pool, err = reloadPool(ctx, repo, stored, token0, token1, opts)
		if err != nil {
			return nil, err
		}
		handles, err = bindTokens(
			ctx, tokens, pool.Account, pool.Token0, pool.Token1, pool.LpToken,
		)
		if err != nil {
			return nil, err
		}
	}

	strategy := marketmaking.NewStrategyFromFormula(
		"constant-product",
		"the product of the reserves is kept constant across every trade",
		formula.ConstantProduct{Rounding: opts.Rounding},
	)

	log.Infof(
		"pool %s ready for %s/%s (lp: %s, reserves: %s, rounding: %s)",
		pool.Account, pool.Token0, pool.Token1, pool.LpToken,
		pool.ReserveSource, opts.Rounding,
	)

	return &Service{
		env:      env,
		repo:     repo,
		events:   events,
		pool:     *pool,
		token0:   handles[0],
		token1:   handles[1],
		lp:       handles[2],
		strategy: strategy,
		guard:    &guard{},
	}, nil
}

// Pool returns the info about the pool.
func (s *Service) Pool() domain.Pool {
	return s.pool
}

// Strategy returns the market making strategy of the pool.
func (s *Service) Strategy() *marketmaking.MakingStrategy {
	return s.strategy
}

// createPool binds the traded tokens, instantiates the LP token and persists
// the new pool. Nothing is deployed nor stored if the tokens can't be bound.
func createPool(
	ctx context.Context,
	env ports.Env,
	deployer ports.TokenDeployer,
	tokens ports.TokenRegistry,
	repo domain.PoolRepository,
	token0, token1 string,
	opts Options,
) (*domain.Pool, []ports.TokenService, error) {
	pool, err := domain.NewPool(
		env.AccountID(), token0, token1, opts.reserveSource(),
	)
	if err != nil {
		return nil, nil, err
	}

	handles, err := bindTokens(ctx, tokens, pool.Account, pool.Token0, pool.Token1)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrLpTokenDeploy, err)
	}

	lp, err := deployLpToken(ctx, env, deployer, repo, pool, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrLpTokenDeploy, err)
	}

	return pool, append(handles, lp), nil
}

func deployLpToken(
	ctx context.Context,
	env ports.Env,
	deployer ports.TokenDeployer,
	repo domain.PoolRepository,
	pool *domain.Pool,
	opts Options,
) (ports.TokenService, error) {
	balance, err := env.Balance(ctx)
	if err != nil {
		return nil, err
	}

	lp, err := deployer.Instantiate(ctx, ports.TokenDeployment{
		Deployer:      pool.Account,
		Name:          domain.LpTokenName,
		Symbol:        domain.LpTokenSymbol,
		InitialSupply: 0,
		Owner:         pool.Account,
		Endowment:     balance / domain.EndowmentDivisor,
		CodeHash:      opts.LpCodeHash,
		Salt:          pool.Salt(),
	})
	if err != nil {
		return nil, err
	}

	if err := pool.SetLpToken(lp.Address()); err != nil {
		return nil, err
	}
	if err := repo.AddPool(ctx, pool); err != nil {
		return nil, err
	}

	log.Infof(
		"created pool %s with LP token %s (endowment: %d)",
		pool.Account, pool.LpToken, balance/domain.EndowmentDivisor,
	)
	return lp, nil
}

// bindTokens returns the handles of the given tokens bound to the holder.
func bindTokens(
	ctx context.Context, tokens ports.TokenRegistry, holder string,
	addresses ...string,
) ([]ports.TokenService, error) {
	handles := make([]ports.TokenService, 0, len(addresses)+1)
	for _, address := range addresses {
		token, err := tokens.Token(ctx, address, holder)
		if err != nil {
			return nil, fmt.Errorf("failed to bind token %s: %w", address, err)
		}
		handles = append(handles, token)
	}
	return handles, nil
}

func reloadPool(
	ctx context.Context,
	repo domain.PoolRepository,
	pool *domain.Pool,
	token0, token1 string,
	opts Options,
) (*domain.Pool, error) {
	if len(token0) > 0 || len(token1) > 0 {
		if !pool.IsTracked(token0) || !pool.IsTracked(token1) || token0 == token1 {
			return nil, fmt.Errorf(
				"%w: account %s already trades %s/%s",
				domain.ErrPoolAlreadyExists, pool.Account, pool.Token0, pool.Token1,
			)
		}
	}

	if source := opts.reserveSource(); source != pool.ReserveSource {
		if err := repo.UpdatePool(
			ctx, pool.Account, func(p *domain.Pool) (*domain.Pool, error) {
				p.ReserveSource = source
				return p, nil
			},
		); err != nil {
			return nil, err
		}
		log.Infof(
			"pool %s: switched reserve source from %s to %s",
			pool.Account, pool.ReserveSource, source,
		)
		pool.ReserveSource = source
	}

	log.Debugf("reloaded pool %s", pool.Account)
	return pool, nil
}
