package domain

import "context"

// PoolRepository is the abstraction for any kind of database intended to
// persist Pools.
type PoolRepository interface {
	// AddPool adds a new pool to the repository.
	AddPool(ctx context.Context, pool *Pool) error
	// GetPool returns the pool owned by the given account.
	GetPool(ctx context.Context, account string) (*Pool, error)
	// GetPoolByAssets returns the pool for the given pair of assets, in any
	// order.
	GetPoolByAssets(ctx context.Context, token0, token1 string) (*Pool, error)
	// GetAllPools returns all pools.
	GetAllPools(ctx context.Context) ([]Pool, error)
	// UpdatePool updates the state of a pool. The closure function let's to
	// commit multiple changes to a certain pool in a transactional way.
	UpdatePool(
		ctx context.Context,
		account string, updateFn func(p *Pool) (*Pool, error),
	) error
}
