package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

// PoolRepositoryImpl represents an in memory storage
type PoolRepositoryImpl struct {
	pools map[string]domain.Pool

	lock *sync.RWMutex
}

// NewPoolRepositoryImpl returns a new empty PoolRepositoryImpl
func NewPoolRepositoryImpl() *PoolRepositoryImpl {
	return &PoolRepositoryImpl{
		pools: map[string]domain.Pool{},
		lock:  &sync.RWMutex{},
	}
}

func (r *PoolRepositoryImpl) AddPool(
	_ context.Context, pool *domain.Pool,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.pools[pool.Account]; ok {
		return domain.ErrPoolAlreadyExists
	}
	if _, err := r.getPoolByAssets(pool.Token0, pool.Token1); err == nil {
		return domain.ErrPoolAlreadyExists
	}

	r.pools[pool.Account] = *pool
	return nil
}

func (r *PoolRepositoryImpl) GetPool(
	_ context.Context, account string,
) (*domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pool, ok := r.pools[account]
	if !ok {
		return nil, domain.ErrPoolNotFound
	}
	return &pool, nil
}

// GetPoolByAssets returns the pool trading the given pair of assets, in any
// order.
func (r *PoolRepositoryImpl) GetPoolByAssets(
	_ context.Context, token0, token1 string,
) (*domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getPoolByAssets(token0, token1)
}

func (r *PoolRepositoryImpl) GetAllPools(
	_ context.Context,
) ([]domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pools := make([]domain.Pool, 0, len(r.pools))
	for _, pool := range r.pools {
		pools = append(pools, pool)
	}
	sort.SliceStable(pools, func(i, j int) bool {
		return pools[i].Account < pools[j].Account
	})
	return pools, nil
}

func (r *PoolRepositoryImpl) UpdatePool(
	_ context.Context,
	account string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	pool, ok := r.pools[account]
	if !ok {
		return domain.ErrPoolNotFound
	}

	updatedPool, err := updateFn(&pool)
	if err != nil {
		return err
	}

	r.pools[account] = *updatedPool
	return nil
}

func (r *PoolRepositoryImpl) getPoolByAssets(
	token0, token1 string,
) (*domain.Pool, error) {
	for _, pool := range r.pools {
		if (pool.Token0 == token0 && pool.Token1 == token1) ||
			(pool.Token0 == token1 && pool.Token1 == token0) {
			return &pool, nil
		}
	}
	return nil, domain.ErrPoolNotFound
}
