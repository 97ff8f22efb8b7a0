package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type poolRepositoryImpl struct {
	store *badgerhold.Store
}

// NewPoolRepositoryImpl initialize a badger implementation of the
// domain.PoolRepository
func NewPoolRepositoryImpl(store *badgerhold.Store) domain.PoolRepository {
	return poolRepositoryImpl{store}
}

func (r poolRepositoryImpl) AddPool(
	ctx context.Context, pool *domain.Pool,
) error {
	if p, _ := r.GetPoolByAssets(ctx, pool.Token0, pool.Token1); p != nil {
		return domain.ErrPoolAlreadyExists
	}

	if err := r.store.Insert(pool.Account, *pool); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrPoolAlreadyExists
		}
		return err
	}
	return nil
}

func (r poolRepositoryImpl) GetPool(
	_ context.Context, account string,
) (*domain.Pool, error) {
	var pool domain.Pool
	if err := r.store.Get(account, &pool); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}

func (r poolRepositoryImpl) GetPoolByAssets(
	ctx context.Context, token0, token1 string,
) (*domain.Pool, error) {
	query := badgerhold.Where("Token0").Eq(token0).And("Token1").Eq(token1).
		Or(badgerhold.Where("Token0").Eq(token1).And("Token1").Eq(token0))

	pools, err := r.findPools(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(pools) <= 0 {
		return nil, domain.ErrPoolNotFound
	}
	return &pools[0], nil
}

func (r poolRepositoryImpl) GetAllPools(
	ctx context.Context,
) ([]domain.Pool, error) {
	return r.findPools(ctx, nil)
}

func (r poolRepositoryImpl) UpdatePool(
	_ context.Context,
	account string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var pool domain.Pool
		if err := r.store.TxGet(tx, account, &pool); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrPoolNotFound
			}
			return err
		}

		updatedPool, err := updateFn(&pool)
		if err != nil {
			return err
		}

		return r.store.TxUpdate(tx, account, *updatedPool)
	})
}

func (r poolRepositoryImpl) findPools(
	_ context.Context, query *badgerhold.Query,
) ([]domain.Pool, error) {
	var pools []domain.Pool
	if err := r.store.Find(&pools, query); err != nil {
		return nil, err
	}
	return pools, nil
}
