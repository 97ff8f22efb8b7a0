package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

var ctx = context.Background()

func TestPoolRepositoryImplementations(t *testing.T) {
	repoManagers := createRepoManagers(t)

	for i := range repoManagers {
		repoManager := repoManagers[i]

		t.Run(repoManager.name, func(t *testing.T) {
			t.Parallel()

			repo := repoManager.PoolRepository()

			t.Run("testAddAndGetPool", func(t *testing.T) {
				testAddAndGetPool(t, repo)
			})

			t.Run("testGetPoolByAssets", func(t *testing.T) {
				testGetPoolByAssets(t, repo)
			})

			t.Run("testUpdatePool", func(t *testing.T) {
				testUpdatePool(t, repo)
			})
		})
	}
}

func testAddAndGetPool(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool()

	p, err := repo.GetPool(ctx, pool.Account)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
	require.Nil(t, p)

	err = repo.AddPool(ctx, pool)
	require.NoError(t, err)

	err = repo.AddPool(ctx, pool)
	require.ErrorIs(t, err, domain.ErrPoolAlreadyExists)

	p, err = repo.GetPool(ctx, pool.Account)
	require.NoError(t, err)
	require.Equal(t, *pool, *p)

	pools, err := repo.GetAllPools(ctx)
	require.NoError(t, err)
	require.Contains(t, pools, *pool)
}

func testGetPoolByAssets(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool()

	err := repo.AddPool(ctx, pool)
	require.NoError(t, err)

	p, err := repo.GetPoolByAssets(ctx, pool.Token0, pool.Token1)
	require.NoError(t, err)
	require.Equal(t, pool.Account, p.Account)

	p, err = repo.GetPoolByAssets(ctx, pool.Token1, pool.Token0)
	require.NoError(t, err)
	require.Equal(t, pool.Account, p.Account)

	p, err = repo.GetPoolByAssets(ctx, pool.Token0, randomAsset())
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
	require.Nil(t, p)

	samePair := *pool
	samePair.Account = randomHex(8)
	err = repo.AddPool(ctx, &samePair)
	require.ErrorIs(t, err, domain.ErrPoolAlreadyExists)
}

func testUpdatePool(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool()
	lpToken := randomAsset()

	err := repo.UpdatePool(
		ctx, pool.Account, func(p *domain.Pool) (*domain.Pool, error) {
			return p, nil
		},
	)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)

	err = repo.AddPool(ctx, pool)
	require.NoError(t, err)

	err = repo.UpdatePool(
		ctx, pool.Account, func(p *domain.Pool) (*domain.Pool, error) {
			if err := p.SetLpToken(lpToken); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("rollback")
		},
	)
	require.EqualError(t, err, "rollback")

	p, err := repo.GetPool(ctx, pool.Account)
	require.NoError(t, err)
	require.Empty(t, p.LpToken)

	err = repo.UpdatePool(
		ctx, pool.Account, func(p *domain.Pool) (*domain.Pool, error) {
			if err := p.SetLpToken(lpToken); err != nil {
				return nil, err
			}
			return p, nil
		},
	)
	require.NoError(t, err)

	p, err = repo.GetPool(ctx, pool.Account)
	require.NoError(t, err)
	require.Equal(t, lpToken, p.LpToken)
}
