package db_test

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db"
)

type repoManager struct {
	name string
	db.RepoManager
}

func createRepoManagers(t *testing.T) []repoManager {
	badgerRepoManager, err := db.NewRepoManager(db.DbTypeBadger, "", nil)
	require.NoError(t, err)
	inmemoryRepoManager, err := db.NewRepoManager(db.DbTypeInMemory, "", nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		badgerRepoManager.Close()
		inmemoryRepoManager.Close()
	})

	return []repoManager{
		{"badger", badgerRepoManager},
		{"inmemory", inmemoryRepoManager},
	}
}

func makeRandomPool() *domain.Pool {
	pool, _ := domain.NewPool(
		randomHex(8), randomAsset(), randomAsset(), domain.ReserveSourceBalance,
	)
	return pool
}

func randomAsset() string {
	return randomHex(domain.AssetLength)
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
