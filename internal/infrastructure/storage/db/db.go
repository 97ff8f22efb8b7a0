package db

import (
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
	dbbadger "github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/inmemory"
)

const (
	DbTypeBadger   = "badger"
	DbTypeInMemory = "inmemory"
)

// RepoManager gives access to the repositories of the domain entities and to
// the stores of the runtime, the tokens and the webhooks.
type RepoManager interface {
	ports.RepoManager

	TokenStore() erc20.Store
	AccountStore() hostenv.AccountStore
	SubscriptionStore() pubsub.SubscriptionStore
}

// IsValidDbType returns whether the given db type is supported.
func IsValidDbType(dbType string) bool {
	return dbType == DbTypeBadger || dbType == DbTypeInMemory
}

// NewRepoManager returns the repo manager for the given db type. The datadir
// is ignored for the inmemory type.
func NewRepoManager(
	dbType, datadir string, logger badger.Logger,
) (RepoManager, error) {
	switch dbType {
	case DbTypeBadger:
		repoManager, err := dbbadger.NewRepoManager(datadir, logger)
		if err != nil {
			return nil, err
		}
		return repoManager, nil
	case DbTypeInMemory:
		return inmemory.NewRepoManager(), nil
	default:
		return nil, fmt.Errorf("unknown db type %q", dbType)
	}
}
