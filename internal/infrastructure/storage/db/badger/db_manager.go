package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
	"github.com/timshannon/badgerhold/v4"
)

const (
	poolDir    = "pool"
	tokenDir   = "token"
	accountDir = "account"
	webhookDir = "webhook"
)

// RepoManager holds all the badgerhold stores in a single data structure.
type RepoManager struct {
	stores []*badgerhold.Store

	poolRepository    domain.PoolRepository
	tokenStore        erc20.Store
	accountStore      hostenv.AccountStore
	subscriptionStore pubsub.SubscriptionStore
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. A dedicated directory is
// created for pools, tokens, accounts and webhooks. If the base dir is empty,
// the stores are kept in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (*RepoManager, error) {
	dirs := []string{poolDir, tokenDir, accountDir, webhookDir}
	stores := make([]*badgerhold.Store, 0, len(dirs))
	for _, dir := range dirs {
		var dbDir string
		if len(baseDbDir) > 0 {
			dbDir = filepath.Join(baseDbDir, dir)
		}

		store, err := createDb(dbDir, logger)
		if err != nil {
			for _, s := range stores {
				s.Close()
			}
			return nil, fmt.Errorf("opening %s db: %w", dir, err)
		}
		stores = append(stores, store)
	}

	return &RepoManager{
		stores:            stores,
		poolRepository:    NewPoolRepositoryImpl(stores[0]),
		tokenStore:        NewTokenStoreImpl(stores[1]),
		accountStore:      NewAccountStoreImpl(stores[2]),
		subscriptionStore: NewSubscriptionStoreImpl(stores[3]),
	}, nil
}

func (d *RepoManager) PoolRepository() domain.PoolRepository {
	return d.poolRepository
}

func (d *RepoManager) TokenStore() erc20.Store {
	return d.tokenStore
}

func (d *RepoManager) AccountStore() hostenv.AccountStore {
	return d.accountStore
}

func (d *RepoManager) SubscriptionStore() pubsub.SubscriptionStore {
	return d.subscriptionStore
}

func (d *RepoManager) Close() {
	for _, store := range d.stores {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("failed to close db")
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
