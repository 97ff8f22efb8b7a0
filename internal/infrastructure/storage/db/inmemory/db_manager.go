package inmemory

import (
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
)

type RepoManager struct {
	poolRepository    domain.PoolRepository
	tokenStore        erc20.Store
	accountStore      hostenv.AccountStore
	subscriptionStore pubsub.SubscriptionStore
}

func NewRepoManager() *RepoManager {
	return &RepoManager{
		poolRepository:    NewPoolRepositoryImpl(),
		tokenStore:        NewTokenStoreImpl(),
		accountStore:      NewAccountStoreImpl(),
		subscriptionStore: NewSubscriptionStoreImpl(),
	}
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

func (d *RepoManager) Close() {}
