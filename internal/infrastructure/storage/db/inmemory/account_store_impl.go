package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
)

// AccountStoreImpl represents an in memory storage
type AccountStoreImpl struct {
	accounts map[string]hostenv.Account

	lock *sync.RWMutex
}

// NewAccountStoreImpl returns a new empty AccountStoreImpl
func NewAccountStoreImpl() *AccountStoreImpl {
	return &AccountStoreImpl{
		accounts: map[string]hostenv.Account{},
		lock:     &sync.RWMutex{},
	}
}

func (s *AccountStoreImpl) AddAccount(
	_ context.Context, account *hostenv.Account,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.accounts[account.ID]; ok {
		return hostenv.ErrAccountAlreadyExists
	}
	s.accounts[account.ID] = *account
	return nil
}

func (s *AccountStoreImpl) GetAccount(
	_ context.Context, id string,
) (*hostenv.Account, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, hostenv.ErrAccountNotFound
	}
	return &account, nil
}

func (s *AccountStoreImpl) GetAllAccounts(
	_ context.Context,
) ([]hostenv.Account, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	accounts := make([]hostenv.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

func (s *AccountStoreImpl) UpdateAccount(
	_ context.Context,
	id string, updateFn func(a *hostenv.Account) (*hostenv.Account, error),
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return hostenv.ErrAccountNotFound
	}

	updatedAccount, err := updateFn(&account)
	if err != nil {
		return err
	}

	s.accounts[id] = *updatedAccount
	return nil
}
