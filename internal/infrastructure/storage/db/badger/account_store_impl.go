package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/timshannon/badgerhold/v4"
)

type accountStoreImpl struct {
	store *badgerhold.Store
}

// NewAccountStoreImpl initialize a badger implementation of the
// hostenv.AccountStore
func NewAccountStoreImpl(store *badgerhold.Store) hostenv.AccountStore {
	return accountStoreImpl{store}
}

func (s accountStoreImpl) AddAccount(
	_ context.Context, account *hostenv.Account,
) error {
	if err := s.store.Insert(account.ID, *account); err != nil {
		if err == badgerhold.ErrKeyExists {
			return hostenv.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (s accountStoreImpl) GetAccount(
	_ context.Context, id string,
) (*hostenv.Account, error) {
	var account hostenv.Account
	if err := s.store.Get(id, &account); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, hostenv.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s accountStoreImpl) GetAllAccounts(
	_ context.Context,
) ([]hostenv.Account, error) {
	var accounts []hostenv.Account
	if err := s.store.Find(&accounts, nil); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s accountStoreImpl) UpdateAccount(
	_ context.Context,
	id string, updateFn func(a *hostenv.Account) (*hostenv.Account, error),
) error {
	return s.store.Badger().Update(func(tx *badger.Txn) error {
		var account hostenv.Account
		if err := s.store.TxGet(tx, id, &account); err != nil {
			if err == badgerhold.ErrNotFound {
				return hostenv.ErrAccountNotFound
			}
			return err
		}

		updatedAccount, err := updateFn(&account)
		if err != nil {
			return err
		}

		return s.store.TxUpdate(tx, id, *updatedAccount)
	})
}
