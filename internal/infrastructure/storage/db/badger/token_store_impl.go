package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/timshannon/badgerhold/v4"
)

type tokenStoreImpl struct {
	store *badgerhold.Store
}

// NewTokenStoreImpl initialize a badger implementation of the erc20.Store
func NewTokenStoreImpl(store *badgerhold.Store) erc20.Store {
	return tokenStoreImpl{store}
}

func (s tokenStoreImpl) AddToken(_ context.Context, token *erc20.Token) error {
	if err := s.store.Insert(token.Address, *token); err != nil {
		if err == badgerhold.ErrKeyExists {
			return erc20.ErrTokenAlreadyExists
		}
		return err
	}
	return nil
}

func (s tokenStoreImpl) GetToken(
	_ context.Context, address string,
) (*erc20.Token, error) {
	var token erc20.Token
	if err := s.store.Get(address, &token); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, erc20.ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (s tokenStoreImpl) GetAllTokens(_ context.Context) ([]erc20.Token, error) {
	var tokens []erc20.Token
	if err := s.store.Find(&tokens, nil); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s tokenStoreImpl) UpdateToken(
	_ context.Context,
	address string, updateFn func(t *erc20.Token) (*erc20.Token, error),
) error {
	return s.store.Badger().Update(func(tx *badger.Txn) error {
		var token erc20.Token
		if err := s.store.TxGet(tx, address, &token); err != nil {
			if err == badgerhold.ErrNotFound {
				return erc20.ErrTokenNotFound
			}
			return err
		}

		updatedToken, err := updateFn(&token)
		if err != nil {
			return err
		}

		return s.store.TxUpdate(tx, address, *updatedToken)
	})
}
