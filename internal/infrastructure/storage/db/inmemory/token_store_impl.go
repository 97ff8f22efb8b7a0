package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
)

// TokenStoreImpl represents an in memory storage
type TokenStoreImpl struct {
	tokens map[string]erc20.Token

	lock *sync.RWMutex
}

// NewTokenStoreImpl returns a new empty TokenStoreImpl
func NewTokenStoreImpl() *TokenStoreImpl {
	return &TokenStoreImpl{
		tokens: map[string]erc20.Token{},
		lock:   &sync.RWMutex{},
	}
}

func (s *TokenStoreImpl) AddToken(_ context.Context, token *erc20.Token) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.tokens[token.Address]; ok {
		return erc20.ErrTokenAlreadyExists
	}
	s.tokens[token.Address] = copyToken(*token)
	return nil
}

func (s *TokenStoreImpl) GetToken(
	_ context.Context, address string,
) (*erc20.Token, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	token, ok := s.tokens[address]
	if !ok {
		return nil, erc20.ErrTokenNotFound
	}
	t := copyToken(token)
	return &t, nil
}

func (s *TokenStoreImpl) GetAllTokens(_ context.Context) ([]erc20.Token, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	tokens := make([]erc20.Token, 0, len(s.tokens))
	for _, token := range s.tokens {
		tokens = append(tokens, copyToken(token))
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Address < tokens[j].Address
	})
	return tokens, nil
}

func (s *TokenStoreImpl) UpdateToken(
	_ context.Context,
	address string, updateFn func(t *erc20.Token) (*erc20.Token, error),
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	token, ok := s.tokens[address]
	if !ok {
		return erc20.ErrTokenNotFound
	}

	t := copyToken(token)
	updatedToken, err := updateFn(&t)
	if err != nil {
		return err
	}

	s.tokens[address] = copyToken(*updatedToken)
	return nil
}

// copyToken returns a deep copy of the token so that callers never share the
// stored balances.
func copyToken(t erc20.Token) erc20.Token {
	balances := make(map[string]uint64, len(t.Balances))
	for k, v := range t.Balances {
		balances[k] = v
	}
	allowances := make(map[string]uint64, len(t.Allowances))
	for k, v := range t.Allowances {
		allowances[k] = v
	}
	t.Balances = balances
	t.Allowances = allowances
	return t
}
