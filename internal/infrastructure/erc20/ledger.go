package erc20

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Ledger executes the operations of the tokens persisted in the given store.
type Ledger struct {
	store Store
	lock  *sync.Mutex
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store, &sync.Mutex{}}
}

// Deploy creates a new token at the given address.
func (l *Ledger) Deploy(
	ctx context.Context,
	address, name, symbol string, initialSupply uint64, owner string,
) (*Token, error) {
	token, err := NewToken(address, name, symbol, owner, initialSupply)
	if err != nil {
		return nil, err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.store.AddToken(ctx, token); err != nil {
		return nil, err
	}

	log.Debugf(
		"deployed token %s (%s) at %s with supply %d owned by %s",
		name, symbol, address, initialSupply, owner,
	)
	return token, nil
}

// Token returns a handle for the token at the given address acting on
// behalf of holder.
func (l *Ledger) Token(
	ctx context.Context, address, holder string,
) (*Ref, error) {
	if len(address) <= 0 || len(holder) <= 0 {
		return nil, ErrZeroAddress
	}
	if _, err := l.store.GetToken(ctx, address); err != nil {
		return nil, err
	}
	return &Ref{l, address, holder}, nil
}

// Get returns the current state of the token at the given address.
func (l *Ledger) Get(ctx context.Context, address string) (*Token, error) {
	return l.get(ctx, address)
}

// Tokens returns the state of all tokens.
func (l *Ledger) Tokens(ctx context.Context) ([]Token, error) {
	return l.store.GetAllTokens(ctx)
}

func (l *Ledger) get(ctx context.Context, address string) (*Token, error) {
	return l.store.GetToken(ctx, address)
}

func (l *Ledger) update(
	ctx context.Context, address string, updateFn func(t *Token) error,
) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.store.UpdateToken(
		ctx, address, func(t *Token) (*Token, error) {
			if err := updateFn(t); err != nil {
				return nil, err
			}
			return t, nil
		},
	)
}
