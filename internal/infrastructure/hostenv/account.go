package hostenv

import (
	"context"
	"fmt"

	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

// Account holds the native currency balance of an account of the runtime.
type Account struct {
	ID      string
	Balance uint64
}

func (a *Account) credit(amount uint64) error {
	balance, err := mathutil.Add(a.Balance, amount)
	if err != nil {
		return fmt.Errorf("failed to credit account %s: %w", a.ID, err)
	}
	a.Balance = balance
	return nil
}

func (a *Account) debit(amount uint64) error {
	if a.Balance < amount {
		return fmt.Errorf(
			"%w: account %s holds %d, needs %d",
			ErrInsufficientFunds, a.ID, a.Balance, amount,
		)
	}
	a.Balance -= amount
	return nil
}

// AccountStore is the abstraction for any kind of database intended to
// persist the native accounts of the runtime.
type AccountStore interface {
	// AddAccount adds a new account or returns ErrAccountAlreadyExists.
	AddAccount(ctx context.Context, account *Account) error
	// GetAccount returns the account with the given id or ErrAccountNotFound.
	GetAccount(ctx context.Context, id string) (*Account, error)
	// GetAllAccounts returns all accounts.
	GetAllAccounts(ctx context.Context) ([]Account, error)
	// UpdateAccount updates the state of an account. Changes are discarded if
	// the closure returns an error.
	UpdateAccount(
		ctx context.Context,
		id string, updateFn func(a *Account) (*Account, error),
	) error
}
