package hostenv

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
)

// Runtime is the host environment of the pool: it keeps the native currency
// balances of the accounts, instantiates contracts from the registered code
// templates and serializes the calls made by external accounts.
type Runtime struct {
	accounts AccountStore
	ledger   *erc20.Ledger

	codes    map[string]CodeTemplate
	codeLock *sync.RWMutex
	callLock *sync.Mutex
}

// NewRuntime returns a new runtime with the built-in ERC20 template
// registered.
func NewRuntime(accounts AccountStore, ledger *erc20.Ledger) *Runtime {
	return &Runtime{
		accounts: accounts,
		ledger:   ledger,
		codes: map[string]CodeTemplate{
			ERC20CodeHash: erc20Template(ledger),
		},
		codeLock: &sync.RWMutex{},
		callLock: &sync.Mutex{},
	}
}

// RegisterCode adds a new code template and returns its code hash.
func (r *Runtime) RegisterCode(name string, tmpl CodeTemplate) (string, error) {
	codeHash := CodeHash(name)

	r.codeLock.Lock()
	defer r.codeLock.Unlock()

	if _, ok := r.codes[codeHash]; ok {
		return "", ErrCodeAlreadyRegistered
	}
	r.codes[codeHash] = tmpl
	return codeHash, nil
}

// Call executes fn on behalf of caller. Calls are serialized, only one at a
// time is executed against the runtime. Call must not be invoked from within
// fn.
func (r *Runtime) Call(
	ctx context.Context, caller string, fn func(ctx context.Context) error,
) error {
	if len(caller) <= 0 {
		return ErrMissingCaller
	}

	r.callLock.Lock()
	defer r.callLock.Unlock()

	return fn(WithCaller(ctx, caller))
}

// Env returns the environment bound to the given account.
func (r *Runtime) Env(account string) ports.Env {
	return env{r, account}
}

// Ledger returns the ledger of the tokens deployed with the ERC20 template.
func (r *Runtime) Ledger() *erc20.Ledger {
	return r.ledger
}

// Fund credits amount of native currency to the given account, creating it
// if not existing.
func (r *Runtime) Fund(ctx context.Context, id string, amount uint64) error {
	if len(id) <= 0 {
		return ErrInvalidAccount
	}

	err := r.accounts.UpdateAccount(
		ctx, id, func(a *Account) (*Account, error) {
			if err := a.credit(amount); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
	if errors.Is(err, ErrAccountNotFound) {
		err = r.accounts.AddAccount(ctx, &Account{id, amount})
	}
	if err != nil {
		return err
	}

	log.Debugf("funded account %s with %d", id, amount)
	return nil
}

// Balance returns the native balance of the account. Unknown accounts hold
// nothing.
func (r *Runtime) Balance(ctx context.Context, id string) (uint64, error) {
	account, err := r.accounts.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return account.Balance, nil
}

// TransferNative moves amount of native currency between two accounts.
func (r *Runtime) TransferNative(
	ctx context.Context, from, to string, amount uint64,
) error {
	if err := r.debit(ctx, from, amount); err != nil {
		return err
	}
	if err := r.Fund(ctx, to, amount); err != nil {
		if rerr := r.Fund(ctx, from, amount); rerr != nil {
			log.WithError(rerr).Warnf("failed to refund account %s", from)
		}
		return err
	}
	return nil
}

// Instantiate deploys a new token from the template with the requested code
// hash, funding the new account with the endowment taken from the deployer.
// The returned handle is bound to the deployer.
func (r *Runtime) Instantiate(
	ctx context.Context, d ports.TokenDeployment,
) (ports.TokenService, error) {
	r.codeLock.RLock()
	tmpl, ok := r.codes[d.CodeHash]
	r.codeLock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCode, d.CodeHash)
	}

	address, err := AddressOf(d.Deployer, d.CodeHash, d.Salt)
	if err != nil {
		return nil, err
	}

	if _, err := r.accounts.GetAccount(ctx, address); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountAlreadyExists, address)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	if err := r.debit(ctx, d.Deployer, d.Endowment); err != nil {
		return nil, err
	}

	refund := func() {
		if err := r.Fund(ctx, d.Deployer, d.Endowment); err != nil {
			log.WithError(err).Warnf(
				"failed to refund endowment to account %s", d.Deployer,
			)
		}
	}

	if err := tmpl.Deploy(ctx, address, d); err != nil {
		refund()
		return nil, err
	}
	if err := r.accounts.AddAccount(
		ctx, &Account{address, d.Endowment},
	); err != nil {
		refund()
		return nil, err
	}

	log.Debugf(
		"account %s instantiated code %s at %s with endowment %d",
		d.Deployer, d.CodeHash, address, d.Endowment,
	)

	return r.Token(ctx, address, d.Deployer)
}

// Token returns a handle for the token at the given address bound to holder.
func (r *Runtime) Token(
	ctx context.Context, address, holder string,
) (ports.TokenService, error) {
	token, err := r.ledger.Token(ctx, address, holder)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (r *Runtime) debit(ctx context.Context, id string, amount uint64) error {
	return r.accounts.UpdateAccount(
		ctx, id, func(a *Account) (*Account, error) {
			if err := a.debit(amount); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
}

var (
	_ ports.TokenDeployer = (*Runtime)(nil)
	_ ports.TokenRegistry = (*Runtime)(nil)
)
