package erc20

import (
	"fmt"

	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

// Token is the state of a fungible token contract: its metadata, the balance
// of every account and the allowances granted between accounts.
type Token struct {
	Address     string
	Name        string
	Symbol      string
	Owner       string
	TotalSupply uint64
	Balances    map[string]uint64
	// Allowances are keyed by owner and spender, see allowanceKey.
	Allowances map[string]uint64
}

// NewToken returns a new token whose initial supply, if any, is assigned to
// the owner.
func NewToken(
	address, name, symbol, owner string, initialSupply uint64,
) (*Token, error) {
	if len(address) <= 0 || len(owner) <= 0 {
		return nil, ErrZeroAddress
	}
	if len(name) <= 0 || len(symbol) <= 0 {
		return nil, ErrMissingName
	}

	t := &Token{
		Address:    address,
		Name:       name,
		Symbol:     symbol,
		Owner:      owner,
		Balances:   map[string]uint64{},
		Allowances: map[string]uint64{},
	}
	if initialSupply > 0 {
		t.TotalSupply = initialSupply
		t.Balances[owner] = initialSupply
	}
	return t, nil
}

func (t *Token) BalanceOf(account string) uint64 {
	return t.Balances[account]
}

func (t *Token) Allowance(owner, spender string) uint64 {
	return t.Allowances[allowanceKey(owner, spender)]
}

// Mint creates amount new units assigned to the given account. Only the owner
// of the token is allowed to mint.
func (t *Token) Mint(caller, to string, amount uint64) error {
	if caller != t.Owner {
		return ErrNotOwner
	}
	if len(to) <= 0 {
		return ErrZeroAddress
	}

	totalSupply, err := mathutil.Add(t.TotalSupply, amount)
	if err != nil {
		return fmt.Errorf("failed to mint %d %s: %w", amount, t.Symbol, err)
	}

	t.init()
	t.TotalSupply = totalSupply
	t.Balances[to] += amount
	return nil
}

// Approve sets the amount spender is allowed to move from owner's balance.
func (t *Token) Approve(owner, spender string, amount uint64) error {
	if len(owner) <= 0 || len(spender) <= 0 {
		return ErrZeroAddress
	}

	t.init()
	key := allowanceKey(owner, spender)
	if amount == 0 {
		delete(t.Allowances, key)
		return nil
	}
	t.Allowances[key] = amount
	return nil
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to string, amount uint64) error {
	if len(from) <= 0 || len(to) <= 0 {
		return ErrZeroAddress
	}
	if t.Balances[from] < amount {
		return fmt.Errorf(
			"%w: %s holds %d %s, needs %d",
			ErrInsufficientBalance, from, t.Balances[from], t.Symbol, amount,
		)
	}
	if amount == 0 {
		return nil
	}

	t.init()
	t.Balances[from] -= amount
	if t.Balances[from] == 0 {
		delete(t.Balances, from)
	}
	t.Balances[to] += amount
	return nil
}

// TransferFrom moves amount from owner to the recipient by spending the
// allowance owner granted to spender.
func (t *Token) TransferFrom(spender, owner, to string, amount uint64) error {
	allowance := t.Allowance(owner, spender)
	if allowance < amount {
		return fmt.Errorf(
			"%w: %s is allowed to move %d %s of %s, needs %d",
			ErrInsufficientAllowance, spender, allowance, t.Symbol, owner, amount,
		)
	}
	if err := t.Transfer(owner, to, amount); err != nil {
		return err
	}
	return t.Approve(owner, spender, allowance-amount)
}

func (t *Token) init() {
	if t.Balances == nil {
		t.Balances = map[string]uint64{}
	}
	if t.Allowances == nil {
		t.Allowances = map[string]uint64{}
	}
}

func allowanceKey(owner, spender string) string {
	return fmt.Sprintf("%s/%s", owner, spender)
}
