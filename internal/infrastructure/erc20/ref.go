package erc20

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

// Ref is a handle to a token bound to the holder account. Every mutating
// operation is executed on behalf of the holder.
type Ref struct {
	ledger  *Ledger
	address string
	holder  string
}

var _ ports.TokenService = (*Ref)(nil)

func (r *Ref) Address() string {
	return r.address
}

func (r *Ref) Holder() string {
	return r.holder
}

// Info returns a copy of the current state of the token.
func (r *Ref) Info(ctx context.Context) (*Token, error) {
	return r.ledger.get(ctx, r.address)
}

func (r *Ref) TotalSupply(ctx context.Context) (uint64, error) {
	t, err := r.ledger.get(ctx, r.address)
	if err != nil {
		return 0, err
	}
	return t.TotalSupply, nil
}

func (r *Ref) BalanceOf(ctx context.Context, account string) (uint64, error) {
	t, err := r.ledger.get(ctx, r.address)
	if err != nil {
		return 0, err
	}
	return t.BalanceOf(account), nil
}

func (r *Ref) Allowance(
	ctx context.Context, owner, spender string,
) (uint64, error) {
	t, err := r.ledger.get(ctx, r.address)
	if err != nil {
		return 0, err
	}
	return t.Allowance(owner, spender), nil
}

func (r *Ref) Transfer(
	ctx context.Context, recipient string, amount uint64,
) error {
	if err := r.ledger.update(ctx, r.address, func(t *Token) error {
		return t.Transfer(r.holder, recipient, amount)
	}); err != nil {
		return err
	}

	log.Debugf(
		"token %s: transferred %d from %s to %s",
		r.address, amount, r.holder, recipient,
	)
	return nil
}

func (r *Ref) TransferFrom(
	ctx context.Context, owner, recipient string, amount uint64,
) error {
	if err := r.ledger.update(ctx, r.address, func(t *Token) error {
		return t.TransferFrom(r.holder, owner, recipient, amount)
	}); err != nil {
		return err
	}

	log.Debugf(
		"token %s: %s transferred %d from %s to %s",
		r.address, r.holder, amount, owner, recipient,
	)
	return nil
}

// Approve allows spender to move up to amount units from the holder's
// balance. It overwrites any previous allowance.
func (r *Ref) Approve(
	ctx context.Context, spender string, amount uint64,
) error {
	return r.ledger.update(ctx, r.address, func(t *Token) error {
		return t.Approve(r.holder, spender, amount)
	})
}

// Mint creates amount new units for the recipient. The holder must be the
// owner of the token.
func (r *Ref) Mint(
	ctx context.Context, recipient string, amount uint64,
) error {
	if err := r.ledger.update(ctx, r.address, func(t *Token) error {
		return t.Mint(r.holder, recipient, amount)
	}); err != nil {
		return err
	}

	log.Debugf("token %s: minted %d to %s", r.address, amount, recipient)
	return nil
}
