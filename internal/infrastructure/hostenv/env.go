package hostenv

import (
	"context"

	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

type env struct {
	runtime *Runtime
	account string
}

func (e env) AccountID() string {
	return e.account
}

func (e env) Caller(ctx context.Context) (string, error) {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return "", ErrMissingCaller
	}
	return caller, nil
}

func (e env) Balance(ctx context.Context) (uint64, error) {
	return e.runtime.Balance(ctx, e.account)
}

var _ ports.Env = env{}
