package ports

import "context"

// Env is the host runtime environment of the pool account.
type Env interface {
	// AccountID returns the account the environment is bound to.
	AccountID() string
	// Caller returns the account that invoked the current call.
	Caller(ctx context.Context) (string, error)
	// Balance returns the native currency balance of the account.
	Balance(ctx context.Context) (uint64, error)
}
