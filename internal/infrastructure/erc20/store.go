package erc20

import "context"

// Store is the abstraction for any kind of database intended to persist the
// state of the tokens.
type Store interface {
	// AddToken adds a new token. Returns ErrTokenAlreadyExists if a token
	// with the same address exists.
	AddToken(ctx context.Context, token *Token) error
	// GetToken returns the token with the given address or ErrTokenNotFound.
	GetToken(ctx context.Context, address string) (*Token, error)
	// GetAllTokens returns all tokens.
	GetAllTokens(ctx context.Context) ([]Token, error)
	// UpdateToken updates the state of a token. Changes are discarded if the
	// closure returns an error.
	UpdateToken(
		ctx context.Context,
		address string, updateFn func(t *Token) (*Token, error),
	) error
}
