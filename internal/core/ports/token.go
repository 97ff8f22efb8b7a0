package ports

import "context"

// TokenService is a handle to a fungible token contract. Every handle is
// bound to the holder account it acts on behalf of: Transfer moves funds
// from the holder, TransferFrom spends the allowance granted to the holder.
type TokenService interface {
	// Address returns the identity of the token.
	Address() string
	// Holder returns the account the handle acts on behalf of.
	Holder() string
	// TotalSupply returns the circulating supply of the token.
	TotalSupply(ctx context.Context) (uint64, error)
	// BalanceOf returns the balance of the given account.
	BalanceOf(ctx context.Context, account string) (uint64, error)
	// Allowance returns the amount spender is allowed to move from owner.
	Allowance(ctx context.Context, owner, spender string) (uint64, error)
	// Transfer moves amount from the holder to recipient.
	Transfer(ctx context.Context, recipient string, amount uint64) error
	// TransferFrom moves amount from owner to recipient by using the
	// allowance granted by owner to the holder.
	TransferFrom(
		ctx context.Context, owner, recipient string, amount uint64,
	) error
}

// TokenDeployment contains the arguments for instantiating a new token.
type TokenDeployment struct {
	// Deployer is the account instantiating (and funding) the token.
	Deployer      string
	Name          string
	Symbol        string
	InitialSupply uint64
	Owner         string
	// Endowment is the amount of native currency moved from the deployer to
	// the new token account.
	Endowment uint64
	// CodeHash identifies the code template of the token.
	CodeHash string
	// Salt disambiguates instances deployed with the same code.
	Salt []byte
}

// TokenDeployer defines the methods to instantiate new tokens.
type TokenDeployer interface {
	// Instantiate deploys a new token and returns a handle for it, bound to
	// the deployer.
	Instantiate(
		ctx context.Context, deployment TokenDeployment,
	) (TokenService, error)
}

// TokenRegistry returns handles for already existing tokens.
type TokenRegistry interface {
	// Token returns a handle for the token with the given address bound to
	// the given holder.
	Token(ctx context.Context, address, holder string) (TokenService, error)
}
