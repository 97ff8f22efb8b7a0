package hostenv

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
)

// ERC20CodeName is the name of the built-in fungible token template.
const ERC20CodeName = "erc20"

// ERC20CodeHash is the code hash of the built-in fungible token template.
var ERC20CodeHash = CodeHash(ERC20CodeName)

// CodeTemplate deploys a new contract instance at the given address.
type CodeTemplate interface {
	Deploy(
		ctx context.Context, address string, deployment ports.TokenDeployment,
	) error
}

// CodeTemplateFunc is an adapter to use ordinary functions as CodeTemplate.
type CodeTemplateFunc func(
	ctx context.Context, address string, deployment ports.TokenDeployment,
) error

func (f CodeTemplateFunc) Deploy(
	ctx context.Context, address string, deployment ports.TokenDeployment,
) error {
	return f(ctx, address, deployment)
}

// CodeHash returns the hex encoded hash160 of the given code name.
func CodeHash(name string) string {
	return hex.EncodeToString(btcutil.Hash160([]byte(name)))
}

// AddressOf returns the address of the instance of the given code deployed by
// deployer with the given salt: hash160(deployer || codeHash || salt).
func AddressOf(deployer, codeHash string, salt []byte) (string, error) {
	if len(deployer) <= 0 {
		return "", ErrInvalidAccount
	}
	code, err := hex.DecodeString(codeHash)
	if err != nil {
		return "", fmt.Errorf("invalid code hash: %w", err)
	}

	preimage := bytes.Join([][]byte{[]byte(deployer), code, salt}, nil)
	return hex.EncodeToString(btcutil.Hash160(preimage)), nil
}

func erc20Template(ledger *erc20.Ledger) CodeTemplate {
	return CodeTemplateFunc(func(
		ctx context.Context, address string, d ports.TokenDeployment,
	) error {
		_, err := ledger.Deploy(
			ctx, address, d.Name, d.Symbol, d.InitialSupply, d.Owner,
		)
		return err
	})
}
