package erc20_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

const (
	tokenAddress = "cccccccccccccccccccccccccccccccccccccccc"
	owner        = "owner"
	alice        = "alice"
	bob          = "bob"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	token, err := erc20.NewToken(tokenAddress, "Pool Token", "LP", owner, 0)
	require.NoError(t, err)
	require.Zero(t, token.TotalSupply)
	require.Zero(t, token.BalanceOf(owner))

	token, err = erc20.NewToken(tokenAddress, "Test", "TST", owner, 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), token.TotalSupply)
	require.Equal(t, uint64(1000), token.BalanceOf(owner))

	tests := []struct {
		name          string
		address       string
		tokenName     string
		symbol        string
		owner         string
		expectedError error
	}{
		{"missing_address", "", "Test", "TST", owner, erc20.ErrZeroAddress},
		{"missing_owner", tokenAddress, "Test", "TST", "", erc20.ErrZeroAddress},
		{"missing_name", tokenAddress, "", "TST", owner, erc20.ErrMissingName},
		{"missing_symbol", tokenAddress, "Test", "", owner, erc20.ErrMissingName},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := erc20.NewToken(tt.address, tt.tokenName, tt.symbol, tt.owner, 0)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, token)
		})
	}
}

func TestTokenTransfer(t *testing.T) {
	t.Parallel()

	token, err := erc20.NewToken(tokenAddress, "Test", "TST", owner, 1000)
	require.NoError(t, err)

	err = token.Transfer(owner, alice, 300)
	require.NoError(t, err)
	require.Equal(t, uint64(700), token.BalanceOf(owner))
	require.Equal(t, uint64(300), token.BalanceOf(alice))

	err = token.Transfer(alice, bob, 301)
	require.ErrorIs(t, err, erc20.ErrInsufficientBalance)
	require.Equal(t, uint64(300), token.BalanceOf(alice))
	require.Zero(t, token.BalanceOf(bob))

	err = token.Transfer(alice, alice, 300)
	require.NoError(t, err)
	require.Equal(t, uint64(300), token.BalanceOf(alice))

	err = token.Transfer(alice, "", 1)
	require.ErrorIs(t, err, erc20.ErrZeroAddress)

	require.Equal(t, uint64(1000), token.TotalSupply)
}

func TestTokenTransferFrom(t *testing.T) {
	t.Parallel()

	token, err := erc20.NewToken(tokenAddress, "Test", "TST", owner, 1000)
	require.NoError(t, err)

	err = token.TransferFrom(alice, owner, bob, 1)
	require.ErrorIs(t, err, erc20.ErrInsufficientAllowance)

	err = token.Approve(owner, alice, 500)
	require.NoError(t, err)
	require.Equal(t, uint64(500), token.Allowance(owner, alice))
	require.Zero(t, token.Allowance(alice, owner))

	err = token.TransferFrom(alice, owner, bob, 200)
	require.NoError(t, err)
	require.Equal(t, uint64(300), token.Allowance(owner, alice))
	require.Equal(t, uint64(800), token.BalanceOf(owner))
	require.Equal(t, uint64(200), token.BalanceOf(bob))

	err = token.TransferFrom(alice, owner, bob, 301)
	require.ErrorIs(t, err, erc20.ErrInsufficientAllowance)

	err = token.Approve(bob, alice, 1000)
	require.NoError(t, err)
	err = token.TransferFrom(alice, bob, alice, 201)
	require.ErrorIs(t, err, erc20.ErrInsufficientBalance)
	require.Equal(t, uint64(1000), token.Allowance(bob, alice))

	err = token.Approve(owner, alice, 0)
	require.NoError(t, err)
	require.Zero(t, token.Allowance(owner, alice))
}

func TestTokenMint(t *testing.T) {
	t.Parallel()

	token, err := erc20.NewToken(tokenAddress, "Pool Token", "LP", owner, 0)
	require.NoError(t, err)

	err = token.Mint(alice, alice, 10)
	require.ErrorIs(t, err, erc20.ErrNotOwner)

	err = token.Mint(owner, alice, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(10), token.TotalSupply)
	require.Equal(t, uint64(10), token.BalanceOf(alice))

	err = token.Mint(owner, bob, math.MaxUint64)
	require.ErrorIs(t, err, mathutil.ErrOverflow)
	require.Equal(t, uint64(10), token.TotalSupply)
	require.Zero(t, token.BalanceOf(bob))
}
