package erc20_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db/inmemory"
)

var ctx = context.Background()

func TestLedger(t *testing.T) {
	t.Parallel()

	ledger := erc20.NewLedger(inmemory.NewTokenStoreImpl())

	_, err := ledger.Token(ctx, tokenAddress, owner)
	require.ErrorIs(t, err, erc20.ErrTokenNotFound)

	token, err := ledger.Deploy(ctx, tokenAddress, "Test", "TST", 1000, owner)
	require.NoError(t, err)
	require.Equal(t, tokenAddress, token.Address)

	_, err = ledger.Deploy(ctx, tokenAddress, "Test", "TST", 1000, owner)
	require.ErrorIs(t, err, erc20.ErrTokenAlreadyExists)

	ownerRef, err := ledger.Token(ctx, tokenAddress, owner)
	require.NoError(t, err)
	require.Equal(t, tokenAddress, ownerRef.Address())
	require.Equal(t, owner, ownerRef.Holder())

	aliceRef, err := ledger.Token(ctx, tokenAddress, alice)
	require.NoError(t, err)

	err = ownerRef.Transfer(ctx, alice, 400)
	require.NoError(t, err)

	err = aliceRef.Approve(ctx, bob, 150)
	require.NoError(t, err)

	allowance, err := ownerRef.Allowance(ctx, alice, bob)
	require.NoError(t, err)
	require.Equal(t, uint64(150), allowance)

	bobRef, err := ledger.Token(ctx, tokenAddress, bob)
	require.NoError(t, err)

	err = bobRef.TransferFrom(ctx, alice, bob, 200)
	require.ErrorIs(t, err, erc20.ErrInsufficientAllowance)

	err = bobRef.TransferFrom(ctx, alice, bob, 150)
	require.NoError(t, err)

	balance, err := bobRef.BalanceOf(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, uint64(150), balance)

	balance, err = bobRef.BalanceOf(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(250), balance)

	err = bobRef.Mint(ctx, bob, 1)
	require.ErrorIs(t, err, erc20.ErrNotOwner)

	err = ownerRef.Mint(ctx, bob, 50)
	require.NoError(t, err)

	supply, err := aliceRef.TotalSupply(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1050), supply)

	info, err := aliceRef.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, "TST", info.Symbol)
	require.Equal(t, owner, info.Owner)

	tokens, err := ledger.Tokens(ctx)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
}
