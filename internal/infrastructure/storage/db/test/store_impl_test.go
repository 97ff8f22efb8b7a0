package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
)

func TestStoreImplementations(t *testing.T) {
	repoManagers := createRepoManagers(t)

	for i := range repoManagers {
		repoManager := repoManagers[i]

		t.Run(repoManager.name, func(t *testing.T) {
			t.Parallel()

			t.Run("testTokenStore", func(t *testing.T) {
				testTokenStore(t, repoManager.TokenStore())
			})

			t.Run("testAccountStore", func(t *testing.T) {
				testAccountStore(t, repoManager.AccountStore())
			})

			t.Run("testSubscriptionStore", func(t *testing.T) {
				testSubscriptionStore(t, repoManager.SubscriptionStore())
			})
		})
	}
}

func testTokenStore(t *testing.T, store erc20.Store) {
	owner := randomHex(8)
	token, err := erc20.NewToken(randomAsset(), "Test Token", "TST", owner, 100)
	require.NoError(t, err)

	_, err = store.GetToken(ctx, token.Address)
	require.ErrorIs(t, err, erc20.ErrTokenNotFound)

	err = store.AddToken(ctx, token)
	require.NoError(t, err)

	err = store.AddToken(ctx, token)
	require.ErrorIs(t, err, erc20.ErrTokenAlreadyExists)

	err = store.UpdateToken(
		ctx, token.Address, func(tk *erc20.Token) (*erc20.Token, error) {
			if err := tk.Transfer(owner, "recipient", 101); err != nil {
				return nil, err
			}
			return tk, nil
		},
	)
	require.ErrorIs(t, err, erc20.ErrInsufficientBalance)

	err = store.UpdateToken(
		ctx, token.Address, func(tk *erc20.Token) (*erc20.Token, error) {
			if err := tk.Transfer(owner, "recipient", 40); err != nil {
				return nil, err
			}
			return tk, nil
		},
	)
	require.NoError(t, err)

	tk, err := store.GetToken(ctx, token.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(100), tk.TotalSupply)
	require.Equal(t, uint64(60), tk.BalanceOf(owner))
	require.Equal(t, uint64(40), tk.BalanceOf("recipient"))

	// changes to a fetched token must not affect the stored state.
	tk.Balances[owner] = 0
	tk, err = store.GetToken(ctx, token.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(60), tk.BalanceOf(owner))

	tokens, err := store.GetAllTokens(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	err = store.UpdateToken(
		ctx, randomAsset(), func(tk *erc20.Token) (*erc20.Token, error) {
			return tk, nil
		},
	)
	require.ErrorIs(t, err, erc20.ErrTokenNotFound)
}

func testAccountStore(t *testing.T, store hostenv.AccountStore) {
	account := &hostenv.Account{ID: randomHex(8), Balance: 1000}

	_, err := store.GetAccount(ctx, account.ID)
	require.ErrorIs(t, err, hostenv.ErrAccountNotFound)

	err = store.AddAccount(ctx, account)
	require.NoError(t, err)

	err = store.AddAccount(ctx, account)
	require.ErrorIs(t, err, hostenv.ErrAccountAlreadyExists)

	err = store.UpdateAccount(
		ctx, account.ID, func(a *hostenv.Account) (*hostenv.Account, error) {
			a.Balance -= 250
			return a, nil
		},
	)
	require.NoError(t, err)

	a, err := store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(750), a.Balance)

	accounts, err := store.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Contains(t, accounts, *a)

	err = store.UpdateAccount(
		ctx, randomHex(8), func(a *hostenv.Account) (*hostenv.Account, error) {
			return a, nil
		},
	)
	require.ErrorIs(t, err, hostenv.ErrAccountNotFound)
}

func testSubscriptionStore(t *testing.T, store pubsub.SubscriptionStore) {
	topic := randomHex(4)
	sub, err := pubsub.NewSubscription(topic, "http://localhost:8000/hook", "")
	require.NoError(t, err)
	anySub, err := pubsub.NewSubscription(
		ports.AnyTopic, "http://localhost:8000/all", "secret",
	)
	require.NoError(t, err)

	err = store.AddSubscription(ctx, *sub)
	require.NoError(t, err)
	err = store.AddSubscription(ctx, *sub)
	require.NoError(t, err)
	err = store.AddSubscription(ctx, *anySub)
	require.NoError(t, err)

	s, err := store.GetSubscription(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, *sub, *s)

	subs, err := store.GetSubscriptionsForTopic(ctx, topic)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	subs, err = store.GetSubscriptionsForTopic(ctx, ports.UnspecifiedTopic)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(subs), 2)

	err = store.RemoveSubscription(ctx, sub.ID)
	require.NoError(t, err)

	err = store.RemoveSubscription(ctx, sub.ID)
	require.ErrorIs(t, err, pubsub.ErrSubscriptionNotFound)

	_, err = store.GetSubscription(ctx, sub.ID)
	require.ErrorIs(t, err, pubsub.ErrSubscriptionNotFound)

	subs, err = store.GetSubscriptionsForTopic(ctx, topic)
	require.NoError(t, err)
	require.Empty(t, subs)
}
