package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/application"
	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db"
	jsonrpcinterface "github.com/tdex-network/tdex-pool/internal/interfaces/jsonrpc"
	"github.com/tdex-network/tdex-pool/pkg/poolclient"
)

type cliRunner struct {
	t       *testing.T
	datadir string
}

func (c cliRunner) run(args ...string) (string, error) {
	out := &bytes.Buffer{}
	args = append([]string{"pool", "--datadir", c.datadir}, args...)
	err := newApp(out).Run(args)
	return out.String(), err
}

func (c cliRunner) mustRun(args ...string) string {
	out, err := c.run(args...)
	require.NoError(c.t, err, args)
	return out
}

func (c cliRunner) mustRunJSON(reply interface{}, args ...string) {
	out := c.mustRun(args...)
	require.NoError(c.t, json.Unmarshal([]byte(out), reply), out)
}

func newTestDaemon(t *testing.T) *httptest.Server {
	cfg := &application.Config{
		DBType:            db.DbTypeInMemory,
		PoolAccount:       "pool",
		PoolNativeBalance: 1000,
		PoolOpts:          pool.Options{LpCodeHash: hostenv.ERC20CodeHash},
		BootstrapOwner:    "faucet",
		BootstrapSupply:   1000000,
	}
	require.NoError(t, cfg.Validate())

	handler, err := jsonrpcinterface.NewHandler(jsonrpcinterface.ServiceOpts{
		Port:       9945,
		Runtime:    cfg.Runtime(),
		PoolSvc:    cfg.PoolService(),
		WebhookSvc: cfg.WebhookService(),
	})
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
		cfg.Close()
	})
	return server
}

func TestConfigCommands(t *testing.T) {
	c := cliRunner{t, t.TempDir()}

	_, err := c.run("config")
	require.Error(t, err)

	c.mustRun("config", "init", "--account", "alice")
	out := c.mustRun("config")
	require.Equal(t, "account: alice\nrpcserver: localhost:9945\n", out)

	out = c.mustRun("config", "set", "account", "bob")
	require.Equal(t, "account bob has been set\n", out)

	state, err := os.ReadFile(filepath.Join(c.datadir, stateFile))
	require.NoError(t, err)
	require.JSONEq(t, `{"account":"bob","rpcserver":"localhost:9945"}`, string(state))

	_, err = c.run("config", "set", "account")
	require.Error(t, err)
}

func TestPoolCommands(t *testing.T) {
	server := newTestDaemon(t)
	c := cliRunner{t, t.TempDir()}
	c.mustRun("config", "init", "--rpcserver", server.URL, "--account", "faucet")

	info := &poolclient.PoolInfo{}
	c.mustRunJSON(info, "info")
	require.Equal(t, "pool", info.Account)

	for _, token := range []string{"token0", "token1"} {
		c.mustRun(
			"token", "transfer", "--token", token, "--to", "alice", "--amount", "1000",
		)
		c.mustRun(
			"token", "approve", "--token", token, "--spender", "pool",
			"--amount", "1000", "--account", "alice",
		)
	}

	allowance := &poolclient.AmountReply{}
	c.mustRunJSON(
		allowance, "token", "allowance", "--token", "token0", "--spender", "pool",
		"--account", "alice",
	)
	require.Equal(t, uint64(1000), allowance.Amount)

	deposit := &poolclient.LiquidityReceipt{}
	c.mustRunJSON(
		deposit, "provide", "--amount0", "1000", "--amount1", "1000",
		"--account", "alice",
	)
	require.Equal(t, "alice", deposit.Account)
	require.Equal(t, uint64(1000), deposit.Reserve1)

	simulation := &poolclient.SimulateReply{}
	c.mustRunJSON(simulation, "simulate", "--asset", "token0", "--amount", "100")
	require.Equal(t, uint64(90), simulation.AmountOut)

	c.mustRun("token", "approve", "--token", "token0", "--spender", "pool", "--amount", "100")
	swap := &poolclient.SwapReceipt{}
	c.mustRunJSON(swap, "swap", "--asset", "token0", "--amount", "100")
	require.Equal(t, info.Token0, swap.AssetIn)
	require.Equal(t, uint64(90), swap.AmountOut)

	reserves := &poolclient.ReservesReply{}
	c.mustRunJSON(reserves, "reserves")
	require.Equal(t, uint64(1100), reserves.Reserve0)
	require.Equal(t, uint64(910), reserves.Reserve1)

	balances := &poolclient.BalancesReply{}
	c.mustRunJSON(balances, "balances")
	require.Equal(t, reserves.Reserve1, balances.Token1)

	quote := &poolclient.QuoteReply{}
	c.mustRunJSON(quote, "quote", "--asset", "token1", "--amount_out", "10")
	require.NotZero(t, quote.AmountIn)

	price := &poolclient.SpotPriceReply{}
	c.mustRunJSON(price, "price", "--asset", "token0")
	require.NotEmpty(t, price.Price)

	balance := &poolclient.AmountReply{}
	c.mustRunJSON(balance, "token", "balance", "--token", "token1")
	require.Equal(t, uint64(999090), balance.Amount)

	c.mustRunJSON(balance, "account", "balance", "--of", "pool")
	require.Equal(t, uint64(750), balance.Amount)

	tokens := &poolclient.ListTokensReply{}
	c.mustRunJSON(tokens, "token", "list")
	require.Len(t, tokens.Tokens, 3)

	lp := &poolclient.TokenInfo{}
	c.mustRunJSON(lp, "token", "info", "--token", "lp")
	require.Equal(t, info.LpToken, lp.Address)

	c.mustRun("token", "mint", "--token", "token0", "--to", "bob", "--amount", "5")
	_, err := c.run(
		"token", "mint", "--token", "token0", "--to", "bob", "--amount", "5",
		"--account", "bob",
	)
	require.Error(t, err)

	_, err = c.run("swap", "--asset", "token0", "--amount", "100", "--account", "bob")
	require.Error(t, err)
}

func TestWebhookCommands(t *testing.T) {
	server := newTestDaemon(t)
	c := cliRunner{t, t.TempDir()}
	c.mustRun("config", "init", "--rpcserver", server.URL)

	out := c.mustRun(
		"webhook", "add", "--endpoint", "http://localhost:8888", "--event", "swap",
	)
	require.Contains(t, out, "hook id:")

	hooks := &poolclient.ListWebhooksReply{}
	c.mustRunJSON(hooks, "webhook", "list", "--event", "swap")
	require.Len(t, hooks.Webhooks, 1)
	require.Equal(t, "SWAP_EXECUTED", hooks.Webhooks[0].Event)
	id := hooks.Webhooks[0].ID

	c.mustRunJSON(hooks, "webhook", "list", "--event", "liquidity")
	require.Empty(t, hooks.Webhooks)

	c.mustRun("webhook", "remove", "--id", id)
	c.mustRunJSON(hooks, "webhook", "list")
	require.Empty(t, hooks.Webhooks)

	_, err := c.run("swap", "--asset", "token0", "--amount", "1")
	require.Error(t, err)
}
