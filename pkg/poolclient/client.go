// Package poolclient is a client for the JSON-RPC interface of the pool
// daemon.
package poolclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/rpc/v2/json2"
)

const (
	// Endpoint is the path where the JSON-RPC interface is served.
	Endpoint = "/rpc"
	// EventsEndpoint is the path where the websocket stream of the pool
	// events is served.
	EventsEndpoint = "/events"

	defaultTimeout = 30 * time.Second
)

// Client sends JSON-RPC requests to the pool daemon.
type Client struct {
	baseURI    string
	uri        string
	httpClient *http.Client
}

// New returns a client for the daemon listening at the given base uri, ie.
// http://localhost:9945.
func New(uri string) *Client {
	baseURI := strings.TrimSuffix(strings.TrimSuffix(uri, "/"), Endpoint)
	return &Client{
		baseURI, baseURI + Endpoint, &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) PoolInfo(ctx context.Context) (*PoolInfo, error) {
	reply := &PoolInfo{}
	if err := c.send(ctx, PoolService, "Info", &Empty{}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) ProvideLiquidity(
	ctx context.Context, caller string, amount0, amount1 uint64,
) (*LiquidityReceipt, error) {
	reply := &LiquidityReceipt{}
	args := &ProvideLiquidityArgs{Caller{caller}, amount0, amount1}
	if err := c.send(ctx, PoolService, "ProvideLiquidity", args, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) Swap(
	ctx context.Context, caller, asset string, amount uint64,
) (*SwapReceipt, error) {
	reply := &SwapReceipt{}
	args := &SwapArgs{Caller{caller}, asset, amount}
	if err := c.send(ctx, PoolService, "Swap", args, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) Simulate(
	ctx context.Context, asset string, amount uint64,
) (uint64, error) {
	reply := &SimulateReply{}
	args := &SimulateArgs{asset, amount}
	if err := c.send(ctx, PoolService, "Simulate", args, reply); err != nil {
		return 0, err
	}
	return reply.AmountOut, nil
}

func (c *Client) Quote(
	ctx context.Context, asset string, amountOut uint64,
) (uint64, error) {
	reply := &QuoteReply{}
	args := &QuoteArgs{asset, amountOut}
	if err := c.send(ctx, PoolService, "Quote", args, reply); err != nil {
		return 0, err
	}
	return reply.AmountIn, nil
}

func (c *Client) Balances(ctx context.Context) (*BalancesReply, error) {
	reply := &BalancesReply{}
	if err := c.send(ctx, PoolService, "Balances", &Empty{}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) Reserves(ctx context.Context) (*ReservesReply, error) {
	reply := &ReservesReply{}
	if err := c.send(ctx, PoolService, "Reserves", &Empty{}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) SpotPrice(ctx context.Context, asset string) (string, error) {
	reply := &SpotPriceReply{}
	args := &SpotPriceArgs{asset}
	if err := c.send(ctx, PoolService, "SpotPrice", args, reply); err != nil {
		return "", err
	}
	return reply.Price, nil
}

func (c *Client) TokenInfo(ctx context.Context, token string) (*TokenInfo, error) {
	reply := &TokenInfo{}
	if err := c.send(ctx, TokenService, "Info", &TokenArgs{token}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) ListTokens(ctx context.Context) ([]TokenInfo, error) {
	reply := &ListTokensReply{}
	if err := c.send(ctx, TokenService, "List", &Empty{}, reply); err != nil {
		return nil, err
	}
	return reply.Tokens, nil
}

func (c *Client) BalanceOf(
	ctx context.Context, token, account string,
) (uint64, error) {
	reply := &AmountReply{}
	args := &BalanceOfArgs{token, account}
	if err := c.send(ctx, TokenService, "BalanceOf", args, reply); err != nil {
		return 0, err
	}
	return reply.Amount, nil
}

func (c *Client) Allowance(
	ctx context.Context, token, owner, spender string,
) (uint64, error) {
	reply := &AmountReply{}
	args := &AllowanceArgs{token, owner, spender}
	if err := c.send(ctx, TokenService, "Allowance", args, reply); err != nil {
		return 0, err
	}
	return reply.Amount, nil
}

func (c *Client) TotalSupply(ctx context.Context, token string) (uint64, error) {
	reply := &AmountReply{}
	if err := c.send(ctx, TokenService, "TotalSupply", &TokenArgs{token}, reply); err != nil {
		return 0, err
	}
	return reply.Amount, nil
}

func (c *Client) Approve(
	ctx context.Context, caller, token, spender string, amount uint64,
) error {
	args := &ApproveArgs{Caller{caller}, token, spender, amount}
	return c.send(ctx, TokenService, "Approve", args, &Empty{})
}

func (c *Client) Transfer(
	ctx context.Context, caller, token, recipient string, amount uint64,
) error {
	args := &TransferArgs{Caller{caller}, token, recipient, amount}
	return c.send(ctx, TokenService, "Transfer", args, &Empty{})
}

func (c *Client) Mint(
	ctx context.Context, caller, token, recipient string, amount uint64,
) error {
	args := &TransferArgs{Caller{caller}, token, recipient, amount}
	return c.send(ctx, TokenService, "Mint", args, &Empty{})
}

// NativeBalance returns the balance of native currency of the account.
func (c *Client) NativeBalance(ctx context.Context, account string) (uint64, error) {
	reply := &AmountReply{}
	if err := c.send(ctx, AccountService, "Balance", &AccountArgs{account}, reply); err != nil {
		return 0, err
	}
	return reply.Amount, nil
}

func (c *Client) AddWebhook(
	ctx context.Context, event, endpoint, secret string,
) (string, error) {
	reply := &AddWebhookReply{}
	args := &AddWebhookArgs{event, endpoint, secret}
	if err := c.send(ctx, WebhookService, "Add", args, reply); err != nil {
		return "", err
	}
	return reply.ID, nil
}

func (c *Client) RemoveWebhook(ctx context.Context, id string) error {
	return c.send(ctx, WebhookService, "Remove", &RemoveWebhookArgs{id}, &Empty{})
}

func (c *Client) ListWebhooks(
	ctx context.Context, event string,
) ([]WebhookInfo, error) {
	reply := &ListWebhooksReply{}
	if err := c.send(ctx, WebhookService, "List", &ListWebhooksArgs{event}, reply); err != nil {
		return nil, err
	}
	return reply.Webhooks, nil
}

func (c *Client) send(
	ctx context.Context, service, method string, args, reply interface{},
) error {
	body, err := json2.EncodeClientRequest(fmt.Sprintf("%s.%s", service, method), args)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.uri, bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()

	err = json2.DecodeClientResponse(resp.Body, reply)
	if err != nil && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon replied with status %d: %w", resp.StatusCode, err)
	}
	return err
}
