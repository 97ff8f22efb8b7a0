package main

import (
	"context"
	"strings"

	"github.com/tdex-network/tdex-pool/pkg/poolclient"
	"github.com/urfave/cli/v2"
)

var (
	assetFlag = &cli.StringFlag{
		Name:     "asset",
		Usage:    "the address of the token, or one of token0, token1, lp",
		Required: true,
	}
	amountFlag = &cli.Uint64Flag{
		Name:     "amount",
		Usage:    "the amount of token units",
		Required: true,
	}
)

var infoCmd = cli.Command{
	Name:   "info",
	Usage:  "get info about the pool",
	Action: infoAction,
}

var provideCmd = cli.Command{
	Name:  "provide",
	Usage: "deposit liquidity into the pool, the pool must be approved to spend both amounts",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "amount0",
			Usage: "the amount of token0 to deposit",
		},
		&cli.Uint64Flag{
			Name:  "amount1",
			Usage: "the amount of token1 to deposit",
		},
		accountFlag,
	},
	Action: provideAction,
}

var swapCmd = cli.Command{
	Name:   "swap",
	Usage:  "sell an amount of one asset of the pool in exchange for the other",
	Flags:  []cli.Flag{assetFlag, amountFlag, accountFlag},
	Action: swapAction,
}

var simulateCmd = cli.Command{
	Name:   "simulate",
	Usage:  "get the amount a swap would pay out at the current reserves",
	Flags:  []cli.Flag{assetFlag, amountFlag},
	Action: simulateAction,
}

var quoteCmd = cli.Command{
	Name:  "quote",
	Usage: "get the amount of the given asset to sell for receiving an amount of the other",
	Flags: []cli.Flag{
		assetFlag,
		&cli.Uint64Flag{
			Name:     "amount_out",
			Usage:    "the amount of the other asset to receive",
			Required: true,
		},
	},
	Action: quoteAction,
}

var balancesCmd = cli.Command{
	Name:   "balances",
	Usage:  "get the balances held by the pool",
	Action: balancesAction,
}

var reservesCmd = cli.Command{
	Name:   "reserves",
	Usage:  "get the reserves backing the pricing of the pool",
	Action: reservesAction,
}

var priceCmd = cli.Command{
	Name:   "price",
	Usage:  "get the spot price of the given asset in terms of the other",
	Flags:  []cli.Flag{assetFlag},
	Action: priceAction,
}

func infoAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	info, err := client.PoolInfo(context.Background())
	if err != nil {
		return err
	}
	return printJSON(ctx, info)
}

func provideAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}

	receipt, err := client.ProvideLiquidity(
		context.Background(), caller, ctx.Uint64("amount0"), ctx.Uint64("amount1"),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, receipt)
}

func swapAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}
	asset, err := resolveAsset(client, ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}

	receipt, err := client.Swap(
		context.Background(), caller, asset, ctx.Uint64(amountFlag.Name),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, receipt)
}

func simulateAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	asset, err := resolveAsset(client, ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}

	amountOut, err := client.Simulate(
		context.Background(), asset, ctx.Uint64(amountFlag.Name),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.SimulateReply{AmountOut: amountOut})
}

func quoteAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	asset, err := resolveAsset(client, ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}

	amountIn, err := client.Quote(
		context.Background(), asset, ctx.Uint64("amount_out"),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.QuoteReply{AmountIn: amountIn})
}

func balancesAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	balances, err := client.Balances(context.Background())
	if err != nil {
		return err
	}
	return printJSON(ctx, balances)
}

func reservesAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	reserves, err := client.Reserves(context.Background())
	if err != nil {
		return err
	}
	return printJSON(ctx, reserves)
}

func priceAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	asset, err := resolveAsset(client, ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}

	price, err := client.SpotPrice(context.Background(), asset)
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.SpotPriceReply{Price: price})
}

// resolveAsset replaces the token0, token1 and lp aliases with the addresses
// of the pool tokens.
func resolveAsset(client *poolclient.Client, asset string) (string, error) {
	alias := strings.ToLower(asset)
	if alias != "token0" && alias != "token1" && alias != "lp" {
		return asset, nil
	}

	info, err := client.PoolInfo(context.Background())
	if err != nil {
		return "", err
	}
	switch alias {
	case "token0":
		return info.Token0, nil
	case "token1":
		return info.Token1, nil
	default:
		return info.LpToken, nil
	}
}

func resolveEvent(event string) string {
	switch strings.ToLower(event) {
	case "swap":
		return "SWAP_EXECUTED"
	case "liquidity":
		return "LIQUIDITY_PROVIDED"
	case "", "any":
		return "*"
	default:
		return strings.ToUpper(event)
	}
}
