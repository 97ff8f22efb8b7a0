package main

import (
	"context"
	"fmt"

	"github.com/tdex-network/tdex-pool/pkg/poolclient"
	"github.com/urfave/cli/v2"
)

var (
	tokenFlag = &cli.StringFlag{
		Name:     "token",
		Usage:    "the address of the token, or one of token0, token1, lp",
		Required: true,
	}
	recipientFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "the recipient account",
		Required: true,
	}
)

var tokenCmd = cli.Command{
	Name:  "token",
	Usage: "interact with the tokens of the ledger",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "list all tokens",
			Action: listTokensAction,
		},
		{
			Name:   "info",
			Usage:  "get info about a token",
			Flags:  []cli.Flag{tokenFlag},
			Action: tokenInfoAction,
		},
		{
			Name:  "balance",
			Usage: "get the token balance of an account, the caller's by default",
			Flags: []cli.Flag{
				tokenFlag,
				&cli.StringFlag{
					Name:  "of",
					Usage: "the account holding the balance",
				},
				accountFlag,
			},
			Action: tokenBalanceAction,
		},
		{
			Name:  "allowance",
			Usage: "get the amount a spender is allowed to move from the caller's balance",
			Flags: []cli.Flag{
				tokenFlag,
				&cli.StringFlag{
					Name:     "spender",
					Usage:    "the spender account",
					Required: true,
				},
				accountFlag,
			},
			Action: tokenAllowanceAction,
		},
		{
			Name:  "approve",
			Usage: "allow a spender to move an amount from the caller's balance",
			Flags: []cli.Flag{
				tokenFlag,
				&cli.StringFlag{
					Name:     "spender",
					Usage:    "the spender account",
					Required: true,
				},
				amountFlag,
				accountFlag,
			},
			Action: tokenApproveAction,
		},
		{
			Name:   "transfer",
			Usage:  "transfer an amount from the caller's balance",
			Flags:  []cli.Flag{tokenFlag, recipientFlag, amountFlag, accountFlag},
			Action: tokenTransferAction,
		},
		{
			Name:   "mint",
			Usage:  "mint new units of a token, only the owner is allowed",
			Flags:  []cli.Flag{tokenFlag, recipientFlag, amountFlag, accountFlag},
			Action: tokenMintAction,
		},
	},
}

func listTokensAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	tokens, err := client.ListTokens(context.Background())
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.ListTokensReply{Tokens: tokens})
}

func tokenInfoAction(ctx *cli.Context) error {
	client, token, err := getClientAndToken(ctx)
	if err != nil {
		return err
	}

	info, err := client.TokenInfo(context.Background(), token)
	if err != nil {
		return err
	}
	return printJSON(ctx, info)
}

func tokenBalanceAction(ctx *cli.Context) error {
	client, token, err := getClientAndToken(ctx)
	if err != nil {
		return err
	}
	account := ctx.String("of")
	if len(account) <= 0 {
		if account, err = getCaller(ctx); err != nil {
			return err
		}
	}

	balance, err := client.BalanceOf(context.Background(), token, account)
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.AmountReply{Amount: balance})
}

func tokenAllowanceAction(ctx *cli.Context) error {
	client, token, err := getClientAndToken(ctx)
	if err != nil {
		return err
	}
	owner, err := getCaller(ctx)
	if err != nil {
		return err
	}

	allowance, err := client.Allowance(
		context.Background(), token, owner, ctx.String("spender"),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.AmountReply{Amount: allowance})
}

func tokenApproveAction(ctx *cli.Context) error {
	client, token, err := getClientAndToken(ctx)
	if err != nil {
		return err
	}
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}

	if err := client.Approve(
		context.Background(), caller, token, ctx.String("spender"),
		ctx.Uint64(amountFlag.Name),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "approved")
	return nil
}

func tokenTransferAction(ctx *cli.Context) error {
	client, token, err := getClientAndToken(ctx)
	if err != nil {
		return err
	}
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}

	if err := client.Transfer(
		context.Background(), caller, token, ctx.String(recipientFlag.Name),
		ctx.Uint64(amountFlag.Name),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "transferred")
	return nil
}

func tokenMintAction(ctx *cli.Context) error {
	client, token, err := getClientAndToken(ctx)
	if err != nil {
		return err
	}
	caller, err := getCaller(ctx)
	if err != nil {
		return err
	}

	if err := client.Mint(
		context.Background(), caller, token, ctx.String(recipientFlag.Name),
		ctx.Uint64(amountFlag.Name),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "minted")
	return nil
}

func getClientAndToken(ctx *cli.Context) (*poolclient.Client, string, error) {
	client, err := getClient(ctx)
	if err != nil {
		return nil, "", err
	}
	token, err := resolveAsset(client, ctx.String(tokenFlag.Name))
	if err != nil {
		return nil, "", err
	}
	return client, token, nil
}
