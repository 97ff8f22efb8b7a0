package main

import (
	"context"

	"github.com/tdex-network/tdex-pool/pkg/poolclient"
	"github.com/urfave/cli/v2"
)

var accountCmd = cli.Command{
	Name:  "account",
	Usage: "get info about the native accounts",
	Subcommands: []*cli.Command{
		{
			Name:  "balance",
			Usage: "get the native balance of an account, the caller's by default",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "of",
					Usage: "the account holding the balance",
				},
				accountFlag,
			},
			Action: accountBalanceAction,
		},
	},
}

func accountBalanceAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	account := ctx.String("of")
	if len(account) <= 0 {
		if account, err = getCaller(ctx); err != nil {
			return err
		}
	}

	balance, err := client.NativeBalance(context.Background(), account)
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.AmountReply{Amount: balance})
}
