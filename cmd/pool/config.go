package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the pool CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  rpcServerKey,
					Usage: "pool daemon address host:port",
					Value: "localhost:9945",
				},
				&cli.StringFlag{
					Name:  accountKey,
					Usage: "the account on behalf of which commands are executed",
				},
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState(ctx)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintln(ctx.App.Writer, key+": "+state[key])
	}
	return nil
}

func configInitAction(ctx *cli.Context) error {
	return setState(ctx, map[string]string{
		rpcServerKey: ctx.String(rpcServerKey),
		accountKey:   ctx.String(accountKey),
	})
}

func configSetAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	key := ctx.Args().Get(0)
	value := ctx.Args().Get(1)

	if err := setState(ctx, map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "%s %s has been set\n", key, value)
	return nil
}
