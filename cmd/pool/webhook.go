package main

import (
	"context"
	"fmt"

	"github.com/tdex-network/tdex-pool/pkg/poolclient"
	"github.com/urfave/cli/v2"
)

var eventFlag = &cli.StringFlag{
	Name:  "event",
	Usage: "the event type: swap, liquidity or any",
}

var webhookCmd = cli.Command{
	Name:  "webhook",
	Usage: "manage the webhooks notified about the pool events",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a webhook registered for some event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the endpoint where to notify the webhook",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "the eventual secret to authenticate requests",
				},
				eventFlag,
			},
			Action: addWebhookAction,
		},
		{
			Name:  "remove",
			Usage: "remove a webhook",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Usage:    "the id of the webhook",
					Required: true,
				},
			},
			Action: removeWebhookAction,
		},
		{
			Name:   "list",
			Usage:  "list the webhooks registered for some event, all by default",
			Flags:  []cli.Flag{eventFlag},
			Action: listWebhooksAction,
		},
	},
}

func addWebhookAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	id, err := client.AddWebhook(
		context.Background(), resolveEvent(ctx.String(eventFlag.Name)),
		ctx.String("endpoint"), ctx.String("secret"),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "hook id:", id)
	return nil
}

func removeWebhookAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	if err := client.RemoveWebhook(context.Background(), ctx.String("id")); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "removed")
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	var event string
	if ctx.IsSet(eventFlag.Name) {
		event = resolveEvent(ctx.String(eventFlag.Name))
	}
	hooks, err := client.ListWebhooks(context.Background(), event)
	if err != nil {
		return err
	}
	return printJSON(ctx, poolclient.ListWebhooksReply{Webhooks: hooks})
}
