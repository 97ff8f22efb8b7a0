package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

var eventsCmd = cli.Command{
	Name:   "events",
	Usage:  "stream the pool events until interrupted",
	Flags:  []cli.Flag{eventFlag},
	Action: eventsAction,
}

func eventsAction(ctx *cli.Context) error {
	client, err := getClient(ctx)
	if err != nil {
		return err
	}

	streamCtx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, os.Interrupt,
	)
	defer cancel()

	chEvents, err := client.Events(streamCtx, resolveEvent(ctx.String(eventFlag.Name)))
	if err != nil {
		return err
	}

	for event := range chEvents {
		if event.Err != nil {
			return event.Err
		}
		if _, err := ctx.App.Writer.Write(append(event.Payload, '\n')); err != nil {
			return err
		}
	}
	return nil
}
