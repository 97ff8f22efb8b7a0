package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/tdex-pool/pkg/poolclient"
	"github.com/urfave/cli/v2"
)

const (
	stateFile = "state.json"

	rpcServerKey = "rpcserver"
	accountKey   = "account"
)

var (
	defaultDatadir = btcutil.AppDataDir("pool-cli", false)

	datadirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "directory of the local state of the CLI",
		Value: defaultDatadir,
	}
	accountFlag = &cli.StringFlag{
		Name:  "account",
		Usage: "the account on behalf of which the command is executed, overrides the one in the local state",
	}
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "pool"
	app.Usage = "Command line interface for the liquidity pool daemon"
	app.Writer = out
	app.Flags = []cli.Flag{datadirFlag}
	app.Commands = append(
		app.Commands,
		&configCmd,
		&infoCmd,
		&provideCmd,
		&swapCmd,
		&simulateCmd,
		&quoteCmd,
		&balancesCmd,
		&reservesCmd,
		&priceCmd,
		&tokenCmd,
		&accountCmd,
		&webhookCmd,
		&eventsCmd,
	)
	return app
}

func statePath(ctx *cli.Context) string {
	return filepath.Join(ctx.String(datadirFlag.Name), stateFile)
}

func getState(ctx *cli.Context) (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath(ctx))
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(ctx *cli.Context, data map[string]string) error {
	datadir := ctx.String(datadirFlag.Name)
	if _, err := os.Stat(datadir); os.IsNotExist(err) {
		if err := os.MkdirAll(datadir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, err := getState(ctx)
	if err != nil {
		currentData = map[string]string{}
	}

	jsonString, err := json.Marshal(merge(currentData, data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath(ctx), jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getClient(ctx *cli.Context) (*poolclient.Client, error) {
	state, err := getState(ctx)
	if err != nil {
		return nil, err
	}
	address, ok := state[rpcServerKey]
	if !ok {
		return nil, fmt.Errorf("set rpcserver with `config set %s`", rpcServerKey)
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	return poolclient.New(address), nil
}

// getCaller returns the account set with the --account flag, if any, or the
// one in the local state.
func getCaller(ctx *cli.Context) (string, error) {
	if account := ctx.String(accountFlag.Name); len(account) > 0 {
		return account, nil
	}

	state, err := getState(ctx)
	if err != nil {
		return "", err
	}
	account, ok := state[accountKey]
	if !ok || len(account) <= 0 {
		return "", fmt.Errorf(
			"set the account with --account or with `config set %s`", accountKey,
		)
	}
	return account, nil
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	b, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, string(b))
	return nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[pool] %v\n", err)
	}
	os.Exit(1)
}
