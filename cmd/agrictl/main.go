package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/cmd"
	"github.com/agrisync/agrisync/cmd/runtime/version"
)

// verbosityFlag keeps the cli quiet unless asked, stdout carries results.
var verbosityFlag = &cli.StringFlag{
	Name:  cmd.VerbosityFlag.Name,
	Usage: cmd.VerbosityFlag.Usage,
	Value: "warn",
}

func main() {
	flags := make([]cli.Flag, 0, len(cmd.CommonFlags))
	for _, f := range cmd.CommonFlags {
		if f == cmd.VerbosityFlag {
			f = verbosityFlag
		}
		flags = append(flags, f)
	}

	app := cli.App{
		Name:    "agrictl",
		Usage:   "command line client of the agrisync marketplace, storage registry and prediction service",
		Version: version.Get(),
		Flags:   flags,
		Before:  cmd.InitLogging,
		Commands: []*cli.Command{
			accountCommand,
			cropCommand,
			storageCommand,
			predictCommand,
			marketCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("running agrictl failed", "error", err)
		os.Exit(1)
	}
}

// withClients loads the config, builds the clients and runs fn.
func withClients(fn func(ctx *cli.Context, clients *cmd.Clients) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := cmd.LoadConfig(ctx)
		if err != nil {
			return err
		}

		clients, err := cmd.NewClients(ctx.Context, cfg)
		if err != nil {
			return err
		}
		defer clients.Close()

		return fn(ctx, clients)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func uintArg(ctx *cli.Context, name string) (uint64, error) {
	arg := ctx.Args().First()
	if arg == "" {
		return 0, errors.Errorf("missing %s argument", name)
	}

	v, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s %q", name, arg)
	}

	return v, nil
}

var accountCommand = &cli.Command{
	Name:  "account",
	Usage: "Print the account transactions are sent from",
	Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
		account, err := clients.Ledger.CurrentAccount(ctx.Context)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(ctx.App.Writer, account.Hex())
		return err
	}),
}
