package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/api/server"
	"github.com/agrisync/agrisync/api/service"
	"github.com/agrisync/agrisync/cmd"
	"github.com/agrisync/agrisync/cmd/runtime/version"
	"github.com/agrisync/agrisync/database/mysql"
)

// portFlag overrides the configured listen port.
var portFlag = &cli.IntFlag{
	Name:  "port",
	Usage: "Port the gateway listens on",
}

func main() {
	app := cli.App{
		Name:    "agrisync-api",
		Usage:   "http gateway of the agrisync marketplace, storage registry and prediction service",
		Action:  exec,
		Version: version.Get(),
		Flags:   append([]cli.Flag{portFlag}, cmd.CommonFlags...),
		Before:  cmd.InitLogging,
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("running api application failed", "error", err)
	}
}

func exec(ctx *cli.Context) error {
	cfg, err := cmd.LoadConfig(ctx)
	if err != nil {
		log.Fatal("reading api config failed", "error", err)
	}

	if ctx.IsSet(portFlag.Name) {
		cfg.Port = ctx.Int(portFlag.Name)
	}

	db, err := mysql.Open(cfg.Database)
	if err != nil {
		log.Fatal("initialize journal db error", "error", err)
	}

	clients, err := cmd.NewClients(ctx.Context, cfg)
	if err != nil {
		log.Fatal("initialize clients error", "error", err)
	}
	defer clients.Close()

	log.Info("starting api server", "port", cfg.Port, "db_driver", cfg.Database.Driver)
	server.New(
		cfg.Port,
		service.New(db, clients.Ledger, clients.Predictor),
		cfg.CORSOrigins,
	).Run()
	return nil
}
