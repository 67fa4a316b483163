package cmd

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/config"
	"github.com/agrisync/agrisync/predict"
)

// InitLogging configures the logger from the common flags. It is meant to
// be the Before hook of a cli app.
func InitLogging(ctx *cli.Context) error {
	logLvl, err := log.ParseLevel(ctx.String(VerbosityFlag.Name))
	if err != nil {
		return err
	}

	logFmt, err := log.ParseFormat(ctx.String(LogFormatFlag.Name))
	if err != nil {
		return err
	}

	if err := log.Init(logLvl, logFmt); err != nil {
		return err
	}

	logFilename := ctx.String(LogFilenameFlag.Name)
	if logFilename != "" {
		if err := log.ConfigurePersistentLogging(logFilename, false); err != nil {
			log.Error("Failed to configuring logging to disk",
				"error", err)
		}
	}
	if ctx.Bool(LogColorFlag.Name) {
		log.ForceColor()
	}

	return nil
}

// LoadConfig reads the config selected by the common flags.
func LoadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(ConfigPathFlag.Name))
	if err != nil {
		return nil, err
	}

	if env := ctx.String(EnvFlag.Name); env != "" {
		url, err := config.BaseURL(env)
		if err != nil {
			return nil, err
		}
		cfg.Env = env
		cfg.Predict.BaseURL = url
	}

	return cfg, nil
}

// Clients holds the ledger and prediction clients built from a config.
type Clients struct {
	Ledger    *chain.Ledger
	Predictor *predict.Client
	backend   *chain.RPCBackend
}

// Close releases the ledger node connection.
func (c *Clients) Close() {
	c.backend.Close()
}

// NewClients dials the ledger node and builds both clients. Configured
// accounts replace the node's account list.
func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	backend, err := chain.Dial(ctx, cfg.NodeURL)
	if err != nil {
		return nil, err
	}

	var accounts chain.AccountProvider = backend
	if len(cfg.Accounts) > 0 {
		static := make(chain.StaticAccounts, len(cfg.Accounts))
		for i, a := range cfg.Accounts {
			if !common.IsHexAddress(a) {
				backend.Close()
				return nil, errors.Errorf("invalid account %q", a)
			}
			static[i] = common.HexToAddress(a)
		}
		accounts = static
	}

	ledger, err := chain.New(backend, accounts, cfg.Ledger)
	if err != nil {
		backend.Close()
		return nil, err
	}

	predictor, err := predict.New(cfg.Predict)
	if err != nil {
		backend.Close()
		return nil, err
	}

	log.Info("clients ready",
		"node", cfg.NodeURL,
		"prediction_service", predictor.BaseURL(),
		"env", cfg.Env,
	)

	return &Clients{
		Ledger:    ledger,
		Predictor: predictor,
		backend:   backend,
	}, nil
}
