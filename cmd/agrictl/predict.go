package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/agrisync/agrisync/cmd"
	"github.com/agrisync/agrisync/predict"
)

var detailedFlag = &cli.BoolFlag{
	Name:  "detailed",
	Usage: "Report per model readiness",
}

type classifyFunc func(ctx context.Context, image []byte, filename string) (*predict.Result, error)

func classifyAction(pick func(*predict.Client) classifyFunc) cli.ActionFunc {
	return withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
		path := ctx.Args().First()
		if path == "" {
			return errors.New("missing image argument")
		}

		image, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "read image")
		}

		res, err := pick(clients.Predictor)(ctx.Context, image, filepath.Base(path))
		if err != nil {
			return err
		}

		return printJSON(ctx.App.Writer, res)
	})
}

var predictCommand = &cli.Command{
	Name:  "predict",
	Usage: "Prediction service operations",
	Subcommands: []*cli.Command{
		{
			Name:      "disease",
			Usage:     "Classify the disease of a plant leaf image",
			ArgsUsage: "<image>",
			Action: classifyAction(func(c *predict.Client) classifyFunc {
				return c.ClassifyDisease
			}),
		},
		{
			Name:      "soil",
			Usage:     "Classify the soil type of an image",
			ArgsUsage: "<image>",
			Action: classifyAction(func(c *predict.Client) classifyFunc {
				return c.ClassifySoil
			}),
		},
		{
			Name:  "health",
			Usage: "Check the prediction service",
			Flags: []cli.Flag{detailedFlag},
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				check := clients.Predictor.Health
				if ctx.Bool(detailedFlag.Name) {
					check = clients.Predictor.HealthDetailed
				}

				health, err := check(ctx.Context)
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, health)
			}),
		},
	},
}
