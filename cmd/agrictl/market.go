package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/cmd"
	"github.com/agrisync/agrisync/market"
)

var (
	categoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Only show a category (all, fruit, vegetable, grain)",
		Value: "all",
	}
	searchFlag = &cli.StringFlag{
		Name:  "search",
		Usage: "Only show crops whose name contains the text",
	}
	xlsxFlag = &cli.StringFlag{
		Name:  "xlsx",
		Usage: "Write the forecasts to a spreadsheet file instead of stdout",
	}
)

var marketCommand = &cli.Command{
	Name:  "market",
	Usage: "Show crop price forecasts, falling back to the bundled table",
	Flags: []cli.Flag{categoryFlag, searchFlag, xlsxFlag},
	Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
		live, err := clients.Predictor.FetchMarketForecast(ctx.Context)
		sel := market.Select(live, err)
		if sel.Source == market.SourceStatic {
			log.Info("serve static market forecast", "reason", sel.Reason)
		}
		sel.Entries = market.Filter(sel.Entries, ctx.String(categoryFlag.Name), ctx.String(searchFlag.Name))

		path := ctx.String(xlsxFlag.Name)
		if path == "" {
			return printJSON(ctx.App.Writer, sel)
		}

		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create spreadsheet")
		}
		defer f.Close()

		return market.WriteXLSX(f, sel.Entries)
	}),
}
