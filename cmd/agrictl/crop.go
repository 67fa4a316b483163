package main

import (
	"github.com/urfave/cli/v2"

	"github.com/agrisync/agrisync/api/util"
	"github.com/agrisync/agrisync/cmd"
)

var (
	nameFlag = &cli.StringFlag{
		Name:     "name",
		Usage:    "Crop name",
		Required: true,
	}
	quantityFlag = &cli.Int64Flag{
		Name:     "quantity",
		Usage:    "Quantity offered",
		Required: true,
	}
	priceEthFlag = &cli.StringFlag{
		Name:     "price",
		Usage:    "Total price in ether",
		Required: true,
	}
)

var cropCommand = &cli.Command{
	Name:  "crop",
	Usage: "Crop marketplace operations",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Offer a crop for sale",
			Flags: []cli.Flag{nameFlag, quantityFlag, priceEthFlag},
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				price, err := util.EtherToWei(ctx.String(priceEthFlag.Name))
				if err != nil {
					return err
				}

				receipt, err := clients.Ledger.ListCrop(
					ctx.Context,
					ctx.String(nameFlag.Name),
					ctx.Int64(quantityFlag.Name),
					price,
				)
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, receipt)
			}),
		},
		{
			Name:      "get",
			Usage:     "Show a crop listing",
			ArgsUsage: "<crop-id>",
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				id, err := uintArg(ctx, "crop id")
				if err != nil {
					return err
				}

				crop, err := clients.Ledger.GetCrop(ctx.Context, id)
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, crop)
			}),
		},
		{
			Name:      "buy",
			Usage:     "Buy a crop at its listed price",
			ArgsUsage: "<crop-id>",
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				id, err := uintArg(ctx, "crop id")
				if err != nil {
					return err
				}

				crop, err := clients.Ledger.GetCrop(ctx.Context, id)
				if err != nil {
					return err
				}

				receipt, err := clients.Ledger.BuyCrop(ctx.Context, crop.ID, crop.PriceWei)
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, receipt)
			}),
		},
	},
}
