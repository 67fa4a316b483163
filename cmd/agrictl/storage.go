package main

import (
	"github.com/urfave/cli/v2"

	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/cmd"
)

var (
	capacityFlag = &cli.Int64Flag{
		Name:     "capacity",
		Usage:    "Slot capacity in GB",
		Required: true,
	}
	availableFlag = &cli.Int64Flag{
		Name:     "available",
		Usage:    "Available capacity in GB",
		Required: true,
	}
)

var storageCommand = &cli.Command{
	Name:  "storage",
	Usage: "Storage registry operations",
	Subcommands: []*cli.Command{
		{
			Name:  "register",
			Usage: "Register a storage slot",
			Flags: []cli.Flag{capacityFlag},
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				receipt, err := clients.Ledger.RegisterStorageSlot(ctx.Context, ctx.Int64(capacityFlag.Name))
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, receipt)
			}),
		},
		{
			Name:      "update",
			Usage:     "Update the available capacity of a slot",
			ArgsUsage: "<slot-id>",
			Flags:     []cli.Flag{availableFlag},
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				id, err := uintArg(ctx, "slot id")
				if err != nil {
					return err
				}

				receipt, err := clients.Ledger.UpdateAvailability(ctx.Context, id, ctx.Int64(availableFlag.Name))
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, receipt)
			}),
		},
		{
			Name:      "deactivate",
			Usage:     "Deactivate a slot",
			ArgsUsage: "<slot-id>",
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				id, err := uintArg(ctx, "slot id")
				if err != nil {
					return err
				}

				receipt, err := clients.Ledger.DeactivateSlot(ctx.Context, id)
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, receipt)
			}),
		},
		{
			Name:  "list",
			Usage: "List the slots of the current account",
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				ids, err := clients.Ledger.ListSlotsForCurrentAccount(ctx.Context)
				if err != nil {
					return err
				}

				slots := make([]*chain.StorageSlot, 0, len(ids))
				for _, id := range ids {
					slot, err := clients.Ledger.GetSlot(ctx.Context, id)
					if err != nil {
						return err
					}
					slots = append(slots, slot)
				}

				return printJSON(ctx.App.Writer, slots)
			}),
		},
		{
			Name:      "get",
			Usage:     "Show a slot",
			ArgsUsage: "<slot-id>",
			Action: withClients(func(ctx *cli.Context, clients *cmd.Clients) error {
				id, err := uintArg(ctx, "slot id")
				if err != nil {
					return err
				}

				slot, err := clients.Ledger.GetSlot(ctx.Context, id)
				if err != nil {
					return err
				}

				return printJSON(ctx.App.Writer, slot)
			}),
		},
	},
}
