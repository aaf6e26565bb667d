package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabline/internal/ipc"
)

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "progress <order-id>",
		Short: "Show an order's fabrication progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Progress(args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Order %s: %.1f%% complete (%d/%d items done)\n",
					resp.OrderID, resp.Percentage, resp.CompletedItems, resp.TotalItems)

				if len(resp.Items) == 0 {
					return nil
				}
				writeListing(cmd, []column{
					{title: "Item"},
					{title: "Stage"},
					{title: "Percent", rightAlign: true},
					{title: "Done"},
				}, buildProgressRows(resp.Items))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output progress as JSON")
	return cmd
}

func buildProgressRows(items []ipc.ItemProgress) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ItemID,
			item.StageLabel,
			fmt.Sprintf("%.0f%%", item.Percentage),
			yesNo(item.Terminal),
		})
	}
	return rows
}
