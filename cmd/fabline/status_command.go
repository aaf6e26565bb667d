package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fabline/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, status)
				}

				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Running:         %s (pid %d)\n", yesNo(status.Running), status.PID)
				fmt.Fprintf(stdout, "Tracked orders:  %s\n", formatOrderList(status.TrackedOrders))
				fmt.Fprintf(stdout, "Pending changes: %d\n", status.PendingChanges)
				fmt.Fprintf(stdout, "Lock file:       %s\n", status.LockPath)
				fmt.Fprintf(stdout, "Directory DB:    %s\n", status.DirectoryPath)

				if len(status.RecentEvents) == 0 {
					return nil
				}
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, "Recent stage changes:")
				writeEventRows(cmd, status.RecentEvents)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output status as JSON")
	return cmd
}

func formatOrderList(orders []string) string {
	if len(orders) == 0 {
		return "(none)"
	}
	return strings.Join(orders, ", ")
}

func writeEventRows(cmd *cobra.Command, events []ipc.StageChange) {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{ev.OrderID, ev.ItemID, ev.PreviousStage, ev.NewStage, ev.NextStage})
	}
	writeListing(cmd, []column{
		{title: "Order"},
		{title: "Item"},
		{title: "Previous"},
		{title: "Stage"},
		{title: "Next"},
	}, rows)
}
