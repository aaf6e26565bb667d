package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabline/internal/ipc"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "track <order-id>",
		Short: "Start tracking an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Track(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s (now watching: %s)\n", args[0], formatOrderList(resp.TrackedOrders))
				return nil
			})
		},
	}
}

func newUntrackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "untrack <order-id>",
		Short: "Stop tracking an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Untrack(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking %s (now watching: %s)\n", args[0], formatOrderList(resp.TrackedOrders))
				return nil
			})
		},
	}
}
