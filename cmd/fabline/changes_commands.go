package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabline/internal/ipc"
)

func newChangesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "changes",
		Short: "List directory changes awaiting synchronization",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Changes()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Changes) == 0 {
					fmt.Fprintln(stdout, "No pending changes")
					return nil
				}

				rows := make([][]string, 0, len(resp.Changes))
				for _, change := range resp.Changes {
					rows = append(rows, []string{
						fmt.Sprintf("%d", change.Seq),
						change.SubjectID,
						change.Field,
						change.Previous,
						change.New,
						change.CreatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				writeListing(cmd, []column{
					{title: "Seq", rightAlign: true},
					{title: "Employee"},
					{title: "Field"},
					{title: "Previous"},
					{title: "New"},
					{title: "Detected"},
				}, rows)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output changes as JSON")
	return cmd
}

func newRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Force an immediate synchronization pass over pending changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Retry()
				if err != nil {
					return err
				}
				if resp.PendingChanges == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "All changes synchronized")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d change(s) still pending\n", resp.PendingChanges)
				return nil
			})
		},
	}
}
