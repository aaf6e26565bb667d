package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fabline/internal/ipc"
)

func newEmployeeCommand(ctx *commandContext) *cobra.Command {
	employeeCmd := &cobra.Command{
		Use:   "employee",
		Short: "Employee directory utilities",
	}

	employeeCmd.AddCommand(newEmployeeListCommand(ctx))
	employeeCmd.AddCommand(newEmployeeSetCommand(ctx))

	return employeeCmd
}

func newEmployeeListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the local employee directory snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Employees()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Employees) == 0 {
					fmt.Fprintln(stdout, "Directory is empty")
					return nil
				}
				rows := make([][]string, 0, len(resp.Employees))
				for _, emp := range resp.Employees {
					rows = append(rows, []string{emp.ID, emp.Name, emp.Role})
				}
				writeListing(cmd, []column{
					{title: "ID"},
					{title: "Name"},
					{title: "Role"},
				}, rows)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output employees as JSON")
	return cmd
}

func newEmployeeSetCommand(ctx *commandContext) *cobra.Command {
	var name string
	var role string

	cmd := &cobra.Command{
		Use:   "set <employee-id>",
		Short: "Record an employee edit and queue it for synchronization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.EmployeeSet(args[0], name, role)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Stored %s: %s (%s)\n", resp.Employee.ID, resp.Employee.Name, resp.Employee.Role)
				if resp.Change == nil {
					fmt.Fprintln(stdout, "No synchronizable change detected")
					return nil
				}
				fmt.Fprintf(stdout, "Queued %s change %q -> %q (%d pending)\n",
					resp.Change.Field, resp.Change.Previous, resp.Change.New, resp.PendingChanges)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Employee display name")
	cmd.Flags().StringVar(&role, "role", "", "Employee role")
	return cmd
}
