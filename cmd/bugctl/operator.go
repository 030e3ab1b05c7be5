package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/vpvn/bugreports/internal/modules/service"
)

func newOperatorCmd(container func() *do.Injector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Manage API operators",
	}

	var (
		name    string
		isAdmin bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an operator and print its token",
		Long:  "Create an operator and print its bearer token. The token is shown once and cannot be recovered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := do.Invoke[service.OperatorService](container())
			if err != nil {
				return err
			}
			op, token, err := ops.Create(cmd.Context(), name, isAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "operator %q created (id %d, admin %t)\n", op.Name, op.ID, op.IsAdmin)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "operator name")
	create.Flags().BoolVar(&isAdmin, "admin", false, "grant admin access")
	_ = create.MarkFlagRequired("name")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List operators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := do.Invoke[service.OperatorService](container())
			if err != nil {
				return err
			}
			list, err := ops.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tADMIN\tCREATED")
			for _, op := range list {
				fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", op.ID, op.Name, op.IsAdmin, op.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(create, ls)
	return cmd
}
