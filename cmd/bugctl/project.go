package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/vpvn/bugreports/internal/modules/service"
)

func newProjectCmd(container func() *do.Injector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var in service.CreateProjectInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := do.Invoke[service.ProjectService](container())
			if err != nil {
				return err
			}
			p, err := projects.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "project %q created\n", p.ID)
			return nil
		},
	}
	create.Flags().StringVar(&in.ID, "id", "", "project id, at most 20 characters")
	create.Flags().StringVar(&in.Name, "name", "", "display name")
	_ = create.MarkFlagRequired("id")
	_ = create.MarkFlagRequired("name")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := do.Invoke[service.ProjectService](container())
			if err != nil {
				return err
			}
			list, err := projects.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Name)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(create, ls)
	return cmd
}
