package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vpvn/bugreports/internal/pkg/bugid"
)

func newBugIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bugid <project_id> <exception_text>",
		Short: "Print the bug identifier a report would be grouped under",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), bugid.New(args[0], args[1]))
		},
	}
}
