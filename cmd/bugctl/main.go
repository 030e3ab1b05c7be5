package main

import (
	"fmt"
	"os"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/vpvn/bugreports/internal/bootstrap"
)

var version = "dev"

// newContainer is swapped out in tests.
var newContainer = bootstrap.BuildContainer

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var inj *do.Injector
	container := func() *do.Injector {
		if inj == nil {
			inj = newContainer()
		}
		return inj
	}

	root := &cobra.Command{
		Use:   "bugctl",
		Short: "bugctl - administer the bug reports service",
		Long: `bugctl manages the bug reports service from the command line.

It reads the same config.yaml and BUGREPORTS_* environment as the server.
Use it to mint operator tokens, register projects and watch report events.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newVersionCmd(),
		newOperatorCmd(container),
		newProjectCmd(container),
		newSeedCmd(container),
		newBugIDCmd(),
		newEventsCmd(container),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bugctl version %s\n", version)
		},
	}
}
