package main

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vpvn/bugreports/internal/modules/service"
)

// seedFile is the layout of a project seed file:
//
//	projects:
//	  - id: test
//	    name: Test buggy project
type seedFile struct {
	Projects []service.CreateProjectInput `yaml:"projects"`
}

func parseSeed(r io.Reader) ([]service.CreateProjectInput, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Projects))
	for i, p := range f.Projects {
		if p.ID == "" {
			return nil, fmt.Errorf("projects[%d]: id is required", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("projects[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return f.Projects, nil
}

func newSeedCmd(container func() *do.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Create or rename projects listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			list, err := parseSeed(f)
			if err != nil {
				return err
			}

			projects, err := do.Invoke[service.ProjectService](container())
			if err != nil {
				return err
			}
			for _, p := range list {
				if err := projects.Upsert(cmd.Context(), p); err != nil {
					return fmt.Errorf("seed project %q: %w", p.ID, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d projects\n", len(list))
			return nil
		},
	}
}
