package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List expectation fixtures",
	Long: `List the expectation fixtures found in files or directories with the
request each one expects.

Examples:
  expectspec list fixtures/list-servers.yaml
  expectspec list ./fixtures/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no .yaml or .yml files found")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	vars, err := fixtureVars(settings)
	if err != nil {
		return err
	}

	for _, file := range files {
		e, err := loadFixtureWith(file, vars)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error loading %s: %v\n", file, err)
			continue
		}

		name := e.Name
		if name == "" {
			name = e.Request.RequestLine()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n  - %s\n", file, name)
		if e.Response != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "    responds: %s\n", e.Response.StatusLine())
		}
	}

	return nil
}
