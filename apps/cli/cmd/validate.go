package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>",
	Short: "Validate expectation fixtures",
	Long: `Check expectation fixtures against the fixture schema and make sure
every placeholder resolves, without rendering them.

Examples:
  expectspec validate fixtures/list-servers.yaml
  expectspec validate ./fixtures/ --provider compute`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
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

	hasErrors := false
	for _, file := range files {
		if _, err := loadFixtureWith(file, vars); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if hasErrors {
		return &exitError{code: ExitFixtureError, err: fmt.Errorf("validation failed")}
	}

	return nil
}
