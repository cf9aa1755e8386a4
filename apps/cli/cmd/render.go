package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <fixture.yaml>",
	Short: "Print the canonical rendering of a fixture request",
	Long: `Print the request of a fixture exactly as the test harness renders it
for comparison: the request line, the headers in order, the content headers,
a blank line and the body.

Examples:
  expectspec render fixtures/list-servers.yaml
  expectspec render fixtures/list-servers.yaml --var endpoint=http://mock
  expectspec render fixtures/list-servers.yaml --provider compute`,
	Args: cobra.ExactArgs(1),
	RunE: renderCommand,
}

func renderCommand(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	vars, err := fixtureVars(settings)
	if err != nil {
		return err
	}

	out, err := renderFixture(args[0], vars)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
