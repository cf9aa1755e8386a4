package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag    string
	providerFlag  string
	providersFlag string
	varFlags      []string
	noColorFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "expectspec",
	Short: "Canonical request renderings for API client tests.",
	Long: `expectspec works with the YAML expectation fixtures used to test API
clients: it renders fixture requests the way the test harness compares them,
diffs two of them, and can send one to a real endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
	},
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitError carries the exit code a command wants.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file (default: search for .expectspec.json)")
	rootCmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "Provider whose defaults fill fixture placeholders")
	rootCmd.PersistentFlags().StringVar(&providersFlag, "providers", "", "YAML file with provider defaults")
	rootCmd.PersistentFlags().StringArrayVar(&varFlags, "var", nil, "Fixture variable as key=value (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
