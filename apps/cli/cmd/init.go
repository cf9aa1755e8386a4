package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new expectspec project",
	Long: `Initialize a new expectspec project in the current directory.

This creates:
  - .expectspec.json              - Configuration file
  - fixtures/list-servers.yaml    - Example expectation fixture
  - fixtures/servers.json         - Response body of the example

Examples:
  expectspec init
  expectspec init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleFixture = `name: list servers
request:
  method: GET
  target: "{{endpoint}}/servers"
  headers:
    - "Accept: application/json"
    - "Authorization: {{basicAuth(identity, credential)}}"
response:
  status: 200
  message: OK
  payload:
    resource: servers.json
    contentType: application/json
`

const exampleBody = `{"servers":[]}
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	fixtureDir := filepath.Join(cwd, "fixtures")
	fixtureFile := filepath.Join(fixtureDir, "list-servers.yaml")
	bodyFile := filepath.Join(fixtureDir, "servers.json")

	if !forceInit {
		for _, f := range []string{configFile, fixtureFile, bodyFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.Provider = "compute"
	cfg.Identity = "identity"
	cfg.Credential = "credential"
	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.MkdirAll(fixtureDir, 0755); err != nil {
		return fmt.Errorf("failed to create fixtures directory: %w", err)
	}
	if err := os.WriteFile(fixtureFile, []byte(exampleFixture), 0644); err != nil {
		return fmt.Errorf("failed to create example fixture: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", fixtureFile)
	if err := os.WriteFile(bodyFile, []byte(exampleBody), 0644); err != nil {
		return fmt.Errorf("failed to create example body: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", bodyFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nexpectspec project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'expectspec render fixtures/list-servers.yaml' to see the expected request.\n")

	return nil
}
