package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/wiring"
)

var sendVerboseFlag bool

var sendCmd = &cobra.Command{
	Use:   "send <fixture.yaml>",
	Short: "Send a fixture request over the network",
	Long: `Send the request of a fixture to its target with the real transport:
connection pooling, retries with backoff and the settings of the config file.
The response is printed. When the fixture declares a response, a different
status code exits with status 1.

Examples:
  expectspec send fixtures/list-servers.yaml --provider compute
  expectspec send fixtures/list-servers.yaml --var endpoint=http://localhost:8774 -v`,
	Args: cobra.ExactArgs(1),
	RunE: sendCommand,
}

func init() {
	sendCmd.Flags().BoolVarP(&sendVerboseFlag, "verbose", "v", false, "Log the request and response headers")
}

// keepResponse hands every response to the caller.
type keepResponse struct{}

func (keepResponse) Handle(*http.Command, *http.Response) error { return nil }

func sendCommand(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if sendVerboseFlag {
		settings = settings.Merge(&config.Config{Verbose: config.BoolPtr(true)})
	}
	vars, err := fixtureVars(settings)
	if err != nil {
		return err
	}
	e, err := loadFixtureWith(args[0], vars)
	if err != nil {
		return err
	}

	roles := wiring.Compose(wiring.Defaults(settings), wiring.Overlay{Name: "cli", ErrorHandler: keepResponse{}})
	defer roles.Shutdown()

	resp, err := roles.Build().Execute(cmd.Context(), e.Request)
	if err != nil {
		return &exitError{code: ExitNetworkError, err: err}
	}

	if err := printResponse(cmd.OutOrStdout(), resp); err != nil {
		return err
	}

	if e.Response != nil && e.Response.StatusCode != resp.StatusCode {
		return &exitError{
			code: ExitMismatch,
			err:  fmt.Errorf("expected status %d, got %d", e.Response.StatusCode, resp.StatusCode),
		}
	}
	return nil
}

func printResponse(w io.Writer, resp *http.Response) error {
	status := color.New(color.FgGreen, color.Bold).SprintFunc()
	if !resp.IsSuccess() {
		status = color.New(color.FgRed, color.Bold).SprintFunc()
	}
	dim := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", status(resp.StatusLine()), dim(fmt.Sprintf("(%dms)", resp.DurationMs())))
	for _, h := range resp.Headers.Entries() {
		fmt.Fprintf(w, "%s: %s\n", h.Name, h.Value)
	}
	fmt.Fprintln(w)

	body, err := resp.Body()
	if err != nil {
		return err
	}
	if len(body) > 0 {
		fmt.Fprintln(w, string(body))
	}
	return nil
}
