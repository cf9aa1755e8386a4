package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
	"github.com/abdul-hamid-achik/expectspec/packages/expect"
	"github.com/abdul-hamid-achik/expectspec/packages/rest"
)

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isFixtureFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if isFixtureFile(arg) {
			files = append(files, arg)
		}
	}

	return files, nil
}

func isFixtureFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// loadSettings returns the config file merged over the selected provider's
// defaults.
func loadSettings() (*config.Config, error) {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: fmt.Errorf("loading config: %w", err)}
	}

	id := providerFlag
	if id == "" {
		id = fileConfig.Provider
	}
	if id == "" {
		return fileConfig, nil
	}

	providers, err := rest.DefaultProviders()
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}
	if providersFlag != "" {
		extra, err := config.LoadProvidersFile(providersFlag)
		if err != nil {
			return nil, &exitError{code: ExitConfigError, err: err}
		}
		providers = providers.Merge(extra)
	}
	p, ok := providers.Lookup(id)
	if !ok {
		return nil, &exitError{code: ExitConfigError, err: fmt.Errorf("unknown provider %q; known providers: %v", id, providers.Names())}
	}

	return config.DefaultConfig().Merge(p.Config(id)).Merge(fileConfig), nil
}

// fixtureVars returns the placeholder values for settings, overridden by
// --var flags.
func fixtureVars(settings *config.Config) (map[string]any, error) {
	vars := map[string]any{}
	set := func(k, v string) {
		if v != "" {
			vars[k] = v
		}
	}
	set("provider", settings.Provider)
	set("endpoint", settings.Endpoint)
	set("apiVersion", settings.APIVersion)
	set("identity", settings.Identity)
	set("credential", settings.Credential)
	for k, v := range settings.Properties {
		vars[k] = v
	}

	for _, kv := range varFlags {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, &exitError{code: ExitUsageError, err: fmt.Errorf("invalid --var %q, want key=value", kv)}
		}
		vars[k] = v
	}
	return vars, nil
}

// loadFixture loads the fixture at path with placeholders resolved from the
// command line settings.
func loadFixture(path string) (*expect.Expectation, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	vars, err := fixtureVars(settings)
	if err != nil {
		return nil, err
	}
	return loadFixtureWith(path, vars)
}

func loadFixtureWith(path string, vars map[string]any) (*expect.Expectation, error) {
	e, err := expect.LoadExpectation(os.DirFS(filepath.Dir(path)), filepath.Base(path), vars)
	if err != nil {
		return nil, &exitError{code: ExitFixtureError, err: err}
	}
	return e, nil
}

func renderFixture(path string, vars map[string]any) (string, error) {
	e, err := loadFixtureWith(path, vars)
	if err != nil {
		return "", err
	}
	out, err := expect.Render(e.Request)
	if e.Request.Payload != nil {
		_ = e.Request.Payload.Release()
	}
	if err != nil {
		return "", &exitError{code: ExitFixtureError, err: err}
	}
	return out, nil
}
