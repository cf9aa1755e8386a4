package rest

import (
	"context"
	"fmt"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
	"github.com/abdul-hamid-achik/expectspec/packages/executor"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/logging"
	"github.com/abdul-hamid-achik/expectspec/packages/wiring"
)

// Env is what client factories build clients from.
type Env struct {
	Provider     string
	Endpoint     string
	APIVersion   string
	Identity     string
	Credential   string
	Config       *config.Config
	Logger       logging.Logger
	UserExecutor executor.Executor

	service http.ExecutionService
}

// Execute sends req through the assembled execution service.
func (e *Env) Execute(ctx context.Context, req *http.Request) (*http.Response, error) {
	return e.service.Execute(ctx, req)
}

// Context is an assembled client.
type Context struct {
	env   *Env
	roles wiring.Roles
	api   any
	async any
}

// Env returns the environment the client was built from.
func (c *Context) Env() *Env { return c.env }

// AsyncAPI returns the async client.
func (c *Context) AsyncAPI() any { return c.async }

// Close shuts down the executors of the context.
func (c *Context) Close() {
	c.roles.Shutdown()
}

// API returns the sync client of c as S.
func API[S any](c *Context) (S, error) {
	api, ok := c.api.(S)
	if !ok {
		var zero S
		return zero, fmt.Errorf("client of provider %s has type %T", c.env.Provider, c.api)
	}
	return api, nil
}

// Assemble builds a client. Settings are spec defaults merged with cfg, cfg
// winning. Roles are the defaults for those settings, then the provider
// overlays, then overlays, in order.
func Assemble(spec *ContextSpec, overlays []wiring.Overlay, cfg *config.Config) (*Context, error) {
	settings := config.DefaultConfig().Merge(spec.Config).Merge(cfg)
	if settings.Endpoint == "" {
		return nil, fmt.Errorf("provider %s: no endpoint configured", spec.Provider)
	}

	all := append(append([]wiring.Overlay(nil), spec.Overlays...), overlays...)
	roles := wiring.Compose(wiring.Defaults(settings), all...)

	env := &Env{
		Provider:     spec.Provider,
		Endpoint:     settings.Endpoint,
		APIVersion:   settings.APIVersion,
		Identity:     settings.Identity,
		Credential:   settings.Credential,
		Config:       settings,
		Logger:       roles.Logger,
		UserExecutor: roles.UserExecutor,
		service:      roles.Build(),
	}

	async, err := spec.Binding.async(env)
	if err != nil {
		return nil, fmt.Errorf("provider %s: building async client: %w", spec.Provider, err)
	}
	api, err := spec.Binding.sync(env, async)
	if err != nil {
		return nil, fmt.Errorf("provider %s: building client: %w", spec.Provider, err)
	}

	return &Context{env: env, roles: roles, api: api, async: async}, nil
}
