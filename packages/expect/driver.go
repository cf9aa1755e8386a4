package expect

import (
	"sync"

	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/rest"
	"github.com/abdul-hamid-achik/expectspec/packages/wiring"
)

// Driver builds clients of type S that answer exactly one expected request.
type Driver[S any] struct {
	t          require.TestingT
	registry   *rest.Registry
	providers  *config.Providers
	wiring     func() wiring.Overlay
	properties func() *config.Config

	spec    *rest.ContextSpec
	specErr error
}

// DriverOption configures a Driver.
type DriverOption func(*driverOptions)

type driverOptions struct {
	registry   *rest.Registry
	providers  *config.Providers
	wiring     func() wiring.Overlay
	properties func() *config.Config
}

// WithRegistry sets the registry provider sources are looked up in.
func WithRegistry(r *rest.Registry) DriverOption {
	return func(o *driverOptions) {
		o.registry = r
	}
}

// WithProviders replaces the embedded provider defaults.
func WithProviders(p *config.Providers) DriverOption {
	return func(o *driverOptions) {
		o.providers = p
	}
}

// WithWiring adds an overlay, built fresh for every client, on top of the
// expectation wiring. A client created with its own overlay does not use it.
func WithWiring(fn func() wiring.Overlay) DriverOption {
	return func(o *driverOptions) {
		o.wiring = fn
	}
}

// WithProperties sets the settings every client starts from. A client
// created with its own settings does not use them.
func WithProperties(fn func() *config.Config) DriverOption {
	return func(o *driverOptions) {
		o.properties = fn
	}
}

// NewDriver resolves source once. Failures surface from the CreateClient
// methods. Mismatches are reported through t; t may be nil, in which case
// they are only returned.
func NewDriver[S any](t require.TestingT, source rest.Source, opts ...DriverOption) *Driver[S] {
	o := &driverOptions{}
	for _, opt := range opts {
		opt(o)
	}

	d := &Driver[S]{
		t:          t,
		registry:   o.registry,
		providers:  o.providers,
		wiring:     o.wiring,
		properties: o.properties,
	}
	if d.providers == nil {
		d.providers, d.specErr = rest.DefaultProviders()
		if d.specErr != nil {
			return d
		}
	}
	d.spec, d.specErr = rest.ResolveContextSpec(source, d.registry, d.providers)
	return d
}

// CreateClient returns a client that answers expected with canned.
func (d *Driver[S]) CreateClient(expected *http.Request, canned *http.Response) (S, error) {
	return d.CreateClientWith(expected, canned, wiring.Overlay{}, nil)
}

// CreateClientWithWiring is CreateClient with extra in place of the
// driver's WithWiring overlay.
func (d *Driver[S]) CreateClientWithWiring(expected *http.Request, canned *http.Response, extra wiring.Overlay) (S, error) {
	return d.CreateClientWith(expected, canned, extra, nil)
}

// CreateClientWithProperties is CreateClient with props in place of the
// driver's WithProperties settings.
func (d *Driver[S]) CreateClientWithProperties(expected *http.Request, canned *http.Response, props *config.Config) (S, error) {
	return d.CreateClientWith(expected, canned, wiring.Overlay{}, props)
}

// CreateClientWith returns a client that answers expected with canned. A
// non-zero extra replaces the driver's overlay and a non-nil props replaces
// the driver's settings.
func (d *Driver[S]) CreateClientWith(expected *http.Request, canned *http.Response, extra wiring.Overlay, props *config.Config) (S, error) {
	if expected.Payload != nil {
		if c, ok := d.t.(cleanupT); ok {
			c.Cleanup(func() { _ = expected.Payload.Release() })
		}
	}
	return d.ClientFor(d.compare(expected, canned), extra, props)
}

// ClientFor returns a client whose requests are answered by fn. extra and
// props replace the driver level overlay and settings as in CreateClientWith.
func (d *Driver[S]) ClientFor(fn Func, extra wiring.Overlay, props *config.Config) (S, error) {
	var zero S
	if d.specErr != nil {
		return zero, d.specErr
	}

	overlays := []wiring.Overlay{Overlay(fn), NullLogging()}
	switch {
	case !extra.IsZero():
		overlays = append(overlays, extra)
	case d.wiring != nil:
		overlays = append(overlays, d.wiring())
	}

	settings := props
	if settings == nil && d.properties != nil {
		settings = d.properties()
	}

	ctx, err := rest.Assemble(d.spec, overlays, settings)
	if err != nil {
		return zero, err
	}
	if c, ok := d.t.(cleanupT); ok {
		c.Cleanup(ctx.Close)
	}
	return rest.API[S](ctx)
}

// compare answers requests that render like expected with canned. The
// expected request is rendered once, on first use, and its payload released.
// An expected payload that is never rendered is released when the test
// cleans up.
func (d *Driver[S]) compare(expected *http.Request, canned *http.Response) Func {
	var (
		once    sync.Once
		want    string
		wantErr error
	)
	return func(actual *http.Request) (*http.Response, error) {
		once.Do(func() {
			want, wantErr = Render(expected)
			if expected.Payload != nil {
				_ = expected.Payload.Release()
			}
		})
		if wantErr != nil {
			return nil, d.fail(wantErr)
		}

		got, err := Render(actual)
		if err != nil {
			return nil, d.fail(err)
		}
		if got != want {
			return nil, d.fail(&MismatchError{Actual: got, Expected: want})
		}
		return canned, nil
	}
}

type tHelper interface {
	Helper()
}

type cleanupT interface {
	Cleanup(func())
}

// fail reports err through t and returns it. With a *testing.T the report
// stops the test goroutine and fail does not return.
func (d *Driver[S]) fail(err error) error {
	if d.t == nil {
		return err
	}
	if h, ok := d.t.(tHelper); ok {
		h.Helper()
	}
	require.Fail(d.t, err.Error())
	return err
}
