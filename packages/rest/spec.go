package rest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
	"github.com/abdul-hamid-achik/expectspec/packages/wiring"
)

// Settings used for clients declared by their factories rather than by a
// registered provider.
const (
	MockProvider   = "mock"
	MockEndpoint   = "http://mock"
	MockAPIVersion = "1"
	MockIdentity   = "userfoo"
)

// Settings used for registered providers when nothing else sets them.
const (
	DefaultIdentity   = "identity"
	DefaultCredential = "credential"
)

//go:embed providers.yaml
var defaultProviders []byte

// DefaultProviders returns the provider defaults shipped with the module.
func DefaultProviders() (*config.Providers, error) {
	return config.LoadProviders(bytes.NewReader(defaultProviders))
}

// Source says where the client factories come from. It is either Types or
// Provider.
type Source interface {
	isSource()
}

// Types declares the client factories directly.
type Types struct {
	Binding Binding
}

// Provider names a registered provider.
type Provider struct {
	ID string
}

func (Types) isSource()    {}
func (Provider) isSource() {}

// ContextSpec is a resolved Source: the factories, the provider overlays and
// the settings that come with them.
type ContextSpec struct {
	Provider string
	Binding  Binding
	Overlays []wiring.Overlay
	Config   *config.Config
}

// ResolveContextSpec resolves src. Provider sources are looked up in registry
// and take their defaults from providers.
func ResolveContextSpec(src Source, registry *Registry, providers *config.Providers) (*ContextSpec, error) {
	switch s := src.(type) {
	case Types:
		if s.Binding.IsZero() {
			return nil, errors.New("types source has no binding")
		}
		return &ContextSpec{
			Provider: MockProvider,
			Binding:  s.Binding,
			Config: &config.Config{
				Provider:   MockProvider,
				Endpoint:   MockEndpoint,
				APIVersion: MockAPIVersion,
				Identity:   MockIdentity,
			},
		}, nil

	case Provider:
		if registry == nil {
			return nil, &UnknownProviderError{Provider: s.ID}
		}
		reg, ok := registry.Lookup(s.ID)
		if !ok {
			return nil, &UnknownProviderError{Provider: s.ID, Known: registry.Names()}
		}
		cfg := &config.Config{
			Provider:   s.ID,
			Identity:   DefaultIdentity,
			Credential: DefaultCredential,
		}
		if p, ok := providers.Lookup(s.ID); ok {
			cfg = cfg.Merge(p.Config(s.ID))
		}
		return &ContextSpec{
			Provider: s.ID,
			Binding:  reg.Binding,
			Overlays: reg.Overlays,
			Config:   cfg,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported source %T", src)
	}
}
