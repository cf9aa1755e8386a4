package config

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Provider holds the registered defaults of one provider.
type Provider struct {
	Endpoint   string            `yaml:"endpoint"`
	APIVersion string            `yaml:"apiVersion"`
	Identity   string            `yaml:"identity,omitempty"`
	Credential string            `yaml:"credential,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Providers maps provider ids to their defaults.
type Providers struct {
	Providers map[string]Provider `yaml:"providers"`
}

// LoadProviders decodes a providers document.
func LoadProviders(r io.Reader) (*Providers, error) {
	var p Providers
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding providers: %w", err)
	}
	if p.Providers == nil {
		p.Providers = make(map[string]Provider)
	}
	return &p, nil
}

// LoadProvidersFile reads a providers document from path.
func LoadProvidersFile(path string) (*Providers, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadProviders(f)
}

// Lookup returns the defaults of a provider.
func (p *Providers) Lookup(id string) (Provider, bool) {
	if p == nil {
		return Provider{}, false
	}
	v, ok := p.Providers[id]
	return v, ok
}

// Names returns the sorted provider ids.
func (p *Providers) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Providers))
	for name := range p.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns the union of both documents; entries of other replace whole
// provider entries of p.
func (p *Providers) Merge(other *Providers) *Providers {
	out := &Providers{Providers: make(map[string]Provider)}
	if p != nil {
		for k, v := range p.Providers {
			out.Providers[k] = v
		}
	}
	if other != nil {
		for k, v := range other.Providers {
			out.Providers[k] = v
		}
	}
	return out
}

// Config returns the provider defaults as a Config.
func (p Provider) Config(id string) *Config {
	return &Config{
		Provider:   id,
		Endpoint:   p.Endpoint,
		APIVersion: p.APIVersion,
		Identity:   p.Identity,
		Credential: p.Credential,
		Properties: copyMap(p.Properties),
	}
}
