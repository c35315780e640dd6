package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edgard/a1zero/internal/config"
)

// Registry maps model names to endpoints. It is immutable after creation.
type Registry struct {
	endpoints   map[string]Endpoint
	defaultName string
	names       []string
}

// NewRegistry builds a registry from the models configuration. The default
// model must be one of the configured endpoints.
func NewRegistry(cfg config.ModelsConfig) (*Registry, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("model registry has no endpoints")
	}

	r := &Registry{
		endpoints:   make(map[string]Endpoint, len(cfg.Endpoints)),
		defaultName: normalizeName(cfg.Default),
	}
	for name, ep := range cfg.Endpoints {
		name = normalizeName(name)
		label := ep.Label
		if label == "" {
			label = name
		}
		provider := ep.Provider
		if provider == "" {
			provider = config.ProviderHTTP
		}
		r.endpoints[name] = Endpoint{
			Name:     name,
			Provider: provider,
			URL:      ep.URL,
			Model:    ep.Model,
			Label:    label,
		}
	}

	if _, ok := r.endpoints[r.defaultName]; !ok {
		return nil, fmt.Errorf("default model %q is not registered", cfg.Default)
	}

	r.names = make([]string, 0, len(r.endpoints))
	for name := range r.endpoints {
		if name != r.defaultName {
			r.names = append(r.names, name)
		}
	}
	sort.Strings(r.names)
	r.names = append([]string{r.defaultName}, r.names...)

	return r, nil
}

// Resolve returns the endpoint registered under name. Unknown names resolve
// to the default endpoint and fallback is true.
func (r *Registry) Resolve(name string) (endpoint Endpoint, fallback bool) {
	if ep, ok := r.endpoints[normalizeName(name)]; ok {
		return ep, false
	}
	return r.endpoints[r.defaultName], true
}

// Lookup reports whether name is registered.
func (r *Registry) Lookup(name string) (Endpoint, bool) {
	ep, ok := r.endpoints[normalizeName(name)]
	return ep, ok
}

// Default returns the default endpoint.
func (r *Registry) Default() Endpoint {
	return r.endpoints[r.defaultName]
}

// Names lists registered model names, default first, the rest sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
