package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/edgard/a1zero/internal/config"
)

// provider is implemented by each backend kind.
type provider interface {
	Complete(ctx context.Context, endpoint Endpoint, text string) (string, error)
}

// multiClient routes a completion to the provider named by the endpoint.
type multiClient struct {
	providers map[string]provider
	log       *slog.Logger
}

// Options tunes NewClient. Zero values use the configuration.
type Options struct {
	HTTPClient    *http.Client
	GeminiBaseURL string
}

// NewClient builds a Client able to serve every provider present in the
// registry. The gemini SDK client is only created when a gemini endpoint is
// configured.
func NewClient(ctx context.Context, cfg *config.Config, registry *Registry, log *slog.Logger, opts Options) (Client, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "ai_client")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.AI.Timeout}
	}

	c := &multiClient{
		providers: map[string]provider{
			config.ProviderHTTP: newHTTPProvider(httpClient, cfg.AI.MaxBodyBytes, log),
		},
		log: log,
	}

	for _, name := range registry.Names() {
		ep, _ := registry.Lookup(name)
		if ep.Provider != config.ProviderGemini {
			continue
		}
		gp, err := newGeminiProvider(ctx, GeminiOptions{
			APIKey:     cfg.AI.GeminiAPIKey,
			Timeout:    cfg.AI.Timeout,
			BaseURL:    opts.GeminiBaseURL,
			HTTPClient: opts.HTTPClient,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini provider: %w", err)
		}
		c.providers[config.ProviderGemini] = gp
		break
	}

	log.Info("AI client initialized", "providers", len(c.providers), "models", registry.Names())
	return c, nil
}

func (c *multiClient) Complete(ctx context.Context, endpoint Endpoint, text string) (string, error) {
	p, ok := c.providers[endpoint.Provider]
	if !ok {
		return "", fmt.Errorf("%w: no provider %q for endpoint %q", ErrUpstream, endpoint.Provider, endpoint.Name)
	}
	return p.Complete(ctx, endpoint, text)
}
