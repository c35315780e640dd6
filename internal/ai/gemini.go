package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// GeminiOptions configures the gemini provider.
type GeminiOptions struct {
	APIKey  string
	Timeout time.Duration
	// BaseURL overrides the API host; empty uses the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// geminiProvider sends the raw text as a single user turn to a Gemini model.
type geminiProvider struct {
	client  *genai.Client
	timeout time.Duration
	log     *slog.Logger
}

func newGeminiProvider(ctx context.Context, opts GeminiOptions, log *slog.Logger) (*geminiProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	gc, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiProvider{
		client:  gc,
		timeout: opts.Timeout,
		log:     log.With("provider", "gemini"),
	}, nil
}

func (p *geminiProvider) Complete(ctx context.Context, endpoint Endpoint, text string) (string, error) {
	if endpoint.Model == "" {
		return "", fmt.Errorf("%w: endpoint %q has no model", ErrUpstream, endpoint.Name)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.Models.GenerateContent(ctx, endpoint.Model, genai.Text(text), nil)
	if err != nil {
		return "", fmt.Errorf("%w: gemini request to %q failed: %w", ErrUpstream, endpoint.Name, err)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("%w: %q blocked the prompt: %v", ErrUpstream, endpoint.Name, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		p.log.WarnContext(ctx, "Gemini response missing candidates or content", "endpoint", endpoint.Name)
		return "", fmt.Errorf("%w: %q returned no content", ErrUpstream, endpoint.Name)
	}

	reply := resp.Text()
	if reply == "" {
		return "", fmt.Errorf("%w: %q returned empty text", ErrUpstream, endpoint.Name)
	}
	return reply, nil
}
