package ai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// componentUnescaper undoes the query escapes of the marks that
// encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeText percent-encodes s for use as the tail of an endpoint URL,
// following encodeURIComponent: letters, digits and -_.!~*'() pass through,
// everything else is escaped as UTF-8 bytes and spaces become %20.
func EncodeText(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BuildURL appends the encoded text to an endpoint template.
func BuildURL(template, text string) string {
	return template + EncodeText(text)
}

// httpProvider calls endpoints of the form GET <template><encoded text>.
type httpProvider struct {
	client       *http.Client
	maxBodyBytes int64
	log          *slog.Logger
}

func newHTTPProvider(client *http.Client, maxBodyBytes int64, log *slog.Logger) *httpProvider {
	return &httpProvider{
		client:       client,
		maxBodyBytes: maxBodyBytes,
		log:          log.With("provider", "http"),
	}
}

func (p *httpProvider) Complete(ctx context.Context, endpoint Endpoint, text string) (reply string, err error) {
	if endpoint.URL == "" {
		return "", fmt.Errorf("%w: endpoint %q has no url", ErrUpstream, endpoint.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildURL(endpoint.URL, text), nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to build request for %q: %w", ErrUpstream, endpoint.Name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request to %q failed: %w", ErrUpstream, endpoint.Name, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.log.WarnContext(ctx, "Failed to close response body", "endpoint", endpoint.Name, "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %q returned status %d", ErrUpstream, endpoint.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read body from %q: %w", ErrUpstream, endpoint.Name, err)
	}

	reply, err = ExtractReply(body)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrUpstream, endpoint.Name, err)
	}
	return reply, nil
}
