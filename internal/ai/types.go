// Package ai resolves model names to AI endpoints and performs single-shot
// text completions against them.
package ai

import (
	"context"
	"errors"
)

// ErrUpstream wraps every failure that happens while asking an endpoint for a
// completion: building the request, the network call, a non-2xx status, or an
// unreadable body. Callers collapse it into one user-facing message.
var ErrUpstream = errors.New("upstream failure")

// ErrMalformedBody is returned by ExtractReply for bodies that are not JSON.
var ErrMalformedBody = errors.New("malformed response body")

// Endpoint is one resolved entry of the model registry.
type Endpoint struct {
	Name     string
	Provider string
	// URL is the template the percent-encoded text is appended to (http provider).
	URL string
	// Model is the upstream model id (gemini provider).
	Model string
	Label string
}

// Client performs one completion for text against an endpoint.
type Client interface {
	Complete(ctx context.Context, endpoint Endpoint, text string) (string, error)
}
