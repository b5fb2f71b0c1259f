package generation

import (
	"context"
	"errors"
	"fmt"
)

// Request is a single JSON-only completion request.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
}

// Provider sends a completion request to a text generation backend and
// returns the raw response text.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

var (
	ErrProviderRequired = errors.New("generation: provider not configured")
	ErrEmptyResponse    = errors.New("generation: empty response")
	ErrMalformedJSON    = errors.New("generation: response is not a JSON object")
)

// UpstreamError reports a non-success response from a provider.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generation: %s returned status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("generation: %s returned status %d: %s", e.Provider, e.Status, e.Message)
}

// ProviderFunc adapts a function to Provider, mainly for tests.
type ProviderFunc func(ctx context.Context, req Request) (string, error)

func (f ProviderFunc) Name() string { return "func" }

func (f ProviderFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
