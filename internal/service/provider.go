package service

import (
	"context"
	"fmt"
)

// Provider is the text-generation capability the pipeline runs against.
// Implementations are stateless per call and never retry internally;
// resilience belongs to RetryPolicy.
type Provider interface {
	// Generate sends one prompt to the backend and returns the raw completion
	// text. Transport and API failures come back as *ProviderError so callers
	// can classify them.
	Generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error)
	Name() string
}

// Embedder turns text into an embedding vector for topic retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type ErrorKind string

const (
	KindRateLimited  ErrorKind = "rate_limited"
	KindUnauthorized ErrorKind = "unauthorized"
	KindServerError  ErrorKind = "server_error"
	KindUnknown      ErrorKind = "unknown"
)

// ProviderError is a classified failure from a Provider.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transient reports whether a retry has a chance of succeeding.
// Only rate limiting and server-side failures qualify.
func (e *ProviderError) Transient() bool {
	return e.Kind == KindRateLimited || e.Kind == KindServerError
}

// classifyStatus maps an HTTP status from a provider to an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == 429:
		return KindRateLimited
	case status == 401 || status == 403:
		return KindUnauthorized
	case status >= 500:
		return KindServerError
	default:
		return KindUnknown
	}
}
