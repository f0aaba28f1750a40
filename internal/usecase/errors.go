package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/prepwise/interview-api/internal/service"
)

// Caller errors. Handlers map these onto 4xx responses.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("interview not found")
	ErrForbidden    = errors.New("not authorized for this interview")
	ErrConflict     = errors.New("interview has already been completed")
)

// Provider-facing failures, already translated to user-facing reasons.
var (
	ErrRateLimited   = errors.New("AI service is rate limited. Please try again in a moment")
	ErrMisconfigured = errors.New("AI service authentication failed. Please contact support")
	ErrUnavailable   = errors.New("AI service is temporarily unavailable. Please try again later")
	ErrUnparseable   = errors.New("unparseable AI response")

	errGenerationFailed = errors.New("failed to generate questions")
	errEvaluationFailed = errors.New("failed to evaluate answers")
)

// mapProviderError translates a pipeline failure into the user-facing reason
// for its kind. Cancellation and parse failures keep their own identity;
// anything unclassified falls back to a generic failure for the operation.
func mapProviderError(err error, fallback error) error {
	if errors.Is(err, service.ErrMalformedResponse) {
		return fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pErr *service.ProviderError
	if errors.As(err, &pErr) {
		switch pErr.Kind {
		case service.KindRateLimited:
			return ErrRateLimited
		case service.KindUnauthorized:
			return ErrMisconfigured
		case service.KindServerError:
			return ErrUnavailable
		}
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
