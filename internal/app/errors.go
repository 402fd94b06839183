package service

import (
	"errors"

	"github.com/okian/medalboard/internal/domain/stats"
)

// Sentinel kinds for dashboard errors.
var (
	ErrNotStarted       = errors.New("dashboard not started")
	ErrNotFound         = errors.New("not found")
	ErrUnknownSelection = errors.New("unknown selection")

	// ErrInsufficientVariation is re-exported so hosts need not import stats.
	ErrInsufficientVariation = stats.ErrInsufficientVariation
)

// errorType labels an error for metrics.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientVariation):
		return "insufficient_variation"
	case errors.Is(err, ErrUnknownSelection):
		return "unknown_selection"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	default:
		return "internal"
	}
}
