package stats

import "errors"

var (
	// ErrInsufficientVariation is returned when a fit has fewer than two
	// observations or fewer than two distinct x values.
	ErrInsufficientVariation = errors.New("insufficient variation")

	// ErrLengthMismatch is returned when paired inputs differ in length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrEmpty is returned when a summary has no values.
	ErrEmpty = errors.New("no values")
)
