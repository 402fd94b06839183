package render

import "errors"

var (
	// ErrUnsupported is returned when a format cannot draw a chart kind.
	ErrUnsupported = errors.New("chart kind not supported by format")

	// ErrNoChart is returned for results that only carry warnings.
	ErrNoChart = errors.New("result has no chart")
)
