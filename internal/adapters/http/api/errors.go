package api

import (
	"errors"
	"net/http"

	"github.com/okian/medalboard/internal/adapters/render"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/domain/selection"
)

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("http serve failed")
	ErrBadRequest = errors.New("bad request")
)

// statusFor maps an error to an HTTP status and a short error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, selection.ErrBadSelection), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInsufficientVariation):
		return http.StatusUnprocessableEntity, "insufficient_variation"
	case errors.Is(err, render.ErrNoChart):
		return http.StatusUnprocessableEntity, "no_chart"
	case errors.Is(err, render.ErrUnsupported):
		return http.StatusUnsupportedMediaType, "unsupported_format"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_started"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
