// Package site serves the embedded dashboard page.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

// Error constants
var (
	ErrServe = errors.New("dashboard site serve failed")
)

// Register attaches the dashboard page and its assets under /. It must be
// registered after every API route.
func Register(_ context.Context, router *mux.Router) {
	if router == nil {
		panic("router is nil")
	}
	router.PathPrefix("/").Handler(http.FileServer(FS())).Methods(http.MethodGet)
}
