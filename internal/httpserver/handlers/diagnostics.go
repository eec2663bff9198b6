package handlers

import (
	"net/http"

	"github.com/sava-app/sava/internal/httpserver/deps"
)

// Diagnostics exposes collection internals for operators.
func Diagnostics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, d.Collection.Diagnostics())
	}
}
