package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sava-app/sava/internal/httpserver/deps"
	"github.com/sava-app/sava/internal/httpserver/handlers"
	"github.com/sava-app/sava/internal/httpserver/mw"
)

func init() { Register(registerDiagnostics) }

func registerDiagnostics(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/diagnostics", handlers.Diagnostics(d))
}
