package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sava-app/sava/internal/httpserver/deps"
	"github.com/sava-app/sava/internal/httpserver/handlers"
)

func init() { Register(registerClassify) }

func registerClassify(r chi.Router, d deps.Deps) {
	r.Get("/classify", handlers.Classify(d))
}
