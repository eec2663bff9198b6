package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sava-app/sava/internal/httpserver/deps"
	"github.com/sava-app/sava/internal/httpserver/handlers"
)

func init() { Register(registerThumbnails) }

func registerThumbnails(r chi.Router, d deps.Deps) {
	r.Post("/bookmarks/{id}/thumbnail", handlers.SignalThumbnail(d))
}
