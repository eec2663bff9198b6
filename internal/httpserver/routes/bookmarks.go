package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sava-app/sava/internal/httpserver/deps"
	"github.com/sava-app/sava/internal/httpserver/handlers"
	"github.com/sava-app/sava/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/bookmarks", handlers.ListBookmarks(d))

	mutations := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.MutationBurst,
		RefillPerIPPerMin: d.MutationRefillPerMin,
		MaxEntries:        4096,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	}))
	mutations.Post("/bookmarks", handlers.CreateBookmark(d))
	mutations.Patch("/bookmarks/{id}", handlers.UpdateBookmark(d))
	mutations.Delete("/bookmarks/{id}", handlers.DeleteBookmark(d))
}
