package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sava-app/sava/internal/domain"
	"github.com/sava-app/sava/internal/httpserver/deps"
	"github.com/sava-app/sava/internal/logger"
)

type thumbnailSignal struct {
	Event string `json:"event"` // "loaded" | "error"
}

// SignalThumbnail advances a record's thumbnail resolver from the view's
// image load outcome and returns the new state plus the next candidate.
func SignalThumbnail(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var sig thumbnailSignal
		if err := json.NewDecoder(r.Body).Decode(&sig); err != nil {
			writeError(w, domain.NewError(domain.KindInvalidRequest, "invalid request body"))
			return
		}

		var loaded bool
		switch sig.Event {
		case "loaded":
			loaded = true
		case "error":
			loaded = false
		default:
			writeError(w, domain.NewError(domain.KindInvalidRequest, "event must be \"loaded\" or \"error\""))
			return
		}

		b, ok := d.Collection.Get(id)
		if !ok {
			writeError(w, domain.NewError(domain.KindNotFound, "bookmark not found"))
			return
		}

		// Materialize the resolver first so a signal arriving before the
		// record was ever listed still counts against the chain.
		res := d.Thumbs.For(b)
		d.Thumbs.Signal(id, loaded)
		d.Logger.Debug("thumbnail signal",
			logger.String("id", id),
			logger.String("event", sig.Event),
		)

		state, url := res.View()
		writeJSON(w, http.StatusOK, thumbnailView{State: state, URL: url})
	}
}
