package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sava-app/sava/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready       bool       `json:"ready"`
	LastRefresh *time.Time `json:"last_refresh,omitempty"`
}

// Readyz reports ready once the collection has been populated at least
// once, whether from the upstream API or the warm-start cache.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last := d.Collection.LastRefresh()
		resp := readyzResponse{Ready: !last.IsZero()}
		if resp.Ready {
			resp.LastRefresh = &last
		}

		w.Header().Set("Content-Type", "application/json")
		if !resp.Ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
