package handlers

import (
	"net/http"

	"github.com/sava-app/sava/internal/domain"
	"github.com/sava-app/sava/internal/httpserver/deps"
)

type classifyResponse struct {
	URL      string          `json:"url"`
	Platform domain.Platform `json:"platform"`
	VideoID  string          `json:"video_id,omitempty"`
}

// Classify previews normalization and platform detection for a raw URL
// without creating anything. Lets the view show a platform badge while the
// user is still typing.
func Classify(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		normalized, err := domain.Normalize(r.URL.Query().Get("url"))
		if err != nil {
			writeError(w, err)
			return
		}

		resp := classifyResponse{URL: normalized, Platform: d.Detector.Detect(normalized)}
		if ref := domain.ExtractVideoRef(normalized); ref != nil {
			resp.Platform = ref.Platform
			resp.VideoID = ref.ID
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
