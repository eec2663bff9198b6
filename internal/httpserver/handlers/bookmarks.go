package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sava-app/sava/internal/domain"
	"github.com/sava-app/sava/internal/httpserver/deps"
	"github.com/sava-app/sava/internal/logger"
	"github.com/sava-app/sava/internal/query"
	"github.com/sava-app/sava/internal/thumb"
)

// thumbnailView is the resolver state exposed to the rendering surface.
type thumbnailView struct {
	State thumb.State `json:"state"`
	URL   string      `json:"url,omitempty"`
}

// bookmarkView decorates a record with its current thumbnail resolution.
type bookmarkView struct {
	ID           string          `json:"id"`
	URL          string          `json:"url"`
	Platform     domain.Platform `json:"platform"`
	Title        string          `json:"title,omitempty"`
	Author       string          `json:"author,omitempty"`
	Note         string          `json:"note,omitempty"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Meta         map[string]any  `json:"meta,omitempty"`
	Thumbnail    thumbnailView   `json:"thumbnail"`
}

type listResponse struct {
	Bookmarks []bookmarkView `json:"bookmarks"`
	Counts    query.Counts   `json:"counts"`
}

func toView(b *domain.Bookmark, thumbs *thumb.Registry) bookmarkView {
	state, url := thumbs.For(b).View()
	tv := thumbnailView{State: state, URL: url}
	return bookmarkView{
		ID:           b.ID,
		URL:          b.URL,
		Platform:     b.Platform,
		Title:        b.Title,
		Author:       b.Author,
		Note:         b.Note,
		ThumbnailURL: b.ThumbnailURL,
		CreatedAt:    b.CreatedAt,
		Meta:         b.Meta,
		Thumbnail:    tv,
	}
}

// ListBookmarks serves the rendering contract: the filtered ordered sequence
// plus per-platform counts over the full collection.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.TrimSpace(r.URL.Query().Get("q"))
		rawPlatform := strings.TrimSpace(r.URL.Query().Get("platform"))

		var platform domain.Platform
		if rawPlatform != "" {
			platform = domain.Platform(strings.ToLower(rawPlatform))
			if !platform.Valid() {
				writeError(w, domain.NewError(domain.KindInvalidRequest, "unknown platform: "+rawPlatform))
				return
			}
		}

		collection := d.Collection.All()
		filtered := query.Filter(collection, term, platform)

		views := make([]bookmarkView, 0, len(filtered))
		for _, b := range filtered {
			views = append(views, toView(b, d.Thumbs))
		}

		writeJSON(w, http.StatusOK, listResponse{
			Bookmarks: views,
			Counts:    query.Count(collection),
		})
	}
}

type createRequest struct {
	URL  string `json:"url"`
	Note string `json:"note"`
}

// CreateBookmark validates, submits upstream and returns the confirmed
// record. Validation failures never leave the process.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.NewError(domain.KindInvalidRequest, "invalid request body"))
			return
		}

		created, err := d.Coordinator.Create(r.Context(), req.URL, req.Note)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toView(created, d.Thumbs))
	}
}

type updateRequest struct {
	Note string `json:"note"`
}

// UpdateBookmark edits a note. The response body is the server's canonical
// record; a 204 means the record was already gone and the edit is satisfied.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.NewError(domain.KindInvalidRequest, "invalid request body"))
			return
		}

		updated, err := d.Coordinator.UpdateNote(r.Context(), id, req.Note)
		if err != nil {
			writeError(w, err)
			return
		}
		if updated == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, toView(updated, d.Thumbs))
	}
}

// DeleteBookmark removes a record. Idempotent from the caller's view.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := d.Coordinator.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		d.Logger.Debug("delete confirmed", logger.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
