package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Bookmark is the core entity: a saved URL classified into a platform,
// decorated for display.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque unique identifier assigned by the upstream API.
	ID string `json:"id"`

	// URL is the normalized absolute URL. Edits never change it.
	URL string `json:"url"`

	// Platform is the classified source site. Always a member of the
	// enumeration; web is the catch-all.
	Platform Platform `json:"platform"`

	// ─────────────────────────────
	// Display fields
	// ─────────────────────────────

	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`

	// Note is the only field the user can mutate after creation.
	Note string `json:"note,omitempty"`

	// ThumbnailURL is the server-provided preview image, if any.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is immutable and drives the default newest-first order.
	CreatedAt time.Time `json:"created_at"`

	// Meta carries platform-specific extended attributes (duration,
	// engagement counts). Opaque to the pipeline, passed through untouched.
	Meta map[string]any `json:"meta,omitempty"`

	// Ref is the video identifier extracted at ingestion time. Memoized here
	// so downstream consumers never re-derive it.
	Ref *VideoRef `json:"-"`
}

// bookmarkWire mirrors Bookmark with a raw id so both numeric and string ids
// from the upstream API decode cleanly.
type bookmarkWire struct {
	ID           json.RawMessage `json:"id"`
	URL          string          `json:"url"`
	Platform     string          `json:"platform"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	Note         string          `json:"note"`
	ThumbnailURL string          `json:"thumbnail_url"`
	CreatedAt    time.Time       `json:"created_at"`
	Meta         map[string]any  `json:"meta"`
}

// UnmarshalJSON decodes a wire record and applies the ingestion-time
// normalization invariants: the id becomes a string, the platform collapses
// into the enumeration, and the video identifier is memoized.
func (b *Bookmark) UnmarshalJSON(data []byte) error {
	var w bookmarkWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	b.ID = decodeID(w.ID)
	b.URL = w.URL
	b.Title = w.Title
	b.Author = w.Author
	b.Note = w.Note
	b.ThumbnailURL = w.ThumbnailURL
	b.CreatedAt = w.CreatedAt
	b.Meta = w.Meta

	b.Ref = ExtractVideoRef(w.URL)
	b.Platform = Classify(w.Platform, b.Ref)

	return nil
}

// decodeID accepts "42" or 42 and returns the string form.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return strings.Trim(string(raw), `"`)
}

// Matches reports whether the bookmark satisfies a case-insensitive
// substring search over title, note and url. An empty term matches.
func (b *Bookmark) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Note), term) ||
		strings.Contains(strings.ToLower(b.URL), term)
}

// Clone returns a copy safe to hand outside the store. Meta is shallow-copied
// because the pipeline never mutates it.
func (b *Bookmark) Clone() *Bookmark {
	c := *b
	if b.Ref != nil {
		ref := *b.Ref
		c.Ref = &ref
	}
	return &c
}
