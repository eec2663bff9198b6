package thumb

import (
	"fmt"
	"sync"

	"github.com/sava-app/sava/internal/domain"
)

// State of a resolver. Loaded and Placeholder are terminal.
type State string

const (
	StatePending     State = "pending"
	StateLoaded      State = "loaded"
	StatePlaceholder State = "placeholder"
)

// youtubeQualities is the degrading-quality candidate chain generated off a
// video id, highest resolution first.
var youtubeQualities = []string{
	"maxresdefault",
	"sddefault",
	"hqdefault",
	"mqdefault",
}

// Candidates builds the ordered fallback chain for a bookmark.
//
// YouTube ids expand into the four-level generated chain; every other
// platform uses the server-provided thumbnail when present. An empty chain
// means the resolver starts in the placeholder state.
func Candidates(b *domain.Bookmark) []string {
	if b.Ref != nil && b.Ref.Platform == domain.PlatformYouTube && b.Ref.ID != "" {
		chain := make([]string, 0, len(youtubeQualities))
		for _, q := range youtubeQualities {
			chain = append(chain, fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", b.Ref.ID, q))
		}
		return chain
	}
	if b.ThumbnailURL != "" {
		return []string{b.ThumbnailURL}
	}
	return nil
}

// Resolver walks a candidate chain in response to asynchronous load/error
// signals from the rendering surface. It never blocks, never revisits a
// failed candidate, and settles in a terminal state after at most
// len(candidates) failure events.
//
// List renders read resolver state while signal requests mutate it, so the
// resolver carries its own lock.
type Resolver struct {
	mu         sync.Mutex
	candidates []string
	index      int
	state      State

	// key identifies the underlying chain so a changed identifier resets the
	// walk instead of continuing a stale one.
	key string
}

// NewResolver starts a resolver at candidate index 0, or directly in the
// placeholder state when the bookmark has no candidates at all.
func NewResolver(b *domain.Bookmark) *Resolver {
	chain := Candidates(b)
	r := &Resolver{candidates: chain, key: chainKey(b)}
	if len(chain) == 0 {
		r.state = StatePlaceholder
	} else {
		r.state = StatePending
	}
	return r
}

// State returns the current state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Current returns the candidate URL to render. ok is false in the
// placeholder state, where the view falls back to the platform glyph.
func (r *Resolver) Current() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePlaceholder {
		return "", false
	}
	return r.candidates[r.index], true
}

// View returns the state and the candidate URL as one consistent snapshot.
func (r *Resolver) View() (State, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePlaceholder {
		return r.state, ""
	}
	return r.state, r.candidates[r.index]
}

// OnLoad marks the current candidate as successfully rendered. Terminal: no
// further fallback is attempted afterwards, even if an error signal arrives.
func (r *Resolver) OnLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePending {
		r.state = StateLoaded
	}
}

// OnError advances to the next candidate, or to the placeholder state once
// the chain is exhausted. Signals in a terminal state are ignored.
func (r *Resolver) OnError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		return
	}
	r.index++
	if r.index >= len(r.candidates) {
		r.state = StatePlaceholder
	}
}

// Stale reports whether the bookmark's identifier no longer matches the one
// this resolver was built from.
func (r *Resolver) Stale(b *domain.Bookmark) bool {
	return r.key != chainKey(b)
}

func chainKey(b *domain.Bookmark) string {
	if b.Ref != nil {
		return string(b.Ref.Platform) + ":" + b.Ref.ID
	}
	return "url:" + b.ThumbnailURL
}
