package thumb

import (
	"sync"

	"github.com/sava-app/sava/internal/domain"
)

// Registry holds one resolver per rendered bookmark instance. Resolvers are
// independent of each other; there is no shared fallback state across
// records.
type Registry struct {
	mu        sync.Mutex
	resolvers map[string]*Resolver
}

func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]*Resolver)}
}

// For returns the resolver for a bookmark, creating or resetting it when the
// underlying identifier changed since the last render.
func (g *Registry) For(b *domain.Bookmark) *Resolver {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.resolvers[b.ID]
	if !ok || r.Stale(b) {
		r = NewResolver(b)
		g.resolvers[b.ID] = r
	}
	return r
}

// Signal applies a load or error event to the resolver for id. Unknown ids
// are ignored: the record may have been deleted between render and signal.
func (g *Registry) Signal(id string, loaded bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.resolvers[id]
	if !ok {
		return
	}
	if loaded {
		r.OnLoad()
	} else {
		r.OnError()
	}
}

// Forget drops the resolver for a deleted bookmark.
func (g *Registry) Forget(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.resolvers, id)
}
