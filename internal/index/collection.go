package index

import (
	"sync"
	"time"

	"github.com/sava-app/sava/internal/domain"
)

// Collection is the client-held, ordered set of bookmark records — the
// single source of truth the view renders. Order is newest-first; the query
// engine only filters, it never reorders.
//
// All mutation goes through the coordinator in strict event order; the
// RWMutex only guards against concurrent HTTP readers.
type Collection struct {
	mu          sync.RWMutex
	order       []*domain.Bookmark // newest first
	byID        map[string]*domain.Bookmark
	lastRefresh time.Time
}

// PatchFields carries the subset of mutable fields a patch may replace.
// Nil pointers leave the current value untouched.
type PatchFields struct {
	Note         *string
	Title        *string
	Author       *string
	ThumbnailURL *string
	Meta         map[string]any
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[string]*domain.Bookmark)}
}

// Insert prepends a confirmed record. A duplicate id fails with
// KindDuplicateID; callers treat that as already-applied.
func (c *Collection) Insert(b *domain.Bookmark) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[b.ID]; exists {
		return domain.NewError(domain.KindDuplicateID, "bookmark already present: "+b.ID)
	}

	clone := b.Clone()
	c.order = append([]*domain.Bookmark{clone}, c.order...)
	c.byID[clone.ID] = clone
	return nil
}

// Patch replaces only the provided fields, preserving identity and
// everything else. Absent ids fail with KindNotFound.
func (c *Collection) Patch(id string, fields PatchFields) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.byID[id]
	if !ok {
		return domain.NewError(domain.KindNotFound, "bookmark not found: "+id)
	}

	if fields.Note != nil {
		b.Note = *fields.Note
	}
	if fields.Title != nil {
		b.Title = *fields.Title
	}
	if fields.Author != nil {
		b.Author = *fields.Author
	}
	if fields.ThumbnailURL != nil {
		b.ThumbnailURL = *fields.ThumbnailURL
	}
	if fields.Meta != nil {
		b.Meta = fields.Meta
	}
	return nil
}

// Remove excises a record. A second remove of the same id reports
// KindNotFound, which the coordinator treats as already satisfied.
func (c *Collection) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return domain.NewError(domain.KindNotFound, "bookmark not found: "+id)
	}

	delete(c.byID, id)
	for i, b := range c.order {
		if b.ID == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReplaceAll swaps in a fresh server-fetched collection, preserving the
// server's order. Later duplicates of an id are dropped so the uniqueness
// invariant holds even against a misbehaving upstream.
func (c *Collection) ReplaceAll(bookmarks []*domain.Bookmark) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = make([]*domain.Bookmark, 0, len(bookmarks))
	c.byID = make(map[string]*domain.Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		if _, dup := c.byID[b.ID]; dup {
			continue
		}
		clone := b.Clone()
		c.order = append(c.order, clone)
		c.byID[clone.ID] = clone
	}
	c.lastRefresh = time.Now()
}

// All returns the full ordered sequence as clones — callers never get a live
// mutable reference into the collection.
func (c *Collection) All() []*domain.Bookmark {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Bookmark, 0, len(c.order))
	for _, b := range c.order {
		out = append(out, b.Clone())
	}
	return out
}

// Get returns a clone of a single record.
func (c *Collection) Get(id string) (*domain.Bookmark, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// LastRefresh returns when ReplaceAll last ran.
func (c *Collection) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

// Snapshot is a structured diagnostics view of the collection, exposed over
// an explicit endpoint instead of a process-wide debug hook.
type Snapshot struct {
	Count       int                     `json:"count"`
	LastRefresh time.Time               `json:"last_refresh"`
	Platforms   map[domain.Platform]int `json:"platforms"`
	IDs         []string                `json:"ids"`
}

// Diagnostics returns the current snapshot.
func (c *Collection) Diagnostics() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Count:       len(c.order),
		LastRefresh: c.lastRefresh,
		Platforms:   make(map[domain.Platform]int),
		IDs:         make([]string, 0, len(c.order)),
	}
	for _, b := range c.order {
		s.Platforms[b.Platform]++
		s.IDs = append(s.IDs, b.ID)
	}
	return s
}
