package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sava-app/sava/internal/domain"
)

const (
	// DefaultSnapshotTTL bounds how stale a warm-start can be (24 hours).
	DefaultSnapshotTTL = 24 * time.Hour
)

// Store caches the last-known-good bookmark collection in Redis so a restart
// can serve a snapshot before the first upstream fetch completes. The
// in-memory collection stays the source of truth; everything here is best
// effort.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis snapshot store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: DefaultSnapshotTTL}
}

// SaveCollection stores the serialized collection snapshot.
func (s *Store) SaveCollection(ctx context.Context, bookmarks []*domain.Bookmark) error {
	data, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}
	if err := s.client.Set(ctx, CollectionKey(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save collection snapshot: %w", err)
	}
	return nil
}

// GetCollection retrieves the cached snapshot. A cache miss returns an empty
// slice and no error.
func (s *Store) GetCollection(ctx context.Context) ([]*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, CollectionKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("failed to get collection snapshot: %w", err)
	}

	var bookmarks []*domain.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection snapshot: %w", err)
	}
	return bookmarks, nil
}

// InvalidateCollection drops the snapshot after a confirmed mutation so a
// warm start never resurrects pre-mutation state.
func (s *Store) InvalidateCollection(ctx context.Context) error {
	if err := s.client.Del(ctx, CollectionKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate collection snapshot: %w", err)
	}
	return nil
}
