// Package coordinator sequences create/update/delete requests against the
// upstream API and reconciles the local collection with confirmed server
// state. The collection is only ever mutated here, in strict event order.
package coordinator

import (
	"context"

	"github.com/google/uuid"

	"github.com/sava-app/sava/internal/api"
	"github.com/sava-app/sava/internal/domain"
	"github.com/sava-app/sava/internal/index"
	"github.com/sava-app/sava/internal/logger"
	redisstore "github.com/sava-app/sava/internal/store/redis"
	"github.com/sava-app/sava/internal/thumb"
)

type Coordinator struct {
	client     *api.Client
	collection *index.Collection
	cache      *redisstore.Store // nil when redis is disabled
	thumbs     *thumb.Registry
	log        logger.Logger
}

func New(client *api.Client, collection *index.Collection, cache *redisstore.Store, thumbs *thumb.Registry, log logger.Logger) *Coordinator {
	return &Coordinator{
		client:     client,
		collection: collection,
		cache:      cache,
		thumbs:     thumbs,
		log:        log,
	}
}

// Refresh replaces the collection with the server's current state and
// refreshes the snapshot cache (best effort).
func (co *Coordinator) Refresh(ctx context.Context) error {
	bookmarks, err := co.client.FetchAll(ctx)
	if err != nil {
		return err
	}

	co.collection.ReplaceAll(bookmarks)
	co.log.Info("collection refreshed",
		logger.Int("count", len(bookmarks)))

	if co.cache != nil {
		if err := co.cache.SaveCollection(ctx, bookmarks); err != nil {
			co.log.Warn("failed to cache collection snapshot", logger.Error(err))
		}
	}
	return nil
}

// WarmStart seeds the collection from the cached snapshot so the view has a
// last-known-good state before the first upstream fetch lands. A cache miss
// is not an error.
func (co *Coordinator) WarmStart(ctx context.Context) error {
	if co.cache == nil {
		return nil
	}
	bookmarks, err := co.cache.GetCollection(ctx)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		return nil
	}
	co.collection.ReplaceAll(bookmarks)
	co.log.Info("collection warm-started from cache",
		logger.Int("count", len(bookmarks)))
	return nil
}

// Create validates the raw input locally first, then submits it upstream and
// inserts the server's canonical record. There is no optimistic insert:
// metadata extraction is slow and the server owns id, platform, thumbnail
// and meta. Validation failures never reach the network.
//
// Concurrent identical creates are not deduplicated here; the server's 409
// on an already-bookmarked URL is the safety net.
func (co *Coordinator) Create(ctx context.Context, rawURL, note string) (*domain.Bookmark, error) {
	op := uuid.NewString()

	normalized, err := domain.Normalize(rawURL)
	if err != nil {
		co.log.Debug("create rejected before submission",
			logger.String("op", op),
			logger.Error(err))
		return nil, err
	}

	created, err := co.client.Create(ctx, normalized, note)
	if err != nil {
		co.log.Warn("create failed",
			logger.String("op", op),
			logger.String("url", normalized),
			logger.Error(err))
		return nil, err
	}

	if err := co.collection.Insert(created); err != nil {
		// Already present means the insert is already applied; anything else
		// would be a bug in the store.
		if domain.KindOf(err) != domain.KindDuplicateID {
			return nil, err
		}
		co.log.Debug("create already applied",
			logger.String("op", op),
			logger.String("id", created.ID))
	}

	co.invalidateSnapshot(ctx)
	co.log.Info("bookmark created",
		logger.String("op", op),
		logger.String("id", created.ID),
		logger.String("platform", string(created.Platform)))
	return created, nil
}

// UpdateNote submits a note edit and patches the store from the server's
// returned record — not the locally edited value — so the collection never
// diverges from server state after a successful round trip. An upstream
// NotFound means the record is already gone: the edit is treated as
// satisfied and the local copy removed.
func (co *Coordinator) UpdateNote(ctx context.Context, id, note string) (*domain.Bookmark, error) {
	op := uuid.NewString()

	updated, err := co.client.Update(ctx, id, note)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			co.log.Info("update target already deleted, treating as satisfied",
				logger.String("op", op),
				logger.String("id", id))
			co.removeLocal(ctx, id)
			return nil, nil
		}
		co.log.Warn("update failed",
			logger.String("op", op),
			logger.String("id", id),
			logger.Error(err))
		return nil, err
	}

	err = co.collection.Patch(id, index.PatchFields{
		Note:         &updated.Note,
		Title:        &updated.Title,
		Author:       &updated.Author,
		ThumbnailURL: &updated.ThumbnailURL,
		Meta:         updated.Meta,
	})
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	co.invalidateSnapshot(ctx)
	co.log.Info("bookmark updated",
		logger.String("op", op),
		logger.String("id", id))
	return updated, nil
}

// Delete removes a bookmark upstream, then locally. NotFound at either level
// is already-satisfied, not an error to surface.
func (co *Coordinator) Delete(ctx context.Context, id string) error {
	op := uuid.NewString()

	if err := co.client.Delete(ctx, id); err != nil {
		if domain.KindOf(err) != domain.KindNotFound {
			co.log.Warn("delete failed",
				logger.String("op", op),
				logger.String("id", id),
				logger.Error(err))
			return err
		}
	}

	co.removeLocal(ctx, id)
	co.log.Info("bookmark deleted",
		logger.String("op", op),
		logger.String("id", id))
	return nil
}

func (co *Coordinator) removeLocal(ctx context.Context, id string) {
	if err := co.collection.Remove(id); err != nil {
		// Second remove of the same id: already satisfied.
		co.log.Debug("remove already applied", logger.String("id", id))
	}
	if co.thumbs != nil {
		co.thumbs.Forget(id)
	}
	co.invalidateSnapshot(ctx)
}

func (co *Coordinator) invalidateSnapshot(ctx context.Context) {
	if co.cache == nil {
		return
	}
	if err := co.cache.InvalidateCollection(ctx); err != nil {
		co.log.Warn("failed to invalidate snapshot cache", logger.Error(err))
	}
}
