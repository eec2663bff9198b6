package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sava-app/sava/internal/domain"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewStore(goredis.NewClient(&goredis.Options{Addr: mr.Addr()})), mr
}

func TestSaveAndGetCollection(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	in := []*domain.Bookmark{
		{ID: "1", URL: "https://youtu.be/abc", Platform: domain.PlatformYouTube},
		{ID: "2", URL: "https://example.com/post", Platform: domain.PlatformWeb, Note: "later"},
	}

	if err := s.SaveCollection(ctx, in); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}

	out, err := s.GetCollection(ctx)
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("GetCollection returned %d records, want 2", len(out))
	}
	if out[0].ID != "1" || out[1].ID != "2" {
		t.Errorf("order lost in round trip: %s, %s", out[0].ID, out[1].ID)
	}
	if out[1].Note != "later" {
		t.Errorf("Note = %q, want later", out[1].Note)
	}
	// Ingestion normalization re-derives what isn't serialized.
	if out[0].Ref == nil || out[0].Ref.ID != "abc" {
		t.Errorf("Ref = %+v, want re-derived youtube id", out[0].Ref)
	}
}

func TestGetCollectionMissIsNotAnError(t *testing.T) {
	s, _ := testStore(t)

	out, err := s.GetCollection(context.Background())
	if err != nil {
		t.Fatalf("GetCollection on empty cache: %v", err)
	}
	if out != nil {
		t.Errorf("GetCollection = %v, want nil on miss", out)
	}
}

func TestInvalidateCollection(t *testing.T) {
	s, mr := testStore(t)
	ctx := context.Background()

	if err := s.SaveCollection(ctx, []*domain.Bookmark{{ID: "1", URL: "https://example.com"}}); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}
	if !mr.Exists(CollectionKey()) {
		t.Fatal("snapshot key missing after save")
	}

	if err := s.InvalidateCollection(ctx); err != nil {
		t.Fatalf("InvalidateCollection: %v", err)
	}
	if mr.Exists(CollectionKey()) {
		t.Error("snapshot key still present after invalidation")
	}
}

func TestSnapshotExpires(t *testing.T) {
	s, mr := testStore(t)
	ctx := context.Background()

	if err := s.SaveCollection(ctx, []*domain.Bookmark{{ID: "1", URL: "https://example.com"}}); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}

	mr.FastForward(DefaultSnapshotTTL + 1)

	out, err := s.GetCollection(ctx)
	if err != nil {
		t.Fatalf("GetCollection after expiry: %v", err)
	}
	if out != nil {
		t.Error("snapshot survived past its TTL")
	}
}
