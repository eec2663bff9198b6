package index

import (
	"testing"
	"time"

	"github.com/sava-app/sava/internal/domain"
)

func bm(id string, platform domain.Platform) *domain.Bookmark {
	return &domain.Bookmark{
		ID:        id,
		URL:       "https://example.com/" + id,
		Platform:  platform,
		CreatedAt: time.Now(),
	}
}

func strPtr(s string) *string { return &s }

func TestInsertPrependsAndRejectsDuplicates(t *testing.T) {
	c := NewCollection()

	if err := c.Insert(bm("a", domain.PlatformWeb)); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if err := c.Insert(bm("b", domain.PlatformWeb)); err != nil {
		t.Fatalf("insert b: %v", err)
	}

	all := c.All()
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("order after inserts = %v, want [b a]", ids(all))
	}

	err := c.Insert(bm("a", domain.PlatformWeb))
	if domain.KindOf(err) != domain.KindDuplicateID {
		t.Errorf("duplicate insert error kind = %v, want %s", domain.KindOf(err), domain.KindDuplicateID)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d after rejected insert, want 2", c.Len())
	}
}

func TestPatchOnlyTouchesProvidedFields(t *testing.T) {
	c := NewCollection()
	b := bm("a", domain.PlatformYouTube)
	b.Title = "original title"
	b.Note = "original note"
	if err := c.Insert(b); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := c.Patch("a", PatchFields{Note: strPtr("edited")}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("record vanished after patch")
	}
	if got.Note != "edited" {
		t.Errorf("Note = %q, want edited", got.Note)
	}
	if got.Title != "original title" {
		t.Errorf("Title = %q, unprovided field was touched", got.Title)
	}
	if got.Platform != domain.PlatformYouTube || got.ID != "a" {
		t.Error("identity fields changed by patch")
	}

	err := c.Patch("missing", PatchFields{Note: strPtr("x")})
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("patch of absent id kind = %v, want %s", domain.KindOf(err), domain.KindNotFound)
	}
}

func TestRemove(t *testing.T) {
	c := NewCollection()
	for _, id := range []string{"a", "b", "c"} {
		if err := c.Insert(bm(id, domain.PlatformWeb)); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	if err := c.Remove("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	all := c.All()
	if len(all) != 2 || all[0].ID != "c" || all[1].ID != "a" {
		t.Errorf("order after remove = %v, want [c a]", ids(all))
	}

	err := c.Remove("b")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("second remove kind = %v, want %s", domain.KindOf(err), domain.KindNotFound)
	}
}

func TestReplaceAllKeepsServerOrderAndDropsDuplicates(t *testing.T) {
	c := NewCollection()
	if err := c.Insert(bm("stale", domain.PlatformWeb)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	before := c.LastRefresh()
	c.ReplaceAll([]*domain.Bookmark{
		bm("x", domain.PlatformYouTube),
		bm("y", domain.PlatformWeb),
		bm("x", domain.PlatformWeb), // later duplicate dropped
		bm("z", domain.PlatformReddit),
	})

	all := c.All()
	if len(all) != 3 || all[0].ID != "x" || all[1].ID != "y" || all[2].ID != "z" {
		t.Fatalf("order after ReplaceAll = %v, want [x y z]", ids(all))
	}
	if all[0].Platform != domain.PlatformYouTube {
		t.Error("first occurrence of duplicated id should win")
	}
	if _, ok := c.Get("stale"); ok {
		t.Error("pre-replace record survived ReplaceAll")
	}
	if !c.LastRefresh().After(before) {
		t.Error("LastRefresh not advanced by ReplaceAll")
	}
}

func TestAllReturnsClones(t *testing.T) {
	c := NewCollection()
	if err := c.Insert(bm("a", domain.PlatformWeb)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	c.All()[0].Note = "mutated"

	got, _ := c.Get("a")
	if got.Note != "" {
		t.Error("mutation through All() leaked into the collection")
	}
}

func TestDiagnostics(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]*domain.Bookmark{
		bm("a", domain.PlatformYouTube),
		bm("b", domain.PlatformYouTube),
		bm("c", domain.PlatformWeb),
	})

	s := c.Diagnostics()
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Platforms[domain.PlatformYouTube] != 2 || s.Platforms[domain.PlatformWeb] != 1 {
		t.Errorf("Platforms = %v", s.Platforms)
	}
	if len(s.IDs) != 3 || s.IDs[0] != "a" {
		t.Errorf("IDs = %v", s.IDs)
	}
}

func ids(bs []*domain.Bookmark) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}
