package query

import (
	"testing"

	"github.com/sava-app/sava/internal/domain"
)

func collection() []*domain.Bookmark {
	return []*domain.Bookmark{
		{ID: "1", URL: "https://youtube.com/watch?v=a", Platform: domain.PlatformYouTube, Title: "Go talk"},
		{ID: "2", URL: "https://example.com/article", Platform: domain.PlatformWeb, Title: "Go article", Note: "read later"},
		{ID: "3", URL: "https://youtube.com/watch?v=b", Platform: domain.PlatformYouTube, Title: "Cooking"},
		{ID: "4", URL: "https://reddit.com/r/golang", Platform: domain.PlatformReddit, Title: "Thread"},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		platform domain.Platform
		wantIDs  []string
	}{
		{
			name:    "no predicates returns everything in order",
			wantIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:    "term only",
			term:    "go",
			wantIDs: []string{"1", "2", "4"}, // "go" also hits reddit.com/r/golang
		},
		{
			name:     "platform only",
			platform: domain.PlatformYouTube,
			wantIDs:  []string{"1", "3"},
		},
		{
			name:     "conjunction",
			term:     "go",
			platform: domain.PlatformYouTube,
			wantIDs:  []string{"1"},
		},
		{
			name:    "no match",
			term:    "kubernetes",
			wantIDs: []string{},
		},
		{
			name:     "platform with no records",
			platform: domain.PlatformSnapchat,
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(collection(), tt.term, tt.platform)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter() returned %d records, want %d", len(got), len(tt.wantIDs))
			}
			for i, b := range got {
				if b.ID != tt.wantIDs[i] {
					t.Errorf("Filter()[%d].ID = %s, want %s", i, b.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterIsPure(t *testing.T) {
	src := collection()
	first := Filter(src, "go", "")
	second := Filter(src, "go", "")

	if len(first) != len(second) {
		t.Fatal("same inputs produced different result sizes")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("same inputs produced different orders")
		}
	}
	if len(src) != 4 {
		t.Error("Filter mutated its input")
	}
}

func TestCount(t *testing.T) {
	c := Count(collection())

	if c.All != 4 {
		t.Errorf("All = %d, want 4", c.All)
	}
	if c.PerPlatform[domain.PlatformYouTube] != 2 {
		t.Errorf("youtube = %d, want 2", c.PerPlatform[domain.PlatformYouTube])
	}
	if c.PerPlatform[domain.PlatformWeb] != 1 {
		t.Errorf("web = %d, want 1", c.PerPlatform[domain.PlatformWeb])
	}

	// Every enumerated platform is present, zero-valued when absent.
	for _, p := range domain.Platforms() {
		if _, ok := c.PerPlatform[p]; !ok {
			t.Errorf("platform %s missing from counts", p)
		}
	}

	// Per-platform counts sum to the total.
	sum := 0
	for _, n := range c.PerPlatform {
		sum += n
	}
	if sum != c.All {
		t.Errorf("per-platform sum = %d, want %d", sum, c.All)
	}
}

func TestCountEmptyCollection(t *testing.T) {
	c := Count(nil)
	if c.All != 0 {
		t.Errorf("All = %d, want 0", c.All)
	}
	if len(c.PerPlatform) != len(domain.Platforms()) {
		t.Errorf("PerPlatform has %d entries, want %d", len(c.PerPlatform), len(domain.Platforms()))
	}
}
