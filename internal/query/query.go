// Package query derives the visible subset of the bookmark collection from a
// free-text search term and a platform filter. Everything here is a pure
// function of its inputs: same collection, same term, same filter — same
// output, in the same order.
package query

import (
	"github.com/sava-app/sava/internal/domain"
)

// Filter applies both predicates conjunctively while preserving the source
// order. An empty platform means no platform filter; an empty term matches
// every record. Filtering removes elements, it never reorders them.
func Filter(collection []*domain.Bookmark, term string, platform domain.Platform) []*domain.Bookmark {
	out := make([]*domain.Bookmark, 0, len(collection))
	for _, b := range collection {
		if platform != "" && b.Platform != platform {
			continue
		}
		if !b.Matches(term) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Counts aggregates per-platform totals over the full collection, unfiltered
// by search — the numbers behind the filter-button badges. All equals the
// collection size, so the per-platform counts always sum to it.
type Counts struct {
	All         int                     `json:"all"`
	PerPlatform map[domain.Platform]int `json:"platforms"`
}

// Count computes the per-platform aggregation. Every enumerated platform is
// present in the result, zero-valued when absent from the collection.
func Count(collection []*domain.Bookmark) Counts {
	c := Counts{
		All:         len(collection),
		PerPlatform: make(map[domain.Platform]int, len(domain.Platforms())),
	}
	for _, p := range domain.Platforms() {
		c.PerPlatform[p] = 0
	}
	for _, b := range collection {
		c.PerPlatform[b.Platform]++
	}
	return c
}
