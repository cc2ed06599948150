// Package plan maps requested section names onto the available snippet
// buckets. Every requested section is always represented in the output, even
// when no bucket matches it.
package plan

import (
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// Sections builds one plan entry per requested section name, in request
// order. Matching per name: exact bucket match first, then the next unused
// bucket in encounter order, and finally the full snippet pool flagged
// use_full_pool. bucketOrder fixes the encounter order of the selected map;
// unknown names in it are ignored.
func Sections(selected map[string][]types.ExperienceSnippet, bucketOrder, layout []string) []types.SectionPlanEntry {
	available := orderedBuckets(selected, bucketOrder)

	if len(layout) == 0 {
		entries := make([]types.SectionPlanEntry, 0, len(available))
		for _, bucket := range available {
			entries = append(entries, types.SectionPlanEntry{
				Name:       bucket,
				SnippetIDs: snippetIDs(selected[bucket]),
			})
		}
		return entries
	}

	var fullPool []string
	for _, bucket := range available {
		fullPool = append(fullPool, snippetIDs(selected[bucket])...)
	}

	entries := make([]types.SectionPlanEntry, 0, len(layout))
	seen := map[string]bool{}
	nextBucket := 0

	for _, name := range layout {
		snippets, exact := selected[name]
		borrowed := false
		if !exact && nextBucket < len(available) {
			snippets = selected[available[nextBucket]]
			nextBucket++
			borrowed = true
		}

		if len(snippets) == 0 {
			entries = append(entries, types.SectionPlanEntry{
				Name:        name,
				SnippetIDs:  append([]string(nil), fullPool...),
				UseFullPool: true,
			})
			continue
		}

		var ids []string
		for _, snippet := range snippets {
			if seen[snippet.ID] {
				continue
			}
			seen[snippet.ID] = true
			ids = append(ids, snippet.ID)
		}

		// Dedup never leaves a section empty; fall back to the pool.
		if len(ids) == 0 {
			entries = append(entries, types.SectionPlanEntry{
				Name:        name,
				SnippetIDs:  append([]string(nil), fullPool...),
				UseFullPool: true,
			})
			continue
		}

		// A borrowed bucket is only a nominal match; let generation draw
		// broadly for that section.
		entries = append(entries, types.SectionPlanEntry{
			Name:        name,
			SnippetIDs:  ids,
			UseFullPool: borrowed,
		})
	}

	return entries
}

// orderedBuckets returns the bucket names present in selected, following
// bucketOrder first and appending any stragglers in the canonical bucket
// order.
func orderedBuckets(selected map[string][]types.ExperienceSnippet, bucketOrder []string) []string {
	var out []string
	taken := map[string]bool{}
	for _, bucket := range bucketOrder {
		if _, ok := selected[bucket]; ok && !taken[bucket] {
			out = append(out, bucket)
			taken[bucket] = true
		}
	}
	for _, bucket := range types.CanonicalBuckets {
		if _, ok := selected[bucket]; ok && !taken[bucket] {
			out = append(out, bucket)
			taken[bucket] = true
		}
	}
	return out
}

func snippetIDs(snippets []types.ExperienceSnippet) []string {
	ids := make([]string, 0, len(snippets))
	for _, snippet := range snippets {
		ids = append(ids, snippet.ID)
	}
	return ids
}
