//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// Section is one named résumé section with its generated bullet texts.
type Section struct {
	Name    string   `json:"name"`
	Bullets []string `json:"bullets"`
}

// BulletDetail is the full provenance record for one generated bullet.
// SnippetID may be empty when the collaborator drew from the full pool or
// the bullet came from a backfill round.
type BulletDetail struct {
	ID           string   `json:"id"`
	SnippetID    string   `json:"snippet_id"`
	Text         string   `json:"text"`
	Stretch      int      `json:"stretch"`
	Section      string   `json:"section"`
	SectionIndex int      `json:"section_index"`
	BulletIndex  int      `json:"bullet_index"`
	Metrics      []string `json:"metrics,omitempty"`
}

// ComposeSections rebuilds the section list and flat bullet list from bullet
// details, stable-sorted on (section index, bullet index) so replacement
// edits never disturb the original layout. Details with empty text are
// dropped; a section with no surviving bullets is omitted.
func ComposeSections(details []BulletDetail) ([]Section, []string) {
	ordered := make([]BulletDetail, len(details))
	copy(ordered, details)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SectionIndex != ordered[j].SectionIndex {
			return ordered[i].SectionIndex < ordered[j].SectionIndex
		}
		return ordered[i].BulletIndex < ordered[j].BulletIndex
	})

	var sections []Section
	var flat []string
	for _, detail := range ordered {
		if detail.Text == "" {
			continue
		}
		name := detail.Section
		if name == "" {
			name = "Highlights"
		}
		if len(sections) == 0 || sections[len(sections)-1].Name != name {
			sections = append(sections, Section{Name: name})
		}
		sections[len(sections)-1].Bullets = append(sections[len(sections)-1].Bullets, detail.Text)
		flat = append(flat, detail.Text)
	}
	return sections, flat
}
