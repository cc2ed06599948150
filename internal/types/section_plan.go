//nolint:revive // types is a standard Go package name pattern
package types

// SectionPlanEntry maps one requested section name to the snippet pool the
// generation step may draw from. The planner emits exactly one entry per
// requested section, in the requested order.
type SectionPlanEntry struct {
	Name        string   `json:"name"`
	SnippetIDs  []string `json:"snippet_ids"`
	UseFullPool bool     `json:"use_full_pool,omitempty"`
}
