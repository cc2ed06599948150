//nolint:revive // types is a standard Go package name pattern
package types

// Bucket names for grouping experience snippets. These mirror the default
// résumé section layout.
const (
	BucketProfessional = "Professional Experience"
	BucketLeadership   = "Leadership"
	BucketProjects     = "Projects"
	BucketSkills       = "Skills & Tools"
)

// CanonicalBuckets lists every bucket in its default layout order.
var CanonicalBuckets = []string{
	BucketProfessional,
	BucketLeadership,
	BucketProjects,
	BucketSkills,
}

// ExperienceEntry is one raw record from a candidate's experience graph.
// Entries arrive from heterogeneous sources, so most fields are optional and
// several carry aliases for the same concept (Title/Role/Name,
// Company/Organization).
type ExperienceEntry struct {
	ID           string   `json:"id,omitempty"`
	UUID         string   `json:"uuid,omitempty"`
	Type         string   `json:"type,omitempty"`
	Bucket       string   `json:"bucket,omitempty"`
	Title        string   `json:"title,omitempty"`
	Role         string   `json:"role,omitempty"`
	Name         string   `json:"name,omitempty"`
	Company      string   `json:"company,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Start        string   `json:"start,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	End          string   `json:"end,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	TimeFrame    string   `json:"time_frame,omitempty"`
	Current      bool     `json:"current,omitempty"`
	IsLeadership bool     `json:"is_leadership,omitempty"`
}

// ExperienceGraph is the caller-supplied collection of raw experience
// records, grouped the way the upstream persistence layer stores them.
type ExperienceGraph struct {
	Experiences []ExperienceEntry `json:"experiences,omitempty"`
	Leadership  []ExperienceEntry `json:"leadership,omitempty"`
	Projects    []ExperienceEntry `json:"projects,omitempty"`
	Activities  []ExperienceEntry `json:"activities,omitempty"`
}

// Entries returns every raw record in encounter order.
func (g *ExperienceGraph) Entries() []ExperienceEntry {
	if g == nil {
		return nil
	}
	entries := make([]ExperienceEntry, 0,
		len(g.Experiences)+len(g.Leadership)+len(g.Projects)+len(g.Activities))
	entries = append(entries, g.Experiences...)
	entries = append(entries, g.Leadership...)
	entries = append(entries, g.Projects...)
	entries = append(entries, g.Activities...)
	return entries
}

// ExperienceSnippet is a distilled, reusable unit of candidate experience
// used as grounding material for generation. Snippets are recomputed per
// pipeline run and never persisted.
type ExperienceSnippet struct {
	ID           string           `json:"id"`
	Bucket       string           `json:"bucket"`
	Title        string           `json:"title"`
	Organization string           `json:"organization"`
	TimeFrame    string           `json:"time_frame"`
	Summary      string           `json:"summary"`
	Achievements []string         `json:"achievements"`
	Skills       []string         `json:"skills"`
	Source       *ExperienceEntry `json:"-"`
}

// PromptDict returns the snippet view embedded in generation payloads.
func (s *ExperienceSnippet) PromptDict() map[string]any {
	return map[string]any{
		"id":           s.ID,
		"bucket":       s.Bucket,
		"title":        s.Title,
		"organization": s.Organization,
		"time_frame":   s.TimeFrame,
		"summary":      s.Summary,
		"achievements": s.Achievements,
		"skills":       s.Skills,
	}
}

// SnippetFacts is the fact subset of a snippet forwarded to the guardrail
// audit so claims can be checked against their source.
type SnippetFacts struct {
	Summary      string   `json:"summary"`
	Achievements []string `json:"achievements"`
	Skills       []string `json:"skills"`
	TimeFrame    string   `json:"time_frame"`
}

// Facts extracts the auditable facts from a snippet.
func (s *ExperienceSnippet) Facts() SnippetFacts {
	return SnippetFacts{
		Summary:      s.Summary,
		Achievements: s.Achievements,
		Skills:       s.Skills,
		TimeFrame:    s.TimeFrame,
	}
}
