// Package types provides type definitions for structured data passed between
// pipeline stages.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobRequirements is the structured requirements record extracted from a raw
// job posting. All slices are deduplicated and sorted before the record is
// returned, so two extractions of the same text compare equal.
type JobRequirements struct {
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Skills           []string `json:"skills"`
	Qualifications   []string `json:"qualifications"`
	Responsibilities []string `json:"responsibilities"`
	Keywords         []string `json:"keywords"`
	Certifications   []string `json:"certifications"`
	ActionVerbs      []string `json:"action_verbs"`
	YearsExperience  []string `json:"years_experience"`
	Education        []string `json:"education"`
}

// IsEmpty reports whether no requirement of any category was extracted.
func (r *JobRequirements) IsEmpty() bool {
	return len(r.RequiredSkills) == 0 &&
		len(r.PreferredSkills) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Qualifications) == 0 &&
		len(r.Responsibilities) == 0 &&
		len(r.Keywords) == 0 &&
		len(r.Certifications) == 0 &&
		len(r.ActionVerbs) == 0 &&
		len(r.YearsExperience) == 0 &&
		len(r.Education) == 0
}

// Coordinates holds a latitude/longitude pair reported by the generation
// collaborator for the job location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// JobProfile bundles the cleaned description, the extracted requirements and
// the requirement buckets used for prompt construction.
type JobProfile struct {
	SourceURL    string              `json:"source_url"`
	Description  string              `json:"description"`
	Requirements JobRequirements     `json:"requirements"`
	Buckets      map[string][]string `json:"buckets"`
	LocationName string              `json:"location_name,omitempty"`
	Coordinates  *Coordinates        `json:"location_coordinates,omitempty"`
}

// digestLimit bounds the description length forwarded to the collaborator.
const digestLimit = 1200

// PromptDigest returns the compact view of the profile embedded in
// generation payloads.
func (p *JobProfile) PromptDigest() map[string]any {
	summary := p.Description
	if len(summary) > digestLimit {
		summary = summary[:digestLimit]
	}
	return map[string]any{
		"source_url":   p.SourceURL,
		"summary":      summary,
		"requirements": p.Requirements,
		"buckets":      p.Buckets,
		"location":     p.LocationName,
	}
}
