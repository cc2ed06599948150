//nolint:revive // types is a standard Go package name pattern
package types

import "regexp"

var wordPattern = regexp.MustCompile(`\w+`)

// TailoringResult aggregates everything one pipeline invocation produced.
// It is built once per run; after the guardrail replacement step it is
// handed to the caller and never mutated again.
type TailoringResult struct {
	Title                    string             `json:"title"`
	Sections                 []Section          `json:"sections"`
	Bullets                  []string           `json:"bullets"`
	BulletDetails            []BulletDetail     `json:"bullet_details"`
	Summary                  string             `json:"summary"`
	Suggestions              []string           `json:"suggestions"`
	CoverLetter              string             `json:"cover_letter"`
	CoverLetterTalkingPoints []string           `json:"cover_letter_talking_points"`
	TokenUsage               TokenUsage         `json:"token_usage"`
	RunID                    string             `json:"run_id"`
	GuardrailReport          []GuardrailFinding `json:"guardrail_report"`
	ATSScore                 *ATSScore          `json:"ats_score,omitempty"`
	BulletQuality            *BulletQuality     `json:"bullet_quality,omitempty"`
	SectionLayout            []string           `json:"section_layout,omitempty"`
	JobLocationName          string             `json:"job_location_name,omitempty"`
	JobLocationCoordinates   *Coordinates       `json:"job_location_coordinates,omitempty"`
	Debug                    map[string]any     `json:"debug,omitempty"`
}

// WordsGenerated counts the words produced across bullets, summary and
// cover letter for usage reporting.
func (r *TailoringResult) WordsGenerated() int {
	count := 0
	for _, bullet := range r.Bullets {
		count += len(wordPattern.FindAllString(bullet, -1))
	}
	if r.Summary != "" {
		count += len(wordPattern.FindAllString(r.Summary, -1))
	}
	if r.CoverLetter != "" {
		count += len(wordPattern.FindAllString(r.CoverLetter, -1))
	}
	return count
}

// FlattenSections returns every bullet text across the given sections in
// section order.
func FlattenSections(sections []Section) []string {
	var bullets []string
	for _, section := range sections {
		bullets = append(bullets, section.Bullets...)
	}
	return bullets
}
