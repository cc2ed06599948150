//nolint:revive // types is a standard Go package name pattern
package types

// ATSScore is the weighted applicant-tracking-system compatibility breakdown
// computed over the final bullet corpus.
type ATSScore struct {
	OverallScore         float64  `json:"overall_score"`
	KeywordMatch         float64  `json:"keyword_match"`
	RequiredSkillsMatch  float64  `json:"required_skills_match"`
	PreferredSkillsMatch float64  `json:"preferred_skills_match"`
	MissingCritical      []string `json:"missing_critical"`
	MissingPreferred     []string `json:"missing_preferred"`
	MatchedRequired      []string `json:"matched_required"`
	MatchedPreferred     []string `json:"matched_preferred"`
	Suggestions          []string `json:"suggestions"`
}

// BulletValidation is the per-bullet quality check result, with the raw
// boolean signals exposed for programmatic use.
type BulletValidation struct {
	Valid                bool     `json:"valid"`
	Issues               []string `json:"issues"`
	Suggestions          []string `json:"suggestions"`
	HasMetrics           bool     `json:"has_metrics"`
	StartsWithActionVerb bool     `json:"starts_with_action_verb"`
	CharacterCount       int      `json:"character_count"`
}

// BulletQualityIssue pairs a truncated bullet preview with its validation
// findings for inclusion in the result's quality digest.
type BulletQualityIssue struct {
	Bullet      string   `json:"bullet"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// BulletQuality summarizes the validation pass over a sample of generated
// bullets.
type BulletQuality struct {
	TotalBullets int                  `json:"total_bullets"`
	IssuesFound  int                  `json:"issues_found"`
	Validations  []BulletQualityIssue `json:"validations"`
}
