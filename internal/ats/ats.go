// Package ats scores the finished bullet corpus against the extracted job
// requirements the way applicant tracking systems screen resumes, and runs
// the per-bullet quality checks recruiters care about.
package ats

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// Weighting of the overall score. Required skills dominate because ATS
// filters typically hard-reject on them.
const (
	requiredWeight  = 0.60
	keywordWeight   = 0.30
	preferredWeight = 0.10
)

const (
	maxMissingListed  = 10
	qualitySampleSize = 10
	qualityIssueLimit = 5
	bulletPreviewLen  = 50
)

var (
	digitPattern   = regexp.MustCompile(`\d+`)
	percentPattern = regexp.MustCompile(`\d+%`)
	dollarPattern  = regexp.MustCompile(`\$[\d,]+`)
	capitalPattern = regexp.MustCompile(`^[A-Z]`)
)

// validatorVerbs is the narrow verb set the per-bullet check accepts. ATS
// scoring engines reward these specific openers.
var validatorVerbs = map[string]bool{
	"led": true, "managed": true, "developed": true, "created": true,
	"improved": true, "increased": true, "reduced": true, "achieved": true,
	"delivered": true, "built": true, "designed": true, "implemented": true,
	"analyzed": true, "optimized": true, "launched": true, "coordinated": true,
	"established": true,
}

var trivialTerms = map[string]bool{
	"a": true, "an": true, "the": true, "aid": true, "it": true, "is": true,
}

func trivial(term string) bool {
	return len(term) <= 2 || trivialTerms[strings.ToLower(term)]
}

// Calculate computes the weighted compatibility breakdown over the final
// bullet corpus. Skill and keyword matching is case-insensitive substring
// search; trivial terms are excluded from the required and preferred pools
// before percentages are taken.
func Calculate(bullets, keywords, required, preferred []string) *types.ATSScore {
	if len(keywords) == 0 && len(required) == 0 {
		return &types.ATSScore{
			Suggestions: []string{"No job requirements provided for analysis"},
		}
	}

	corpus := strings.ToLower(strings.Join(bullets, " "))

	keywordPct := 0.0
	var missingKeywords []string
	if len(keywords) > 0 {
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(corpus, strings.ToLower(kw)) {
				matches++
			} else {
				missingKeywords = append(missingKeywords, kw)
			}
		}
		keywordPct = float64(matches) / float64(len(keywords)) * 100
	}

	requiredPct, matchedRequired, missingRequired := matchSkills(corpus, required)
	if requiredPct < 0 {
		// no non-trivial required skills to check
		requiredPct = 100.0
	}
	preferredPct, matchedPreferred, missingPreferred := matchSkills(corpus, preferred)
	if preferredPct < 0 {
		preferredPct = 0.0
	}

	overall := requiredPct*requiredWeight + keywordPct*keywordWeight + preferredPct*preferredWeight

	var suggestions []string
	if len(missingRequired) > 0 {
		top := missingRequired
		if len(top) > 3 {
			top = top[:3]
		}
		if len(top) == 1 {
			suggestions = append(suggestions, fmt.Sprintf(
				"Add required skill: %s - Include specific examples of how you've used this in your experience", top[0]))
		} else {
			suggestions = append(suggestions, fmt.Sprintf(
				"Add required skills: %s - Weave these into your achievement descriptions with concrete examples", strings.Join(top, ", ")))
		}
	}
	if keywordPct < 60 && len(missingKeywords) > 0 {
		top := missingKeywords
		if len(top) > 5 {
			top = top[:5]
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"Strengthen keyword coverage by incorporating: %s - Use these terms naturally when describing relevant work", strings.Join(top, ", ")))
	}
	if len(missingPreferred) > 0 && preferredPct < 40 {
		var top []string
		for _, skill := range missingPreferred {
			if len(skill) > 2 {
				top = append(top, skill)
			}
			if len(top) == 3 {
				break
			}
		}
		if len(top) > 0 {
			suggestions = append(suggestions, fmt.Sprintf(
				"Consider highlighting: %s - These preferred skills could differentiate your application", strings.Join(top, ", ")))
		}
	}

	switch {
	case overall >= 85:
		suggestions = append(suggestions, "Strong ATS compatibility - Your resume aligns well with job requirements")
	case overall >= 70:
		suggestions = append(suggestions, "Good foundation - Focus on incorporating the missing required skills to reach excellent ATS compatibility")
	case overall >= 50:
		suggestions = append(suggestions, "Moderate ATS match - Priority: add required skills with specific examples from your experience")
	default:
		suggestions = append(suggestions, "Significant gaps in required skills - Review job posting carefully and align your resume with key requirements")
	}

	if float64(len(digitPattern.FindAllString(corpus, -1))) < float64(len(bullets))*0.5 {
		suggestions = append(suggestions, "Add quantifiable metrics to your achievements (e.g., percentages, dollar amounts, time savings, user scale)")
	}

	return &types.ATSScore{
		OverallScore:         round1(overall),
		KeywordMatch:         round1(keywordPct),
		RequiredSkillsMatch:  round1(requiredPct),
		PreferredSkillsMatch: round1(preferredPct),
		MissingCritical:      capList(missingRequired, maxMissingListed),
		MissingPreferred:     capList(missingPreferred, maxMissingListed),
		MatchedRequired:      matchedRequired,
		MatchedPreferred:     matchedPreferred,
		Suggestions:          suggestions,
	}
}

// matchSkills returns -1 for the percentage when the filtered skill pool is
// empty, letting the caller apply the category default.
func matchSkills(corpus string, skills []string) (float64, []string, []string) {
	var matched, missing []string
	for _, skill := range skills {
		if trivial(skill) {
			continue
		}
		if strings.Contains(corpus, strings.ToLower(skill)) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	total := len(matched) + len(missing)
	if total == 0 {
		return -1, nil, nil
	}
	return float64(len(matched)) / float64(total) * 100, matched, missing
}

// ValidateBulletPoint checks one bullet against ATS parsing rules and
// recruiter readability heuristics.
func ValidateBulletPoint(bullet string) types.BulletValidation {
	var issues, suggestions []string

	firstWord := ""
	if fields := strings.Fields(bullet); len(fields) > 0 {
		firstWord = strings.ToLower(strings.TrimRight(fields[0], ".,;:"))
	}

	if len(bullet) > 220 {
		issues = append(issues, "Bullet exceeds 220 characters - may be truncated by ATS")
		suggestions = append(suggestions, "Aim for 100-180 characters for optimal ATS parsing")
	} else if len(bullet) < 50 {
		issues = append(issues, "Bullet is too short - may lack detail")
		suggestions = append(suggestions, "Expand with specific metrics and outcomes")
	}

	if !capitalPattern.MatchString(bullet) {
		issues = append(issues, "Must start with capital letter for ATS parsing")
		suggestions = append(suggestions, "Capitalize the first word")
	}

	startsWithVerb := validatorVerbs[firstWord]
	if !startsWithVerb {
		issues = append(issues, "Should start with strong action verb for ATS scoring")
		suggestions = append(suggestions, "Start with: Led, Built, Developed, Delivered, Optimized, etc.")
	}

	hasMetrics := digitPattern.MatchString(bullet) ||
		percentPattern.MatchString(bullet) ||
		dollarPattern.MatchString(bullet)
	if !hasMetrics {
		suggestions = append(suggestions, "Add quantifiable metrics (%, $, numbers)")
	}

	if len(strings.Fields(bullet)) < 10 {
		suggestions = append(suggestions, "Add more context and keywords")
	}

	return types.BulletValidation{
		Valid:                len(issues) == 0,
		Issues:               issues,
		Suggestions:          suggestions,
		HasMetrics:           hasMetrics,
		StartsWithActionVerb: startsWithVerb,
		CharacterCount:       len(bullet),
	}
}

// AssessQuality validates a sample of the generated bullets and returns the
// digest included in the result. Only the first few problem bullets are
// listed in full.
func AssessQuality(details []types.BulletDetail, totalBullets int) *types.BulletQuality {
	quality := &types.BulletQuality{TotalBullets: totalBullets}

	sample := details
	if len(sample) > qualitySampleSize {
		sample = sample[:qualitySampleSize]
	}
	for _, detail := range sample {
		validation := ValidateBulletPoint(detail.Text)
		if validation.Valid && len(validation.Suggestions) == 0 {
			continue
		}
		preview := detail.Text
		if len(preview) > bulletPreviewLen {
			preview = preview[:bulletPreviewLen] + "..."
		}
		quality.IssuesFound++
		if len(quality.Validations) < qualityIssueLimit {
			quality.Validations = append(quality.Validations, types.BulletQualityIssue{
				Bullet:      preview,
				Issues:      validation.Issues,
				Suggestions: validation.Suggestions,
			})
		}
	}
	return quality
}

// EnrichSuggestions merges the collaborator's suggestions with the score's
// findings into at most five actionable items: critical gaps first, then the
// contextual model suggestions, then a score call-out, topped up from the
// score's own suggestion list when thin.
func EnrichSuggestions(modelSuggestions []string, score *types.ATSScore) []string {
	var enhanced []string

	if len(score.MissingCritical) > 0 {
		var meaningful []string
		pool := score.MissingCritical
		if len(pool) > 5 {
			pool = pool[:5]
		}
		for _, skill := range pool {
			lower := strings.ToLower(skill)
			if len(skill) > 2 && lower != "aid" && lower != "the" && lower != "and" && lower != "or" {
				meaningful = append(meaningful, skill)
			}
		}
		if len(meaningful) == 1 {
			enhanced = append(enhanced, fmt.Sprintf(
				"Add required skill: %s - Include specific examples from your experience", meaningful[0]))
		} else if len(meaningful) > 1 {
			if len(meaningful) > 3 {
				meaningful = meaningful[:3]
			}
			enhanced = append(enhanced, fmt.Sprintf(
				"Add required skills: %s - Weave these into your achievement descriptions", strings.Join(meaningful, ", ")))
		}
	}

	quality := 0
	for _, s := range modelSuggestions {
		if len(s) <= 20 {
			continue
		}
		lower := strings.ToLower(s)
		if strings.HasPrefix(lower, "enhance") || strings.HasPrefix(lower, "improve") || strings.HasPrefix(lower, "emphasize") {
			continue
		}
		enhanced = append(enhanced, s)
		quality++
		if quality == 3 {
			break
		}
	}

	if score.OverallScore < 70 {
		enhanced = append(enhanced, fmt.Sprintf(
			"ATS Score: %.1f%% - Focus on incorporating missing required skills with concrete examples", score.OverallScore))
	} else if score.OverallScore >= 85 {
		enhanced = append(enhanced, fmt.Sprintf(
			"Strong ATS Score: %.1f%% - Your resume aligns well with job requirements", score.OverallScore))
	}

	if len(enhanced) < 3 {
		for _, suggestion := range score.Suggestions {
			if len(enhanced) >= 5 {
				break
			}
			if !contains(enhanced, suggestion) {
				enhanced = append(enhanced, suggestion)
			}
		}
	}
	return enhanced
}

func contains(list []string, item string) bool {
	for _, existing := range list {
		if existing == item {
			return true
		}
	}
	return false
}

func capList(list []string, limit int) []string {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
