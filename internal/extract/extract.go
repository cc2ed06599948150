// Package extract turns free-text job postings into structured requirement
// records. Empty or malformed input degrades to empty structures, never to
// an error.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/vocab"
)

const (
	descriptionDigestLimit = 2000

	// Lines longer than this many words are never treated as section
	// headers.
	headerWordLimit = 6
)

var (
	crlfPattern       = regexp.MustCompile(`\r\n?`)
	trailingWSPattern = regexp.MustCompile(`[ \t]+\n`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
	tokenPattern      = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#./-]+`)

	yearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp)`),
		regexp.MustCompile(`minimum\s+(?:of\s+)?(\d+)\s+(?:years?|yrs?)`),
		regexp.MustCompile(`at least\s+(\d+)\s+(?:years?|yrs?)`),
	}

	educationKeywords = []string{"bachelor", "master", "phd", "ph.d", "mba", "degree", "b.s.", "m.s."}

	leadershipCues = []string{"lead", "managed", "coach", "mentor", "director", "executive", "team"}
	projectCues    = []string{"project", "launch", "build", "deploy", "prototype", "implementation", "initiative"}
)

// Clean normalizes line endings, strips trailing whitespace per line and
// collapses runs of blank lines.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = crlfPattern.ReplaceAllString(text, "\n")
	text = trailingWSPattern.ReplaceAllString(text, "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Keywords extracts ATS-relevant keywords from a stretch of text: curated
// technology terms, action verbs, soft skills, multi-word certification
// phrases, and title-cased or all-caps tokens taken as likely proper nouns.
func Keywords(text string) []string {
	var keywords []string
	lowered := strings.ToLower(text)

	for _, cert := range vocab.Certifications {
		if strings.Contains(lowered, cert) {
			keywords = append(keywords, cert)
		}
	}

	for _, token := range tokenPattern.FindAllString(text, -1) {
		clean := strings.ToLower(strings.Trim(token, " .,;:()[]{}"))
		if len(clean) < 2 || vocab.Stopwords[clean] {
			continue
		}
		if vocab.TechTerms[clean] || vocab.ActionVerbs[clean] || vocab.SoftSkills[clean] ||
			isTitleCase(token) || isAllUpper(token) {
			keywords = append(keywords, clean)
		}
	}

	return keywords
}

// Requirements scans a job description line by line and produces a
// categorized requirements record. An empty description yields an all-empty
// record.
func Requirements(jobDescription string) types.JobRequirements {
	var req types.JobRequirements
	if jobDescription == "" {
		return req
	}

	lowered := strings.ToLower(jobDescription)
	lines := strings.Split(jobDescription, "\n")

	req.YearsExperience = extractYears(lowered)
	req.Education = extractEducation(lines, lowered)

	currentBucket := "responsibilities"
	requiredSection := false
	preferredSection := false
	skillSet := map[string]bool{}
	var keywordCandidates []string
	var requiredSkills, preferredSkills []string
	actionVerbs := map[string]bool{}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		low := strings.ToLower(line)

		switch {
		// Section headers are short lines; a long sentence that merely
		// mentions "skills" or "responsibilities" is content.
		case len(strings.Fields(line)) > headerWordLimit:
		case containsAny(low, "responsibil", "duties", "you will"):
			currentBucket = "responsibilities"
			requiredSection = false
			preferredSection = false
			continue
		case containsAny(low, "qualification", "requirements", "must have"):
			currentBucket = "qualifications"
			requiredSection = containsAny(low, "required", "must")
			preferredSection = containsAny(low, "preferred", "nice to have")
			continue
		case containsAny(low, "skill", "technolog", "tools", "proficienc"):
			currentBucket = "skills"
			requiredSection = containsAny(low, "required", "must")
			preferredSection = containsAny(low, "preferred", "nice to have", "bonus")
			continue
		case containsAny(low, "preferred", "nice to have", "bonus", "plus"):
			preferredSection = true
			requiredSection = false
			continue
		}

		bullet := strings.TrimLeft(line, "-*•· ")
		extracted := Keywords(bullet)

		lineRequired := containsAny(low, "required", "must", "essential")
		linePreferred := containsAny(low, "preferred", "nice to have", "bonus", "plus")

		switch currentBucket {
		case "skills":
			for _, kw := range extracted {
				skillSet[kw] = true
			}
			// A line-level cue beats the section-level flag.
			if lineRequired || (requiredSection && !preferredSection && !linePreferred) {
				requiredSkills = append(requiredSkills, extracted...)
			} else if linePreferred || preferredSection {
				preferredSkills = append(preferredSkills, extracted...)
			}
		case "qualifications":
			req.Qualifications = append(req.Qualifications, bullet)
			keywordCandidates = append(keywordCandidates, extracted...)
			if lineRequired || (requiredSection && !linePreferred) {
				requiredSkills = append(requiredSkills, extracted...)
			} else if linePreferred || preferredSection {
				preferredSkills = append(preferredSkills, extracted...)
			}
		default:
			req.Responsibilities = append(req.Responsibilities, bullet)
			keywordCandidates = append(keywordCandidates, extracted...)
			if lineRequired {
				requiredSkills = append(requiredSkills, extracted...)
			} else if linePreferred {
				preferredSkills = append(preferredSkills, extracted...)
			}
			for verb := range vocab.ActionVerbs {
				if strings.Contains(low, verb) {
					actionVerbs[verb] = true
				}
			}
		}
	}

	for _, cert := range vocab.Certifications {
		if strings.Contains(lowered, cert) {
			req.Certifications = append(req.Certifications, cert)
		}
	}

	req.Skills = setToSorted(skillSet)
	req.Keywords = sortedUnique(append(keywordCandidates, req.Skills...))
	req.RequiredSkills = sortedUnique(requiredSkills)
	req.PreferredSkills = sortedUnique(preferredSkills)
	req.Certifications = sortedUnique(req.Certifications)
	req.ActionVerbs = setToSorted(actionVerbs)
	req.YearsExperience = sortedUnique(req.YearsExperience)
	req.Education = sortedUnique(req.Education)

	return req
}

// BuildProfile assembles a job profile from the description and its
// extracted requirements. The stored description is truncated to a digest
// sized for prompt payloads.
func BuildProfile(jobDescription, sourceURL string, req types.JobRequirements) types.JobProfile {
	description := jobDescription
	if len(description) > descriptionDigestLimit {
		description = description[:descriptionDigestLimit]
	}
	return types.JobProfile{
		SourceURL:    sourceURL,
		Description:  description,
		Requirements: req,
		Buckets:      BucketizeRequirements(req),
	}
}

// BucketizeRequirements groups requirement lines into the fixed snippet
// bucket names using lexical cues. Empty buckets are omitted.
func BucketizeRequirements(req types.JobRequirements) map[string][]string {
	buckets := map[string][]string{}

	combined := append(append([]string(nil), req.Responsibilities...), req.Qualifications...)
	for _, line := range combined {
		low := strings.ToLower(line)
		switch {
		case containsAny(low, leadershipCues...):
			buckets[types.BucketLeadership] = append(buckets[types.BucketLeadership], line)
		case containsAny(low, projectCues...):
			buckets[types.BucketProjects] = append(buckets[types.BucketProjects], line)
		default:
			buckets[types.BucketProfessional] = append(buckets[types.BucketProfessional], line)
		}
	}

	skillLines := append(append([]string(nil), req.RequiredSkills...), req.PreferredSkills...)
	if len(skillLines) == 0 {
		skillLines = req.Skills
	}
	if len(skillLines) > 0 {
		buckets[types.BucketSkills] = skillLines
	}

	for name, values := range buckets {
		buckets[name] = sortedUnique(values)
	}
	return buckets
}

func extractYears(loweredText string) []string {
	var out []string
	for _, pattern := range yearsPatterns {
		for _, match := range pattern.FindAllStringSubmatch(loweredText, -1) {
			out = append(out, fmt.Sprintf("%s+ years", match[1]))
		}
	}
	return out
}

func extractEducation(lines []string, loweredText string) []string {
	var out []string
	for _, kw := range educationKeywords {
		if !strings.Contains(loweredText, kw) {
			continue
		}
		for _, line := range lines {
			if strings.Contains(strings.ToLower(line), kw) {
				out = append(out, strings.TrimLeft(strings.TrimSpace(line), "-*•· "))
				break
			}
		}
	}
	return out
}

func containsAny(s string, cues ...string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}

func isTitleCase(token string) bool {
	runes := []rune(token)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isAllUpper(token string) bool {
	hasLetter := false
	for _, r := range token {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func sortedUnique(items []string) []string {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if item != "" {
			set[item] = true
		}
	}
	return setToSorted(set)
}

func setToSorted(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for item := range set {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
