// Package rank distills a candidate's raw experience graph into scored,
// bucketed snippets ready for section planning. Snippets are recomputed per
// run and never persisted.
package rank

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strings"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// DefaultLimitPerBucket bounds how many snippets each bucket keeps.
const DefaultLimitPerBucket = 3

const (
	summaryWordLimit = 45
	maxAchievements  = 6
)

// Scoring weights for snippet relevance against extracted requirements.
const (
	requiredSkillWeight  = 6.0
	preferredSkillWeight = 3.0
	keywordSkillWeight   = 1.5
	leadershipBonus      = 2.0
	projectBonus         = 1.0
	recencyBonus         = 1.5
)

var wordPattern = regexp.MustCompile(`\w+`)

// SelectTop builds one snippet per graph entry, scores each against the
// requirements, and keeps the top limitPerBucket per bucket. Ties keep
// their original encounter order.
func SelectTop(graph types.ExperienceGraph, req types.JobRequirements, limitPerBucket int) map[string][]types.ExperienceSnippet {
	if limitPerBucket <= 0 {
		limitPerBucket = DefaultLimitPerBucket
	}

	type candidate struct {
		score   float64
		snippet types.ExperienceSnippet
	}
	byBucket := map[string][]candidate{}

	for _, entry := range graph.Entries() {
		snippet, ok := BuildSnippet(entry)
		if !ok {
			continue
		}
		byBucket[snippet.Bucket] = append(byBucket[snippet.Bucket], candidate{
			score:   Score(snippet, req),
			snippet: snippet,
		})
	}

	selected := map[string][]types.ExperienceSnippet{}
	for bucket, candidates := range byBucket {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		if len(candidates) > limitPerBucket {
			candidates = candidates[:limitPerBucket]
		}
		snippets := make([]types.ExperienceSnippet, 0, len(candidates))
		for _, c := range candidates {
			snippets = append(snippets, c.snippet)
		}
		if len(snippets) > 0 {
			selected[bucket] = snippets
		}
	}

	return selected
}

// BuildSnippet distills a raw entry into a snippet. It reports false for an
// entry with no usable content.
func BuildSnippet(entry types.ExperienceEntry) (types.ExperienceSnippet, bool) {
	e := entry
	if isEmptyEntry(e) {
		return types.ExperienceSnippet{}, false
	}

	title := firstNonEmpty(e.Title, e.Role, e.Name, "Experience")
	organization := firstNonEmpty(e.Company, e.Organization)

	achievements := cleanItems(e.Achievements)
	if len(achievements) > maxAchievements {
		achievements = achievements[:maxAchievements]
	}

	summarySeed := e.Description
	if summarySeed == "" {
		head := achievements
		if len(head) > 2 {
			head = head[:2]
		}
		summarySeed = strings.Join(head, " ")
	}

	return types.ExperienceSnippet{
		ID:           snippetID(e),
		Bucket:       InferBucket(e),
		Title:        title,
		Organization: organization,
		TimeFrame:    timeFrame(e),
		Summary:      Summarize(summarySeed, summaryWordLimit),
		Achievements: achievements,
		Skills:       cleanItems(e.Skills),
		Source:       &e,
	}, true
}

// InferBucket categorizes an entry: an explicit bucket or type tag wins,
// else title keywords, else Professional Experience.
func InferBucket(entry types.ExperienceEntry) string {
	tag := strings.ToLower(firstNonEmpty(entry.Bucket, entry.Type))
	switch {
	case strings.Contains(tag, "lead") || entry.IsLeadership:
		return types.BucketLeadership
	case strings.Contains(tag, "project"):
		return types.BucketProjects
	case strings.Contains(tag, "skill"):
		return types.BucketSkills
	}

	title := strings.ToLower(entry.Title)
	if containsAny(title, "president", "chair", "captain", "lead") {
		return types.BucketLeadership
	}
	if containsAny(title, "project", "capstone", "hackathon") {
		return types.BucketProjects
	}
	return types.BucketProfessional
}

// Score weighs a snippet's skill and achievement overlap with the extracted
// requirements, with bonuses for leadership, projects and current roles.
func Score(snippet types.ExperienceSnippet, req types.JobRequirements) float64 {
	required := lowerSet(req.RequiredSkills)
	preferred := lowerSet(req.PreferredSkills)
	keywords := lowerSet(req.Keywords)

	skills := lowerSet(snippet.Skills)
	achievementText := strings.ToLower(strings.Join(snippet.Achievements, " "))

	score := requiredSkillWeight * float64(intersection(skills, required))
	score += preferredSkillWeight * float64(intersection(skills, preferred))
	score += keywordSkillWeight * float64(intersection(skills, keywords))

	for kw := range keywords {
		if kw != "" && strings.Contains(achievementText, kw) {
			score++
		}
	}

	switch snippet.Bucket {
	case types.BucketLeadership:
		score += leadershipBonus
	case types.BucketProjects:
		score += projectBonus
	}
	if snippet.Source != nil && snippet.Source.Current {
		score += recencyBonus
	}

	return score
}

// ByID flattens the selected snippets into an id-keyed lookup used by the
// guardrail audit.
func ByID(selected map[string][]types.ExperienceSnippet) map[string]types.ExperienceSnippet {
	byID := map[string]types.ExperienceSnippet{}
	for _, snippets := range selected {
		for _, snippet := range snippets {
			byID[snippet.ID] = snippet
		}
	}
	return byID
}

// Summarize bounds text to wordLimit words, appending an ellipsis when
// truncated.
func Summarize(text string, wordLimit int) string {
	tokens := wordPattern.FindAllString(text, -1)
	if len(tokens) <= wordLimit {
		return strings.TrimSpace(text)
	}
	return strings.Join(tokens[:wordLimit], " ") + "..."
}

func snippetID(entry types.ExperienceEntry) string {
	if entry.ID != "" {
		return entry.ID
	}
	if entry.UUID != "" {
		return entry.UUID
	}
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%s|%s", entry.Title, entry.Role, entry.Name, entry.Description)
	return fmt.Sprintf("snippet-%d", h.Sum32()%10_000_000)
}

func timeFrame(entry types.ExperienceEntry) string {
	start := strings.TrimSpace(firstNonEmpty(entry.Start, entry.StartDate))
	end := strings.TrimSpace(firstNonEmpty(entry.End, entry.EndDate))
	if end == "" && entry.Current {
		end = "Present"
	}
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	default:
		return entry.TimeFrame
	}
}

func isEmptyEntry(entry types.ExperienceEntry) bool {
	return entry.ID == "" && entry.UUID == "" && entry.Title == "" && entry.Role == "" &&
		entry.Name == "" && entry.Description == "" && len(entry.Achievements) == 0 &&
		len(entry.Skills) == 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func cleanItems(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
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

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func intersection(a, b map[string]bool) int {
	count := 0
	for item := range a {
		if b[item] {
			count++
		}
	}
	return count
}
