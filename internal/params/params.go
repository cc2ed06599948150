// Package params defines the caller-facing tailoring parameters and their
// normalization. Normalization never fails; bad values fall back to the
// documented defaults.
package params

import (
	"regexp"
	"strings"
)

// Token budget bounds enforced on every run.
const (
	AbsoluteMinTokens = 1000
	AbsoluteMaxTokens = 6500
)

// Defaults applied when a field is missing or unusable.
const (
	DefaultBulletsPerSection = 3
	DefaultTone              = "confident and metric-driven"
	DefaultTemperature       = 0.35
	DefaultMaxOutputTokens   = 3500
	DefaultStretchLevel      = 2
)

// DefaultSections is the section list used when the caller requests none.
var DefaultSections = []string{
	"Professional Experience",
	"Leadership",
	"Projects",
}

// StretchDescriptors maps each stretch level to the policy sentence included
// in generation instructions.
var StretchDescriptors = map[int]string{
	0: "Exact: No embellishment. Only rephrase provided facts.",
	1: "Conservative: Allow mild reframing but stay literal to provided facts.",
	2: "Balanced: Blend facts with light amplification (<=10% metric lift).",
	3: "Aggressive: Allow up to 20% amplification and reordering for impact.",
}

var listSeparator = regexp.MustCompile(`[\n,]+`)

// Parameters is the caller-supplied tailoring configuration. Zero values are
// legal everywhere; Normalize fills in defaults and clamps ranges.
type Parameters struct {
	Sections           []string `json:"sections"`
	BulletsPerSection  int      `json:"bullets_per_section"`
	Tone               string   `json:"tone"`
	IncludeSummary     bool     `json:"include_summary"`
	IncludeCoverLetter bool     `json:"include_cover_letter"`
	Temperature        float64  `json:"temperature"`
	MaxOutputTokens    int      `json:"max_output_tokens"`
	StretchLevel       int      `json:"stretch_level"`
	SectionLayout      []string `json:"section_layout"`
	CoverLetterInserts []string `json:"cover_letter_inserts"`
}

// Defaults returns the documented default parameter set.
func Defaults() Parameters {
	return Parameters{
		Sections:          append([]string(nil), DefaultSections...),
		BulletsPerSection: DefaultBulletsPerSection,
		Tone:              DefaultTone,
		IncludeSummary:    true,
		Temperature:       DefaultTemperature,
		MaxOutputTokens:   DefaultMaxOutputTokens,
		StretchLevel:      DefaultStretchLevel,
		SectionLayout:     append([]string(nil), DefaultSections...),
	}
}

// SplitList parses a comma or newline delimited string into trimmed,
// non-empty items. Callers use it to accept single-string section lists.
func SplitList(raw string) []string {
	var items []string
	for _, part := range listSeparator.Split(raw, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// Normalize merges the given parameters with defaults and clamps every field
// into its legal range. It is idempotent: normalizing an already normalized
// set returns an equal set.
func Normalize(p Parameters) Parameters {
	out := p

	out.Sections = cleanList(p.Sections)
	if len(out.Sections) == 0 {
		out.Sections = append([]string(nil), DefaultSections...)
	}

	if out.BulletsPerSection < 1 {
		out.BulletsPerSection = DefaultBulletsPerSection
	}

	out.Tone = strings.TrimSpace(p.Tone)
	if out.Tone == "" {
		out.Tone = DefaultTone
	}

	if out.Temperature <= 0 {
		out.Temperature = DefaultTemperature
	}

	if out.MaxOutputTokens <= 0 {
		out.MaxOutputTokens = DefaultMaxOutputTokens
	}

	if out.StretchLevel < 0 {
		out.StretchLevel = 0
	} else if out.StretchLevel > 3 {
		out.StretchLevel = 3
	}

	out.SectionLayout = cleanList(p.SectionLayout)
	if len(out.SectionLayout) == 0 {
		out.SectionLayout = append([]string(nil), out.Sections...)
	}
	// An explicit section list wins over a separately supplied layout.
	if len(cleanList(p.Sections)) > 0 {
		out.SectionLayout = append([]string(nil), out.Sections...)
	}

	out.CoverLetterInserts = cleanList(p.CoverLetterInserts)

	out.MaxOutputTokens = clampTokens(out.MaxOutputTokens, len(out.Sections), out.BulletsPerSection)

	return out
}

// StretchDescriptor returns the policy sentence for a (clamped) stretch
// level.
func StretchDescriptor(level int) string {
	if level < 0 {
		level = 0
	} else if level > 3 {
		level = 3
	}
	return StretchDescriptors[level]
}

// clampTokens raises the output budget to a content-dependent floor and caps
// it at the absolute ceiling. Larger layouts need more room or the model
// truncates mid-object.
func clampTokens(tokens, sections, bulletsPerSection int) int {
	minTokens := 2500
	if bulletsPerSection >= 5 {
		minTokens = 3000
	}
	if sections >= 3 && bulletsPerSection >= 4 {
		minTokens = 3500
	}
	if minTokens < AbsoluteMinTokens {
		minTokens = AbsoluteMinTokens
	}
	if tokens < minTokens {
		tokens = minTokens
	}
	if tokens > AbsoluteMaxTokens {
		tokens = AbsoluteMaxTokens
	}
	return tokens
}

func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
