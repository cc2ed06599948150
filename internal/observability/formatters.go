// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobProfile outputs a human-readable summary of the extracted job profile.
func (p *Printer) PrintJobProfile(profile *types.JobProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.SourceURL != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", profile.SourceURL))
	}
	if profile.LocationName != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.LocationName))
	}
	sb.WriteString(fmt.Sprintf("Description: %d chars\n\n", len(profile.Description)))

	writeSkillList(&sb, "Required Skills", profile.Requirements.RequiredSkills)
	writeSkillList(&sb, "Preferred Skills", profile.Requirements.PreferredSkills)
	writeSkillList(&sb, "Keywords", profile.Requirements.Keywords)

	p.printBox("JOB PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeSkillList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintSelectedSnippets outputs the snippets chosen per bucket with their scores.
func (p *Printer) PrintSelectedSnippets(selected map[string][]types.ExperienceSnippet, order []string) {
	if len(selected) == 0 {
		return
	}

	var sb strings.Builder
	for _, bucket := range order {
		snippets := selected[bucket]
		if len(snippets) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", bucket, len(snippets)))
		count := min(len(snippets), 3)
		for i := 0; i < count; i++ {
			title := snippets[i].Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", title, snippets[i].ID))
		}
		sb.WriteString("\n")
	}

	p.printBox("SELECTED EXPERIENCE SNIPPETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSectionPlan outputs the planned section to snippet-pool mapping.
func (p *Printer) PrintSectionPlan(plan []types.SectionPlanEntry) {
	if len(plan) == 0 {
		return
	}

	var sb strings.Builder
	for i, entry := range plan {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, entry.Name))
		if entry.UseFullPool {
			sb.WriteString("   pool: all snippets\n")
		} else {
			sb.WriteString(fmt.Sprintf("   pool: %d snippets\n", len(entry.SnippetIDs)))
		}
	}

	p.printBox("SECTION PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGuardrailFindings outputs the audit verdicts, flagged bullets first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintGuardrailFindings(findings []types.GuardrailFinding) {
	flagged := 0
	for _, finding := range findings {
		if finding.Status.Flagged() {
			flagged++
		}
	}
	if flagged == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ GUARDRAIL: ALL BULLETS CLEAN")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Flagged %d of %d bullets:\n\n", flagged, len(findings)))
	for _, finding := range findings {
		if !finding.Status.Flagged() {
			continue
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", finding.BulletID, finding.Status))
		for _, reason := range finding.Reasons {
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", reason))
		}
	}

	p.printBox("GUARDRAIL FINDINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSScore outputs the compatibility breakdown and top suggestions.
func (p *Printer) PrintATSScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:   %.1f%%\n", score.OverallScore))
	sb.WriteString(fmt.Sprintf("Required:  %.1f%%\n", score.RequiredSkillsMatch))
	sb.WriteString(fmt.Sprintf("Keywords:  %.1f%%\n", score.KeywordMatch))
	sb.WriteString(fmt.Sprintf("Preferred: %.1f%%\n", score.PreferredSkillsMatch))

	if len(score.MissingCritical) > 0 {
		sb.WriteString("\nMissing required:\n")
		count := min(len(score.MissingCritical), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", score.MissingCritical[i]))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTokenUsage outputs the accumulated collaborator token counts.
func (p *Printer) PrintTokenUsage(usage types.TokenUsage) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Prompt:     %d\n", usage.PromptTokens))
	sb.WriteString(fmt.Sprintf("Completion: %d\n", usage.CompletionTokens))
	sb.WriteString(fmt.Sprintf("Total:      %d", usage.TotalTokens))

	p.printBox("TOKEN USAGE", sb.String())
}
