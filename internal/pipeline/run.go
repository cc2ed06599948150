// Package pipeline provides the high-level orchestration for one tailoring
// run: posting acquisition, requirement extraction, snippet ranking, section
// planning, generation, guardrail enforcement and ATS scoring.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/ats"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/extract"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/fetch"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/generation"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/guardrail"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/llm"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/observability"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/params"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/plan"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/rank"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// fetchThreshold is the description length below which a posting URL is
// fetched to supplement the caller-supplied text.
const fetchThreshold = 200

// ProgressEvent is one progress update emitted during a run.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback receives progress events.
type ProgressCallback func(event ProgressEvent)

// Options holds everything one tailoring run needs. Client is required;
// Graph may be empty, in which case generation runs without grounding
// snippets.
type Options struct {
	Description string
	JobURL      string
	Graph       types.ExperienceGraph
	Params      params.Parameters
	Client      llm.Client
	Printer     *observability.Printer
	Verbose     bool
	OnProgress  ProgressCallback
}

func emit(opts *Options, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}

// Run executes the full tailoring pipeline and returns the aggregated
// result. Generation failure aborts the run but the returned result still
// carries the token usage spent; guardrail, scoring and cover letter
// problems degrade the result instead of failing it.
func Run(ctx context.Context, opts Options) (*types.TailoringResult, error) {
	if opts.Description == "" && opts.JobURL == "" {
		return nil, &ValidationError{Message: "either a job description or a job posting URL is required"}
	}

	p := params.Normalize(opts.Params)
	result := &types.TailoringResult{SectionLayout: p.Sections}

	// Acquire and clean the posting text. Fetch failures fall back to the
	// supplied description; grounding on the URL covers the rest.
	description := opts.Description
	if opts.JobURL != "" && len(description) < fetchThreshold {
		emit(&opts, "fetch", fmt.Sprintf("fetching job posting from %s", opts.JobURL))
		if fetched, err := fetch.JobPosting(ctx, opts.JobURL, nil); err == nil && len(fetched) > len(description) {
			description = fetched
		}
	}
	description = extract.Clean(description)

	req := extract.Requirements(description)
	profile := extract.BuildProfile(description, opts.JobURL, req)
	emit(&opts, "extract", fmt.Sprintf("extracted %d required and %d preferred skills",
		len(req.RequiredSkills), len(req.PreferredSkills)))

	selected := rank.SelectTop(opts.Graph, profile.Requirements, rank.DefaultLimitPerBucket)
	planEntries := plan.Sections(selected, types.CanonicalBuckets, p.Sections)
	emit(&opts, "plan", fmt.Sprintf("planned %d sections", len(planEntries)))

	if opts.Verbose && opts.Printer != nil {
		opts.Printer.PrintJobProfile(&profile)
		opts.Printer.PrintSelectedSnippets(selected, types.CanonicalBuckets)
		opts.Printer.PrintSectionPlan(planEntries)
	}

	orchestrator := generation.New(opts.Client)
	genInput := generation.Input{
		Profile:  &profile,
		Selected: selected,
		Plan:     planEntries,
		Params:   p,
	}

	emit(&opts, "generate", "requesting tailored resume")
	genOut, err := orchestrator.Generate(ctx, genInput)
	if genOut != nil {
		result.TokenUsage.Add(genOut.Usage)
	}
	if err != nil {
		return result, err
	}

	result.Title = genOut.Title
	result.Summary = genOut.Summary
	result.RunID = genOut.RunID
	if opts.Verbose {
		result.Debug = genOut.Debug
	}

	// Guardrail plus scoring run alongside the optional cover letter;
	// the letter is grounded in the pre-audit resume, which is close
	// enough for prose and saves a round trip.
	var auditResult *guardrail.Result
	var letter *generation.CoverLetter
	var letterUsage types.TokenUsage

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		emit(&opts, "guardrail", "auditing generated bullets")
		auditResult = guardrail.New(opts.Client).Enforce(groupCtx, guardrail.Input{
			Profile:  &profile,
			Snippets: rank.ByID(selected),
			Details:  genOut.Details,
			Params:   p,
		})
		return nil
	})
	if p.IncludeCoverLetter {
		group.Go(func() error {
			emit(&opts, "cover_letter", "drafting cover letter")
			var letterErr error
			letter, letterUsage, letterErr = orchestrator.GenerateCoverLetter(groupCtx, genInput, genOut)
			// fail-soft: a bad letter never sinks the resume
			_ = letterErr
			return nil
		})
	}
	_ = group.Wait()

	result.TokenUsage.Add(auditResult.Usage)
	result.TokenUsage.Add(letterUsage)
	result.Sections = auditResult.Sections
	result.Bullets = auditResult.Bullets
	result.BulletDetails = auditResult.Details
	result.GuardrailReport = auditResult.Findings

	if letter != nil {
		result.CoverLetter = letter.Body
		result.CoverLetterTalkingPoints = letter.TalkingPoints
	}

	if opts.Verbose && opts.Printer != nil {
		opts.Printer.PrintGuardrailFindings(auditResult.Findings)
	}

	emit(&opts, "score", "scoring ATS compatibility")
	score := ats.Calculate(result.Bullets,
		profile.Requirements.Keywords,
		profile.Requirements.RequiredSkills,
		profile.Requirements.PreferredSkills)
	result.ATSScore = score
	result.BulletQuality = ats.AssessQuality(result.BulletDetails, len(result.Bullets))
	result.Suggestions = ats.EnrichSuggestions(genOut.Suggestions, score)

	result.JobLocationName = profile.LocationName
	result.JobLocationCoordinates = profile.Coordinates

	if opts.Verbose && opts.Printer != nil {
		opts.Printer.PrintATSScore(score)
		opts.Printer.PrintTokenUsage(result.TokenUsage)
	}
	emit(&opts, "done", fmt.Sprintf("generated %d bullets across %d sections",
		len(result.Bullets), len(result.Sections)))

	return result, nil
}
