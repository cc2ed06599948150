// Package generation orchestrates the multi-round exchange with the text
// generation collaborator: the initial resume request, recovery of its
// structured response, and targeted backfill of any section that came back
// missing or under-populated.
package generation

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/extract"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/llm"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/params"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/prompts"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/repair"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/schemas"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

const backfillMaxTokens = 800

// Input carries everything the initial generation exchange needs. Profile
// is enriched in place when the collaborator returns richer posting data
// than extraction produced.
type Input struct {
	Profile  *types.JobProfile
	Selected map[string][]types.ExperienceSnippet
	Plan     []types.SectionPlanEntry
	Params   params.Parameters
}

// Output is the parsed, validated and backfilled generation result. Usage
// covers the initial exchange plus every backfill round.
type Output struct {
	Title       string
	Summary     string
	Sections    []types.Section
	Bullets     []string
	Details     []types.BulletDetail
	Suggestions []string
	RunID       string
	Usage       types.TokenUsage
	Debug       map[string]any
}

// Orchestrator drives the generation exchanges against one collaborator
// client.
type Orchestrator struct {
	client llm.Client
}

// New creates an orchestrator backed by the given client.
func New(client llm.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// Generate performs the initial resume exchange, parses and repairs the
// response, enriches the job profile with any collaborator-extracted posting
// data, and backfills deficient sections one request each. Even on failure
// the returned Output carries the token usage accumulated so far.
func (o *Orchestrator) Generate(ctx context.Context, in Input) (*Output, error) {
	out := &Output{Debug: map[string]any{}}

	instructions := prompts.MustGet("tailoring.json", "resume-base")
	grounding := ""
	if in.Profile.SourceURL != "" {
		instructions += prompts.MustGet("tailoring.json", "resume-output-grounded")
		grounding = "Search the web for this job posting URL and base the tailoring on its full content: " + in.Profile.SourceURL
	} else {
		instructions += prompts.MustGet("tailoring.json", "resume-output")
	}

	resp, err := o.client.GenerateJSON(ctx, llm.Request{
		Instructions:    instructions,
		Payload:         buildResumePayload(in),
		Temperature:     in.Params.Temperature,
		MaxOutputTokens: in.Params.MaxOutputTokens,
		Grounding:       grounding,
		Tier:            llm.TierAdvanced,
	})
	if err != nil {
		return out, err
	}
	out.Usage.Add(resp.Usage)
	out.RunID = resp.RunID

	text, err := repair.Recover(resp.Text)
	if err != nil {
		return out, malformed("resume generation response", resp.Text, err)
	}
	if err := schemas.ValidateJSONString(schemas.ResumeResponse, text); err != nil {
		return out, malformed("resume generation schema", text, err)
	}

	enrichProfile(in.Profile, text)

	parsed := parseResume(text, in.Params.StretchLevel)
	out.Title = parsed.Title
	out.Summary = parsed.Summary
	out.Suggestions = parsed.Suggestions
	out.Details = parsed.Details
	out.Debug["resume_generation"] = text

	o.backfill(ctx, in, out)

	reindexSections(out.Details, in.Params.Sections)
	out.Sections, out.Bullets = types.ComposeSections(out.Details)

	if !in.Params.IncludeSummary {
		out.Summary = ""
	}
	return out, nil
}

// backfill issues one narrowly-scoped request per deficient section and
// appends the results. A failed backfill leaves that section as-is; the
// pass never runs twice.
func (o *Orchestrator) backfill(ctx context.Context, in Input, out *Output) {
	counts := map[string]int{}
	for _, detail := range out.Details {
		counts[detail.Section]++
	}

	sectionIndex := map[string]int{}
	nextIndex := 0
	for _, detail := range out.Details {
		if _, ok := sectionIndex[detail.Section]; !ok {
			sectionIndex[detail.Section] = detail.SectionIndex
			if detail.SectionIndex >= nextIndex {
				nextIndex = detail.SectionIndex + 1
			}
		}
	}

	for _, name := range in.Params.Sections {
		needed := in.Params.BulletsPerSection - counts[name]
		if needed <= 0 {
			continue
		}

		details, usage := o.backfillSection(ctx, in, name, needed)
		out.Usage.Add(usage)
		if len(details) == 0 {
			continue
		}

		idx, ok := sectionIndex[name]
		if !ok {
			idx = nextIndex
			sectionIndex[name] = idx
			nextIndex++
		}
		offset := counts[name]
		for i := range details {
			details[i].Section = name
			details[i].SectionIndex = idx
			details[i].BulletIndex = offset + i
		}
		counts[name] += len(details)
		out.Details = append(out.Details, details...)
	}
}

// backfillSection requests exactly `count` bullets for one section. Errors
// are swallowed: the section simply stays short.
func (o *Orchestrator) backfillSection(ctx context.Context, in Input, name string, count int) ([]types.BulletDetail, types.TokenUsage) {
	instructions := prompts.Format(prompts.MustGet("tailoring.json", "section-backfill"), map[string]string{
		"BulletCount": strconv.Itoa(count),
		"SectionName": name,
	})

	payload := map[string]any{
		"section_name":        name,
		"bullet_count":        count,
		"job_profile":         in.Profile.PromptDigest(),
		"experience_snippets": snippetPayload(in.Selected),
		"parameters": map[string]any{
			"tone":             in.Params.Tone,
			"stretch_level":    in.Params.StretchLevel,
			"stretch_guidance": params.StretchDescriptor(in.Params.StretchLevel),
		},
	}

	resp, err := o.client.GenerateJSON(ctx, llm.Request{
		Instructions:    instructions,
		Payload:         payload,
		Temperature:     in.Params.Temperature,
		MaxOutputTokens: backfillMaxTokens,
		Tier:            llm.TierStandard,
	})
	if err != nil {
		return nil, types.TokenUsage{}
	}

	text, err := repair.Recover(resp.Text)
	if err != nil {
		return nil, resp.Usage
	}
	if err := schemas.ValidateJSONString(schemas.BackfillResponse, text); err != nil {
		return nil, resp.Usage
	}

	return parseBackfill(text, in.Params.StretchLevel), resp.Usage
}

// reindexSections renumbers section indices so requested sections come
// first, in request order, with any extra collaborator-invented sections
// appended in their original order.
func reindexSections(details []types.BulletDetail, requested []string) {
	present := map[string]bool{}
	for _, detail := range details {
		present[detail.Section] = true
	}

	order := map[string]int{}
	next := 0
	for _, name := range requested {
		if present[name] {
			order[name] = next
			next++
		}
	}

	extras := make([]types.BulletDetail, len(details))
	copy(extras, details)
	sort.SliceStable(extras, func(i, j int) bool {
		return extras[i].SectionIndex < extras[j].SectionIndex
	})
	for _, detail := range extras {
		if _, ok := order[detail.Section]; !ok {
			order[detail.Section] = next
			next++
		}
	}

	for i := range details {
		details[i].SectionIndex = order[details[i].Section]
	}
}

func malformed(message, raw string, err error) error {
	var unrecoverable *repair.UnrecoverableError
	if errors.As(err, &unrecoverable) {
		return &llm.MalformedOutputError{Message: message, Fragment: unrecoverable.Fragment, Cause: err}
	}
	fragment := raw
	if len(fragment) > 500 {
		fragment = fragment[:500]
	}
	return &llm.MalformedOutputError{Message: message, Fragment: fragment, Cause: err}
}

// enrichProfile folds collaborator-extracted posting data back into the job
// profile: a longer description triggers re-extraction, explicit skill lists
// are merged, and any reported location is recorded.
func enrichProfile(profile *types.JobProfile, text string) {
	reqs := jsonGet(text, "job_requirements")
	if reqs.Exists() {
		if desc := reqs.Get("description").String(); len(desc) > len(profile.Description) {
			profile.Description = desc
			profile.Requirements = extract.Requirements(desc)
			profile.Buckets = extract.BucketizeRequirements(profile.Requirements)
		}
		if extra := stringList(reqs.Get("required_skills")); len(extra) > 0 {
			profile.Requirements.RequiredSkills = mergeSorted(profile.Requirements.RequiredSkills, extra)
		}
		if extra := stringList(reqs.Get("preferred_skills")); len(extra) > 0 {
			profile.Requirements.PreferredSkills = mergeSorted(profile.Requirements.PreferredSkills, extra)
		}
	}

	loc := jsonGet(text, "job_location")
	if !loc.Exists() {
		return
	}
	lat := loc.Get("latitude")
	lon := loc.Get("longitude")
	if lat.Exists() && lon.Exists() {
		profile.Coordinates = &types.Coordinates{Lat: lat.Float(), Lon: lon.Float()}
	}
	var parts []string
	for _, key := range []string{"city", "state", "country"} {
		if v := loc.Get(key).String(); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		profile.LocationName = strings.Join(parts, ", ")
	}
}

func mergeSorted(existing, extra []string) []string {
	set := map[string]bool{}
	for _, item := range existing {
		set[item] = true
	}
	for _, item := range extra {
		if item != "" {
			set[item] = true
		}
	}
	merged := make([]string, 0, len(set))
	for item := range set {
		merged = append(merged, item)
	}
	sort.Strings(merged)
	return merged
}
