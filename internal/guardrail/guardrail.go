// Package guardrail audits generated bullets against their source snippets
// and rewrites the ones that overstate. The whole pass is fail-soft: any
// unusable collaborator output leaves the resume untouched and records a
// note instead of failing the run.
package guardrail

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/llm"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/params"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/prompts"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/repair"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/schemas"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

const (
	auditMaxTokens = 1200
	auditTemp      = 0.0
	regenMaxTokens = 400
	regenTemp      = 0.2
)

// Input bundles the material the audit needs: the generated details, the
// snippets they were grounded on (keyed by snippet id), and the job context
// the audit judges relevance against.
type Input struct {
	Profile  *types.JobProfile
	Snippets map[string]types.ExperienceSnippet
	Details  []types.BulletDetail
	Params   params.Parameters
}

// Result reports what the pass did. Applied is false when the audit itself
// never completed; Details always holds a usable bullet set either way.
type Result struct {
	Applied     bool
	Findings    []types.GuardrailFinding
	Regenerated []string
	Details     []types.BulletDetail
	Sections    []types.Section
	Bullets     []string
	Notes       []string
	Usage       types.TokenUsage
}

// Auditor runs the audit and regeneration exchanges against one
// collaborator client.
type Auditor struct {
	client llm.Client
}

// New creates an auditor backed by the given client.
func New(client llm.Client) *Auditor {
	return &Auditor{client: client}
}

// Enforce audits every bullet at temperature zero, then regenerates flagged
// bullets that have a known source snippet. Replacement edits overwrite only
// text, stretch and metrics, so layout indices and ids survive and the
// rebuilt sections keep their original order.
func (a *Auditor) Enforce(ctx context.Context, in Input) *Result {
	res := &Result{Details: in.Details}
	defer func() {
		res.Sections, res.Bullets = types.ComposeSections(res.Details)
	}()

	if len(in.Details) == 0 {
		res.Applied = true
		return res
	}

	findings, ok := a.audit(ctx, in, res)
	if !ok {
		return res
	}
	res.Applied = true
	res.Findings = findings

	byID := map[string]*types.BulletDetail{}
	details := make([]types.BulletDetail, len(in.Details))
	copy(details, in.Details)
	for i := range details {
		byID[details[i].ID] = &details[i]
	}

	var regenerable []types.GuardrailFinding
	for _, finding := range findings {
		if !finding.Status.Flagged() {
			continue
		}
		if _, known := byID[finding.BulletID]; !known {
			continue
		}
		if _, grounded := in.Snippets[finding.SnippetID]; !grounded {
			// nothing to rewrite against, leave the bullet alone
			continue
		}
		regenerable = append(regenerable, finding)
	}
	if len(regenerable) == 0 {
		return res
	}

	replacements, ok := a.regenerate(ctx, in, regenerable, res)
	if !ok {
		return res
	}

	for id, repl := range replacements {
		detail, known := byID[id]
		if !known || repl.text == "" {
			continue
		}
		detail.Text = repl.text
		detail.Stretch = repl.stretch
		if len(repl.metrics) > 0 {
			detail.Metrics = repl.metrics
		}
		res.Regenerated = append(res.Regenerated, id)
	}
	res.Details = details
	return res
}

// audit runs the zero-temperature review exchange. A false return means the
// audit produced nothing usable and the pass should fall through untouched.
func (a *Auditor) audit(ctx context.Context, in Input, res *Result) ([]types.GuardrailFinding, bool) {
	candidates := make([]map[string]any, 0, len(in.Details))
	for _, detail := range in.Details {
		candidates = append(candidates, map[string]any{
			"bullet_id":  detail.ID,
			"snippet_id": detail.SnippetID,
			"section":    detail.Section,
			"text":       detail.Text,
			"stretch":    detail.Stretch,
		})
	}
	facts := make(map[string]types.SnippetFacts, len(in.Snippets))
	for id, snippet := range in.Snippets {
		facts[id] = snippet.Facts()
	}

	payload := map[string]any{
		"stretch_policy": map[string]any{
			"level":    in.Params.StretchLevel,
			"guidance": params.StretchDescriptor(in.Params.StretchLevel),
		},
		"job_keywords":      in.Profile.Requirements.Keywords,
		"required_skills":   in.Profile.Requirements.RequiredSkills,
		"bullet_candidates": candidates,
		"snippets":          facts,
		"output_schema": map[string]any{
			"findings": []map[string]any{
				{
					"bullet_id":  "str",
					"snippet_id": "str",
					"status":     "str - one of: ok, needs_revision, reject",
					"reasons":    "list[str]",
				},
			},
		},
	}

	resp, err := a.client.GenerateJSON(ctx, llm.Request{
		Instructions:    prompts.MustGet("tailoring.json", "guardrail-audit"),
		Payload:         payload,
		Temperature:     auditTemp,
		MaxOutputTokens: auditMaxTokens,
		Tier:            llm.TierStandard,
	})
	if err != nil {
		res.Notes = append(res.Notes, "guardrail audit request failed; bullets kept as generated")
		return nil, false
	}
	res.Usage.Add(resp.Usage)

	text, err := repair.Recover(resp.Text)
	if err != nil {
		res.Notes = append(res.Notes, "guardrail audit response unparseable; bullets kept as generated")
		return nil, false
	}
	if err := schemas.ValidateJSONString(schemas.GuardrailResponse, text); err != nil {
		res.Notes = append(res.Notes, "guardrail audit response malformed; bullets kept as generated")
		return nil, false
	}

	var findings []types.GuardrailFinding
	gjson.Get(text, "findings").ForEach(func(_, f gjson.Result) bool {
		finding := types.GuardrailFinding{
			BulletID:  f.Get("bullet_id").String(),
			SnippetID: f.Get("snippet_id").String(),
			Status:    types.GuardrailStatus(f.Get("status").String()),
		}
		f.Get("reasons").ForEach(func(_, r gjson.Result) bool {
			if r.String() != "" {
				finding.Reasons = append(finding.Reasons, r.String())
			}
			return true
		})
		if finding.BulletID != "" {
			findings = append(findings, finding)
		}
		return true
	})
	return findings, true
}

type replacement struct {
	text    string
	stretch int
	metrics []string
}

// regenerate rewrites the flagged bullets in one exchange. A false return
// keeps the flagged bullets as generated.
func (a *Auditor) regenerate(ctx context.Context, in Input, flagged []types.GuardrailFinding, res *Result) (map[string]replacement, bool) {
	byID := map[string]types.BulletDetail{}
	for _, detail := range in.Details {
		byID[detail.ID] = detail
	}

	rewrites := make([]map[string]any, 0, len(flagged))
	facts := map[string]types.SnippetFacts{}
	for _, finding := range flagged {
		detail := byID[finding.BulletID]
		rewrites = append(rewrites, map[string]any{
			"bullet_id":  finding.BulletID,
			"snippet_id": finding.SnippetID,
			"section":    detail.Section,
			"text":       detail.Text,
			"reasons":    finding.Reasons,
		})
		snippet := in.Snippets[finding.SnippetID]
		facts[finding.SnippetID] = snippet.Facts()
	}

	payload := map[string]any{
		"bullets_to_rewrite": rewrites,
		"snippets":           facts,
		"job_keywords":       in.Profile.Requirements.Keywords,
		"stretch_policy": map[string]any{
			"level":    in.Params.StretchLevel,
			"guidance": params.StretchDescriptor(in.Params.StretchLevel),
		},
		"tone": in.Params.Tone,
		"output_schema": map[string]any{
			"replacements": []map[string]any{
				{
					"bullet_id": "str",
					"text":      "str - Rewritten bullet grounded strictly in snippet facts",
					"stretch":   "int 0-3",
					"metrics":   "optional list[str]",
				},
			},
		},
	}

	resp, err := a.client.GenerateJSON(ctx, llm.Request{
		Instructions:    prompts.MustGet("tailoring.json", "bullet-regeneration"),
		Payload:         payload,
		Temperature:     regenTemp,
		MaxOutputTokens: regenMaxTokens,
		Tier:            llm.TierStandard,
	})
	if err != nil {
		res.Notes = append(res.Notes, "bullet regeneration request failed; flagged bullets kept as generated")
		return nil, false
	}
	res.Usage.Add(resp.Usage)

	text, err := repair.Recover(resp.Text)
	if err != nil {
		res.Notes = append(res.Notes, "bullet regeneration response unparseable; flagged bullets kept as generated")
		return nil, false
	}
	if err := schemas.ValidateJSONString(schemas.RegenerationResponse, text); err != nil {
		res.Notes = append(res.Notes, "bullet regeneration response malformed; flagged bullets kept as generated")
		return nil, false
	}

	replacements := map[string]replacement{}
	gjson.Get(text, "replacements").ForEach(func(_, r gjson.Result) bool {
		id := r.Get("bullet_id").String()
		if id == "" {
			return true
		}
		stretch := in.Params.StretchLevel
		if s := r.Get("stretch"); s.Exists() {
			stretch = int(s.Int())
		}
		if stretch < 0 {
			stretch = 0
		}
		if stretch > 3 {
			stretch = 3
		}
		var metrics []string
		r.Get("metrics").ForEach(func(_, m gjson.Result) bool {
			if m.String() != "" {
				metrics = append(metrics, m.String())
			}
			return true
		})
		replacements[id] = replacement{
			text:    r.Get("text").String(),
			stretch: stretch,
			metrics: metrics,
		}
		return true
	})
	return replacements, true
}
