package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/llm"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/params"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// routingClient answers by request shape instead of call order, because the
// guardrail and cover letter exchanges run concurrently.
type routingClient struct {
	mu         sync.Mutex
	resume     string
	resumeErr  error
	backfill   string
	audit      string
	auditErr   error
	regen      string
	letter     string
	letterErr  error
	callCounts map[string]int
}

func (c *routingClient) GenerateJSON(_ context.Context, req llm.Request) (*llm.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.callCounts == nil {
		c.callCounts = map[string]int{}
	}

	payload, _ := req.Payload.(map[string]any)
	kind := "unknown"
	switch {
	case payload["generation_rules"] != nil:
		kind = "resume"
	case payload["section_name"] != nil:
		kind = "backfill"
	case payload["bullet_candidates"] != nil:
		kind = "audit"
	case payload["bullets_to_rewrite"] != nil:
		kind = "regen"
	case payload["resume_title"] != nil:
		kind = "letter"
	}
	c.callCounts[kind]++

	var text string
	var err error
	switch kind {
	case "resume":
		text, err = c.resume, c.resumeErr
	case "backfill":
		text = c.backfill
	case "audit":
		text, err = c.audit, c.auditErr
	case "regen":
		text = c.regen
	case "letter":
		text, err = c.letter, c.letterErr
	}
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, &llm.RequestError{Message: "no scripted response for " + kind}
	}
	return &llm.Response{
		Text:  text,
		RunID: "run-" + kind,
		Usage: types.TokenUsage{PromptTokens: 70, CompletionTokens: 30, TotalTokens: 100},
	}, nil
}

func (c *routingClient) Close() error { return nil }

const jobDescription = `Backend Engineer

Requirements:
- 5+ years of Go experience is required
- Kubernetes experience is required

Preferred:
- Terraform experience is a strong bonus for this role
`

func testGraph() types.ExperienceGraph {
	return types.ExperienceGraph{
		Experiences: []types.ExperienceEntry{
			{
				ID:           "s1",
				Title:        "Software Engineer",
				Company:      "Acme",
				Achievements: []string{"Built a Go service handling 2M requests daily"},
				Skills:       []string{"go", "kubernetes"},
			},
		},
	}
}

const resumeJSON = `{
	"title": "Backend Engineer",
	"summary": "Go engineer with platform experience.",
	"sections": [
		{"name": "Professional Experience", "bullets": [
			{"id": "b1-1", "snippet_id": "s1", "text": "Built a Go service on Kubernetes handling 2M requests daily", "stretch": 1}
		]}
	],
	"suggestions": ["Add Terraform modules you have authored to the infrastructure section"]
}`

const auditAllClean = `{"findings": [{"bullet_id": "b1-1", "snippet_id": "s1", "status": "ok", "reasons": []}]}`

func baseOptions(client llm.Client) Options {
	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}
	p.BulletsPerSection = 1
	return Options{
		Description: jobDescription,
		Graph:       testGraph(),
		Params:      p,
		Client:      client,
	}
}

func TestRunRequiresDescriptionOrURL(t *testing.T) {
	_, err := Run(context.Background(), Options{Client: &routingClient{}})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestRunEndToEnd(t *testing.T) {
	client := &routingClient{resume: resumeJSON, audit: auditAllClean}

	var steps []string
	opts := baseOptions(client)
	opts.OnProgress = func(event ProgressEvent) {
		steps = append(steps, event.Step)
	}

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", result.Title)
	assert.Equal(t, "Go engineer with platform experience.", result.Summary)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, types.BucketProfessional, result.Sections[0].Name)
	assert.Len(t, result.Bullets, 1)
	require.NotNil(t, result.ATSScore)
	assert.Greater(t, result.ATSScore.OverallScore, 0.0)
	require.NotNil(t, result.BulletQuality)
	assert.NotEmpty(t, result.Suggestions)
	assert.Len(t, result.GuardrailReport, 1)
	assert.Equal(t, 200, result.TokenUsage.TotalTokens) // resume + audit
	assert.Empty(t, result.CoverLetter)

	assert.Contains(t, steps, "extract")
	assert.Contains(t, steps, "generate")
	assert.Contains(t, steps, "done")
	assert.Equal(t, 1, client.callCounts["resume"])
	assert.Equal(t, 1, client.callCounts["audit"])
	assert.Zero(t, client.callCounts["letter"])
}

func TestRunWithCoverLetter(t *testing.T) {
	client := &routingClient{
		resume: resumeJSON,
		audit:  auditAllClean,
		letter: `{"cover_letter": "Dear Hiring Team, I build Go services.", "talking_points": ["Kubernetes at scale"]}`,
	}

	opts := baseOptions(client)
	opts.Params.IncludeCoverLetter = true

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, result.CoverLetter, "Dear Hiring Team")
	assert.Equal(t, []string{"Kubernetes at scale"}, result.CoverLetterTalkingPoints)
	assert.Equal(t, 300, result.TokenUsage.TotalTokens) // resume + audit + letter
}

func TestRunCoverLetterFailureIsSoft(t *testing.T) {
	client := &routingClient{
		resume:    resumeJSON,
		audit:     auditAllClean,
		letterErr: &llm.RequestError{Message: "timeout"},
	}

	opts := baseOptions(client)
	opts.Params.IncludeCoverLetter = true

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, result.CoverLetter)
	assert.Len(t, result.Bullets, 1)
}

func TestRunGenerationFailureCarriesUsage(t *testing.T) {
	client := &routingClient{
		resume: "I am sorry but I cannot produce the structured resume output you asked for, and instead of returning the JSON document I will simply explain my reasoning at great length in plain English prose right here.",
	}

	result, err := Run(context.Background(), baseOptions(client))
	require.Error(t, err)

	var malformedErr *llm.MalformedOutputError
	assert.ErrorAs(t, err, &malformedErr)
	require.NotNil(t, result)
	assert.Equal(t, 100, result.TokenUsage.TotalTokens)
}

func TestRunGuardrailFailureIsSoft(t *testing.T) {
	client := &routingClient{
		resume:   resumeJSON,
		auditErr: &llm.RequestError{Message: "timeout"},
	}

	result, err := Run(context.Background(), baseOptions(client))
	require.NoError(t, err)

	// bullets survive untouched, report is empty
	assert.Len(t, result.Bullets, 1)
	assert.Empty(t, result.GuardrailReport)
	assert.Contains(t, result.Bullets[0], "Built a Go service")
}

func TestRunRegeneratesFlaggedBullet(t *testing.T) {
	client := &routingClient{
		resume: resumeJSON,
		audit: `{"findings": [
			{"bullet_id": "b1-1", "snippet_id": "s1", "status": "needs_revision", "reasons": ["overstates"]}
		]}`,
		regen: `{"replacements": [
			{"bullet_id": "b1-1", "text": "Delivered a Go service processing 2M requests daily", "stretch": 1}
		]}`,
	}

	result, err := Run(context.Background(), baseOptions(client))
	require.NoError(t, err)

	require.Len(t, result.Bullets, 1)
	assert.True(t, strings.HasPrefix(result.Bullets[0], "Delivered"))
	assert.Equal(t, 300, result.TokenUsage.TotalTokens) // resume + audit + regen
}
