package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/llm"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/params"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

type scripted struct {
	text string
	err  error
}

type fakeClient struct {
	requests  []llm.Request
	responses []scripted
}

func (f *fakeClient) GenerateJSON(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return nil, &llm.RequestError{Message: "no scripted response"}
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	if next.err != nil {
		return nil, next.err
	}
	return &llm.Response{
		Text:  next.text,
		RunID: "run-1",
		Usage: types.TokenUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}, nil
}

func (f *fakeClient) Close() error { return nil }

func testInput(p params.Parameters) Input {
	profile := &types.JobProfile{
		Description: "Backend engineer role",
		Requirements: types.JobRequirements{
			RequiredSkills: []string{"go"},
			Keywords:       []string{"go", "kubernetes"},
		},
	}
	return Input{
		Profile: profile,
		Selected: map[string][]types.ExperienceSnippet{
			types.BucketProfessional: {
				{ID: "s1", Bucket: types.BucketProfessional, Title: "Engineer", Achievements: []string{"Built a service"}},
			},
		},
		Plan: []types.SectionPlanEntry{
			{Name: types.BucketProfessional, SnippetIDs: []string{"s1"}},
		},
		Params: p,
	}
}

const fullResume = `{
	"title": "Backend Engineer",
	"summary": "Seasoned backend engineer.",
	"sections": [
		{"name": "Professional Experience", "bullets": [
			{"id": "b1-1", "snippet_id": "s1", "text": "Built a high-throughput Go service handling 2M requests daily", "stretch": 1},
			{"id": "b1-2", "snippet_id": "s1", "text": "Reduced deployment time by 40% through Kubernetes automation", "stretch": 0}
		]}
	],
	"suggestions": ["Add Kubernetes certification to strengthen platform credentials"]
}`

func TestGenerateHappyPath(t *testing.T) {
	client := &fakeClient{responses: []scripted{{text: fullResume}}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}
	p.BulletsPerSection = 2

	out, err := o.Generate(context.Background(), testInput(p))
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", out.Title)
	assert.Equal(t, "Seasoned backend engineer.", out.Summary)
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, 150, out.Usage.TotalTokens)

	require.Len(t, out.Sections, 1)
	assert.Equal(t, types.BucketProfessional, out.Sections[0].Name)
	assert.Len(t, out.Sections[0].Bullets, 2)
	assert.Len(t, out.Bullets, 2)
	assert.Len(t, out.Details, 2)
	assert.Equal(t, "s1", out.Details[0].SnippetID)

	// one request, no backfill needed
	require.Len(t, client.requests, 1)
	assert.Equal(t, llm.TierAdvanced, client.requests[0].Tier)
	assert.Empty(t, client.requests[0].Grounding)
}

func TestGenerateGroundsWhenSourceURLSet(t *testing.T) {
	client := &fakeClient{responses: []scripted{{text: fullResume}}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}
	p.BulletsPerSection = 2

	in := testInput(p)
	in.Profile.SourceURL = "https://example.com/jobs/42"

	_, err := o.Generate(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].Grounding, "https://example.com/jobs/42")
}

func TestGenerateBackfillsShortSection(t *testing.T) {
	backfill := `{"bullets": [
		{"snippet_id": "s1", "text": "Mentored two junior engineers on Go best practices", "stretch": 1}
	]}`
	client := &fakeClient{responses: []scripted{{text: fullResume}, {text: backfill}}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}
	p.BulletsPerSection = 3

	out, err := o.Generate(context.Background(), testInput(p))
	require.NoError(t, err)

	require.Len(t, client.requests, 2)
	assert.Equal(t, llm.TierStandard, client.requests[1].Tier)
	assert.Equal(t, backfillMaxTokens, client.requests[1].MaxOutputTokens)

	require.Len(t, out.Details, 3)
	added := out.Details[2]
	assert.Equal(t, "fix-1", added.ID)
	assert.Equal(t, types.BucketProfessional, added.Section)
	assert.Equal(t, 2, added.BulletIndex)

	require.Len(t, out.Sections, 1)
	assert.Len(t, out.Sections[0].Bullets, 3)
	assert.Equal(t, 300, out.Usage.TotalTokens)
}

func TestGenerateBackfillFailureIsSoft(t *testing.T) {
	client := &fakeClient{responses: []scripted{
		{text: fullResume},
		{err: &llm.RequestError{Message: "timeout"}},
	}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}
	p.BulletsPerSection = 3

	out, err := o.Generate(context.Background(), testInput(p))
	require.NoError(t, err)
	assert.Len(t, out.Details, 2)
	assert.Len(t, out.Sections[0].Bullets, 2)
}

func TestGenerateMalformedResponseCarriesUsage(t *testing.T) {
	client := &fakeClient{responses: []scripted{
		{text: "I could not produce the resume you asked for because the posting was too vague to work with and I would rather describe my concerns in plain prose than emit the JSON structure you requested from me here."},
	}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}

	out, err := o.Generate(context.Background(), testInput(p))
	require.Error(t, err)

	var malformedErr *llm.MalformedOutputError
	require.ErrorAs(t, err, &malformedErr)
	assert.NotEmpty(t, malformedErr.Fragment)
	assert.Equal(t, 150, out.Usage.TotalTokens)
}

func TestGenerateRequestErrorPropagates(t *testing.T) {
	client := &fakeClient{responses: []scripted{{err: &llm.RequestError{Message: "boom"}}}}
	o := New(client)

	p := params.Defaults()
	_, err := o.Generate(context.Background(), testInput(p))

	var reqErr *llm.RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestGenerateReordersToRequestedLayout(t *testing.T) {
	shuffled := `{
		"title": "Engineer",
		"sections": [
			{"name": "Projects", "bullets": [{"text": "Shipped an open source CLI adopted by 500 developers"}]},
			{"name": "Professional Experience", "bullets": [{"text": "Built a payments service processing $3M monthly"}]},
			{"name": "Volunteering", "bullets": [{"text": "Organized a weekly coding club for 30 students"}]}
		]
	}`
	client := &fakeClient{responses: []scripted{{text: shuffled}}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional, types.BucketProjects}
	p.BulletsPerSection = 1

	out, err := o.Generate(context.Background(), testInput(p))
	require.NoError(t, err)

	require.Len(t, out.Sections, 3)
	assert.Equal(t, types.BucketProfessional, out.Sections[0].Name)
	assert.Equal(t, types.BucketProjects, out.Sections[1].Name)
	assert.Equal(t, "Volunteering", out.Sections[2].Name)
}

func TestGenerateEnrichesProfile(t *testing.T) {
	enriched := `{
		"title": "Engineer",
		"sections": [
			{"name": "Professional Experience", "bullets": [{"text": "Built a service"}]}
		],
		"job_requirements": {
			"required_skills": ["terraform"],
			"preferred_skills": ["rust"]
		},
		"job_location": {"city": "Austin", "state": "TX", "latitude": 30.27, "longitude": -97.74}
	}`
	client := &fakeClient{responses: []scripted{{text: enriched}}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}
	p.BulletsPerSection = 1

	in := testInput(p)
	out, err := o.Generate(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, []string{"go", "terraform"}, in.Profile.Requirements.RequiredSkills)
	assert.Contains(t, in.Profile.Requirements.PreferredSkills, "rust")
	assert.Equal(t, "Austin, TX", in.Profile.LocationName)
	require.NotNil(t, in.Profile.Coordinates)
	assert.InDelta(t, 30.27, in.Profile.Coordinates.Lat, 0.001)
}

func TestGenerateDropsSummaryWhenExcluded(t *testing.T) {
	client := &fakeClient{responses: []scripted{{text: fullResume}}}
	o := New(client)

	p := params.Defaults()
	p.Sections = []string{types.BucketProfessional}
	p.BulletsPerSection = 2
	p.IncludeSummary = false

	out, err := o.Generate(context.Background(), testInput(p))
	require.NoError(t, err)
	assert.Empty(t, out.Summary)
}

func TestParseResumeAssignsPositionalIDs(t *testing.T) {
	text := `{
		"sections": [
			{"name": "", "bullets": [
				{"text": "Led migration of legacy services to Go"},
				"Delivered quarterly roadmap two weeks early"
			]}
		]
	}`
	parsed := parseResume(text, 2)

	require.Len(t, parsed.Details, 2)
	assert.Equal(t, "b1-1", parsed.Details[0].ID)
	assert.Equal(t, "b1-2", parsed.Details[1].ID)
	assert.Equal(t, 2, parsed.Details[0].Stretch)
	assert.Equal(t, 2, parsed.Details[1].Stretch)
}

func TestParseBulletClampsStretch(t *testing.T) {
	parsed := parseResume(`{"sections":[{"name":"X","bullets":[{"text":"Did a thing","stretch":9}]}]}`, 1)
	require.Len(t, parsed.Details, 1)
	assert.Equal(t, 3, parsed.Details[0].Stretch)
}

func TestGenerateCoverLetter(t *testing.T) {
	letter := `{"cover_letter": "Dear Hiring Team,\n\nI build reliable systems.", "talking_points": ["Go services at scale"]}`
	client := &fakeClient{responses: []scripted{{text: letter}}}
	o := New(client)

	p := params.Defaults()
	p.Temperature = 0.05

	in := testInput(p)
	resume := &Output{Title: "Engineer", Summary: "Builder."}

	got, usage, err := o.GenerateCoverLetter(context.Background(), in, resume)
	require.NoError(t, err)

	assert.Contains(t, got.Body, "Dear Hiring Team")
	assert.Equal(t, []string{"Go services at scale"}, got.TalkingPoints)
	assert.Equal(t, 150, usage.TotalTokens)

	// temperature floor applies
	require.Len(t, client.requests, 1)
	assert.InDelta(t, 0.2, client.requests[0].Temperature, 0.0001)
	assert.Equal(t, coverLetterMaxTokens, client.requests[0].MaxOutputTokens)
}

func TestGenerateCoverLetterEmptyBody(t *testing.T) {
	client := &fakeClient{responses: []scripted{{text: `{"cover_letter": ""}`}}}
	o := New(client)

	p := params.Defaults()
	_, _, err := o.GenerateCoverLetter(context.Background(), testInput(p), &Output{})

	var emptyErr *llm.EmptyOutputError
	require.True(t, errors.As(err, &emptyErr))
}
