package guardrail

import (
	"context"
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
		Usage: types.TokenUsage{PromptTokens: 80, CompletionTokens: 40, TotalTokens: 120},
	}, nil
}

func (f *fakeClient) Close() error { return nil }

func testInput() Input {
	return Input{
		Profile: &types.JobProfile{
			Requirements: types.JobRequirements{
				Keywords:       []string{"go", "kubernetes"},
				RequiredSkills: []string{"go"},
			},
		},
		Snippets: map[string]types.ExperienceSnippet{
			"s1": {ID: "s1", Summary: "Backend engineer", Achievements: []string{"Built a Go service"}},
		},
		Details: []types.BulletDetail{
			{ID: "b1-1", SnippetID: "s1", Text: "Built a Go service used by two teams", Stretch: 1, Section: "Professional Experience", SectionIndex: 0, BulletIndex: 0},
			{ID: "b1-2", SnippetID: "s1", Text: "Single-handedly rebuilt the entire platform in a weekend", Stretch: 3, Section: "Professional Experience", SectionIndex: 0, BulletIndex: 1},
		},
		Params: params.Defaults(),
	}
}

func TestEnforceAllClean(t *testing.T) {
	audit := `{"findings": [
		{"bullet_id": "b1-1", "snippet_id": "s1", "status": "ok", "reasons": []},
		{"bullet_id": "b1-2", "snippet_id": "s1", "status": "ok", "reasons": []}
	]}`
	client := &fakeClient{responses: []scripted{{text: audit}}}

	res := New(client).Enforce(context.Background(), testInput())

	assert.True(t, res.Applied)
	assert.Len(t, res.Findings, 2)
	assert.Empty(t, res.Regenerated)
	assert.Len(t, res.Bullets, 2)
	require.Len(t, client.requests, 1)
	assert.InDelta(t, 0.0, client.requests[0].Temperature, 0.0001)
	assert.Equal(t, auditMaxTokens, client.requests[0].MaxOutputTokens)
}

func TestEnforceRegeneratesFlaggedBullet(t *testing.T) {
	audit := `{"findings": [
		{"bullet_id": "b1-1", "snippet_id": "s1", "status": "ok", "reasons": []},
		{"bullet_id": "b1-2", "snippet_id": "s1", "status": "needs_revision", "reasons": ["overstates scope"]}
	]}`
	regen := `{"replacements": [
		{"bullet_id": "b1-2", "text": "Rebuilt a core platform component over one sprint", "stretch": 1, "metrics": ["1 sprint"]}
	]}`
	client := &fakeClient{responses: []scripted{{text: audit}, {text: regen}}}

	res := New(client).Enforce(context.Background(), testInput())

	assert.True(t, res.Applied)
	assert.Equal(t, []string{"b1-2"}, res.Regenerated)
	require.Len(t, res.Details, 2)
	assert.Equal(t, "Rebuilt a core platform component over one sprint", res.Details[1].Text)
	assert.Equal(t, 1, res.Details[1].Stretch)
	assert.Equal(t, []string{"1 sprint"}, res.Details[1].Metrics)
	// layout untouched
	assert.Equal(t, "b1-2", res.Details[1].ID)
	assert.Equal(t, 1, res.Details[1].BulletIndex)
	assert.Equal(t, 240, res.Usage.TotalTokens)

	require.Len(t, client.requests, 2)
	assert.InDelta(t, regenTemp, client.requests[1].Temperature, 0.0001)
	assert.Equal(t, regenMaxTokens, client.requests[1].MaxOutputTokens)
}

func TestEnforceSkipsFlaggedWithoutSnippet(t *testing.T) {
	audit := `{"findings": [
		{"bullet_id": "b1-2", "snippet_id": "unknown", "status": "reject", "reasons": ["no source"]}
	]}`
	client := &fakeClient{responses: []scripted{{text: audit}}}

	res := New(client).Enforce(context.Background(), testInput())

	assert.True(t, res.Applied)
	assert.Empty(t, res.Regenerated)
	// no regeneration request was issued
	assert.Len(t, client.requests, 1)
	assert.Equal(t, "Single-handedly rebuilt the entire platform in a weekend", res.Details[1].Text)
}

func TestEnforceAuditFailureIsSoft(t *testing.T) {
	client := &fakeClient{responses: []scripted{{err: &llm.RequestError{Message: "timeout"}}}}

	in := testInput()
	res := New(client).Enforce(context.Background(), in)

	assert.False(t, res.Applied)
	assert.NotEmpty(t, res.Notes)
	assert.Equal(t, in.Details, res.Details)
	assert.Len(t, res.Bullets, 2)
}

func TestEnforceUnparseableAuditIsSoft(t *testing.T) {
	client := &fakeClient{responses: []scripted{{text: "I reviewed the bullets and they mostly look fine to me, though one of them does seem to exaggerate the scope of the work quite a bit more than the underlying achievements would reasonably support in my view."}}}

	res := New(client).Enforce(context.Background(), testInput())

	assert.False(t, res.Applied)
	assert.NotEmpty(t, res.Notes)
	assert.Len(t, res.Details, 2)
}

func TestEnforceRegenFailureKeepsFlaggedBullets(t *testing.T) {
	audit := `{"findings": [
		{"bullet_id": "b1-2", "snippet_id": "s1", "status": "reject", "reasons": ["fabricated"]}
	]}`
	client := &fakeClient{responses: []scripted{{text: audit}, {err: &llm.RequestError{Message: "timeout"}}}}

	res := New(client).Enforce(context.Background(), testInput())

	assert.True(t, res.Applied)
	assert.Empty(t, res.Regenerated)
	assert.NotEmpty(t, res.Notes)
	assert.Equal(t, "Single-handedly rebuilt the entire platform in a weekend", res.Details[1].Text)
}

func TestEnforceEmptyDetails(t *testing.T) {
	client := &fakeClient{}
	in := testInput()
	in.Details = nil

	res := New(client).Enforce(context.Background(), in)

	assert.True(t, res.Applied)
	assert.Empty(t, client.requests)
	assert.Empty(t, res.Bullets)
}

func TestEnforceIgnoresReplacementWithEmptyText(t *testing.T) {
	audit := `{"findings": [
		{"bullet_id": "b1-2", "snippet_id": "s1", "status": "needs_revision", "reasons": ["vague"]}
	]}`
	regen := `{"replacements": [{"bullet_id": "b1-2", "text": ""}]}`
	client := &fakeClient{responses: []scripted{{text: audit}, {text: regen}}}

	res := New(client).Enforce(context.Background(), testInput())

	assert.True(t, res.Applied)
	assert.Empty(t, res.Regenerated)
	assert.Equal(t, "Single-handedly rebuilt the entire platform in a weekend", res.Details[1].Text)
}
