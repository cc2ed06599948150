package generation

import (
	"context"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/llm"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/prompts"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/repair"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/schemas"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

const (
	coverLetterMaxTokens   = 600
	coverLetterMinTemp     = 0.2
	coverLetterParagraphs  = 3
	coverLetterWordsTarget = 250
)

// CoverLetter is the optional companion document generated after the resume
// round.
type CoverLetter struct {
	Body          string   `json:"body"`
	TalkingPoints []string `json:"talking_points,omitempty"`
}

// GenerateCoverLetter writes a short cover letter grounded in the tailored
// resume. The exchange runs at a floor temperature so the letter stays
// coherent even when the resume round ran hot.
func (o *Orchestrator) GenerateCoverLetter(ctx context.Context, in Input, resume *Output) (*CoverLetter, types.TokenUsage, error) {
	temp := in.Params.Temperature
	if temp < coverLetterMinTemp {
		temp = coverLetterMinTemp
	}

	payload := map[string]any{
		"job_profile":    in.Profile.PromptDigest(),
		"resume_title":   resume.Title,
		"resume_summary": resume.Summary,
		"resume_sections": resume.Sections,
		"parameters": map[string]any{
			"tone":         in.Params.Tone,
			"paragraphs":   coverLetterParagraphs,
			"target_words": coverLetterWordsTarget,
			"inserts":      in.Params.CoverLetterInserts,
		},
		"output_schema": map[string]any{
			"cover_letter":   "str - Complete cover letter body, no placeholders or bracketed blanks",
			"talking_points": "list[str] - 3-5 interview talking points derived from the letter",
		},
	}

	resp, err := o.client.GenerateJSON(ctx, llm.Request{
		Instructions:    prompts.MustGet("tailoring.json", "cover-letter"),
		Payload:         payload,
		Temperature:     temp,
		MaxOutputTokens: coverLetterMaxTokens,
		Tier:            llm.TierStandard,
	})
	if err != nil {
		return nil, types.TokenUsage{}, err
	}

	text, err := repair.Recover(resp.Text)
	if err != nil {
		return nil, resp.Usage, malformed("cover letter response", resp.Text, err)
	}
	if err := schemas.ValidateJSONString(schemas.CoverLetterResponse, text); err != nil {
		return nil, resp.Usage, malformed("cover letter schema", text, err)
	}

	letter := &CoverLetter{
		Body:          jsonGet(text, "cover_letter").String(),
		TalkingPoints: stringList(jsonGet(text, "talking_points")),
	}
	if letter.Body == "" {
		return nil, resp.Usage, &llm.EmptyOutputError{Message: "cover letter body missing from response"}
	}
	return letter, resp.Usage, nil
}
