package generation

import (
	"fmt"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/params"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// buildResumePayload assembles the structured payload for the initial
// generation exchange: the job digest, snippet pool, section plan, sampling
// parameters, explicit formatting rules, and a schema sketch the model must
// mirror.
func buildResumePayload(in Input) map[string]any {
	p := in.Params
	payload := map[string]any{
		"job_profile":         in.Profile.PromptDigest(),
		"experience_snippets": snippetPayload(in.Selected),
		"section_plan":        in.Plan,
		"parameters": map[string]any{
			"tone":                p.Tone,
			"bullets_per_section": p.BulletsPerSection,
			"include_summary":     p.IncludeSummary,
			"stretch_level":       p.StretchLevel,
			"stretch_guidance":    params.StretchDescriptor(p.StretchLevel),
		},
		"generation_rules": generationRules(p.BulletsPerSection),
		"output_schema":    outputSchema(p.BulletsPerSection),
	}
	if in.Profile.SourceURL != "" {
		payload["job_posting_url"] = in.Profile.SourceURL
	}
	return payload
}

func snippetPayload(selected map[string][]types.ExperienceSnippet) map[string][]map[string]any {
	payload := make(map[string][]map[string]any, len(selected))
	for bucket, snippets := range selected {
		entries := make([]map[string]any, 0, len(snippets))
		for i := range snippets {
			entries = append(entries, snippets[i].PromptDict())
		}
		payload[bucket] = entries
	}
	return payload
}

func generationRules(bulletsPerSection int) []string {
	return []string{
		fmt.Sprintf("CRITICAL: Generate EXACTLY %d bullet points for EACH section listed in section_plan. DO NOT generate more bullets for one section and fewer for another.", bulletsPerSection),
		fmt.Sprintf("Each section in your output must contain exactly %d bullets - no more, no fewer. Distribute bullets evenly across all sections.", bulletsPerSection),
		"Use snippet achievements verbatim where possible; never invent employers or roles.",
		"Start every bullet with a strong action verb (Built, Architected, Developed, Led, Optimized, etc.) and include quantifiable metrics when provided.",
		"Respect the stretch guidance and do not exceed the allowed exaggeration from source achievements.",
		"Maintain ATS-friendly length (100-180 characters) and mirror critical job keywords naturally, while sounding like a human.",
		"Return bullet objects with snippet references and stretch assessment (0-3).",
		"NEVER use '+' as a substitute for 'and' - always spell out 'and' in full (e.g., 'React and TypeScript', not 'React + TypeScript').",
		"Write in complete, professional sentences with proper grammar and punctuation.",
		"Provide context for each achievement: explain WHAT you built, WHY it mattered, and the IMPACT it delivered.",
		"Use industry-standard terminology and avoid casual language or abbreviations without context.",
		"When mentioning technologies, integrate them naturally into the achievement narrative rather than listing them.",
		"Quantify impact with specific metrics: percentages, dollar amounts, time savings, user counts, or performance improvements.",
		"Ensure each bullet demonstrates business value, not just technical tasks completed.",
		"Avoid redundant or vague phrases like 'enhancing user experience' - be specific about the enhancement and its measurable outcome.",
	}
}

func outputSchema(bulletsPerSection int) map[string]any {
	return map[string]any{
		"title":   "str - Job title the candidate is targeting",
		"summary": "optional str - 2-3 sentence compelling value proposition tailored to this specific role",
		"job_location": map[string]any{
			"city":      "optional str",
			"state":     "optional str",
			"country":   "optional str",
			"latitude":  "optional float",
			"longitude": "optional float",
		},
		"job_requirements": map[string]any{
			"description":      "optional str - When using web search, include extracted job description here",
			"required_skills":  "optional list[str] - Required technical and soft skills",
			"preferred_skills": "optional list[str] - Preferred/nice-to-have skills",
			"responsibilities": "optional list[str] - Key responsibilities",
			"qualifications":   "optional list[str] - Required qualifications",
		},
		"sections": []map[string]any{
			{
				"name":    "str - MUST use exact section name from section_plan (DO NOT change or rename - copy the exact string)",
				"bullets": fmt.Sprintf("Array of EXACTLY %d bullet objects (not fewer, not more). Each bullet must be a separate object:", bulletsPerSection),
				"bullet_structure": map[string]any{
					"id":         "str",
					"snippet_id": "str",
					"text":       "str - Complete sentence with strong action verb, context, and quantifiable impact",
					"stretch":    "int 0-3",
					"metrics":    "optional list[str]",
				},
			},
		},
		"suggestions": []string{
			"str - Specific, actionable recommendations (e.g., 'Add experience with containerization using Docker or Kubernetes to align with DevOps requirements', NOT generic advice like 'Emphasize technical skills')",
		},
	}
}
