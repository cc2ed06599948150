package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("tailoring.json", "resume-base")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "resume strategist")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("tailoring.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("tailoring.json", "guardrail-audit")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Generate {{.BulletCount}} bullets for '{{.SectionName}}'"
	data := map[string]string{
		"BulletCount": "3",
		"SectionName": "Leadership",
	}

	result := Format(template, data)
	assert.Equal(t, "Generate 3 bullets for 'Leadership'", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("tailoring.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "section-backfill")
	assert.Contains(t, keys, "cover-letter")
}

func TestBackfillTemplatePlaceholders(t *testing.T) {
	ClearCache()

	template := MustGet("tailoring.json", "section-backfill")
	filled := Format(template, map[string]string{
		"BulletCount": "2",
		"SectionName": "Projects",
	})

	assert.Contains(t, filled, "EXACTLY 2 resume bullet points")
	assert.Contains(t, filled, "'Projects'")
	assert.NotContains(t, filled, "{{.")
}
