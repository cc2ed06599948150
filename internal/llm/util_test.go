package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"title\": \"Backend Engineer\"}\n```",
			expected: `{"title": "Backend Engineer"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"title\": \"Backend Engineer\"}\n```",
			expected: `{"title": "Backend Engineer"}`,
		},
		{
			name:     "fence with other language tag",
			input:    "```javascript\n{\"title\": \"Backend Engineer\"}\n```",
			expected: `{"title": "Backend Engineer"}`,
		},
		{
			name:     "single line json fence",
			input:    "```json {\"ok\": true}```",
			expected: `{"ok": true}`,
		},
		{
			name:     "unfenced passes through",
			input:    `{"title": "Backend Engineer"}`,
			expected: `{"title": "Backend Engineer"}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"ok\": true}\n  ",
			expected: `{"ok": true}`,
		},
		{
			name:     "fenced array",
			input:    "```json\n[\"a\", \"b\"]\n```",
			expected: `["a", "b"]`,
		},
		{
			name:     "missing closing fence",
			input:    "```json\n{\"ok\": true}",
			expected: `{"ok": true}`,
		},
		{
			name:     "brace on fence line kept",
			input:    "```\n{\"tag\": \"value\"}\n```",
			expected: `{"tag": "value"}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
