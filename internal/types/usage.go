//nolint:revive // types is a standard Go package name pattern
package types

// TokenUsage accumulates collaborator token counts across every exchange of
// one pipeline invocation: initial generation, backfills, guardrail audit,
// regeneration and the optional cover letter call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add merges another usage record into the running total.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}
