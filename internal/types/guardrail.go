//nolint:revive // types is a standard Go package name pattern
package types

// GuardrailStatus is the audit verdict for one generated bullet.
type GuardrailStatus string

// Audit verdicts returned by the guardrail collaborator exchange.
const (
	GuardrailOK            GuardrailStatus = "ok"
	GuardrailNeedsRevision GuardrailStatus = "needs_revision"
	GuardrailReject        GuardrailStatus = "reject"
)

// Flagged reports whether the status requires regeneration of the bullet.
func (s GuardrailStatus) Flagged() bool {
	return s == GuardrailNeedsRevision || s == GuardrailReject
}

// GuardrailFinding is the audit result for one bullet candidate.
type GuardrailFinding struct {
	SnippetID string          `json:"snippet_id"`
	BulletID  string          `json:"bullet_id"`
	Status    GuardrailStatus `json:"status"`
	Reasons   []string        `json:"reasons"`
}
