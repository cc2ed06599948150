package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from a response. Models wrap
// JSON in ```json fences often enough that every response goes through this
// before parsing; unfenced text passes through unchanged.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	body = strings.TrimPrefix(body, "json")

	// A bare language tag on the opening fence line goes too.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		head := strings.TrimSpace(body[:nl])
		if head != "" && len(head) < 20 && !strings.ContainsAny(head, " {[") {
			body = body[nl+1:]
		}
	}

	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
