package schemas

// Response schemas are deliberately permissive: they type-check the shapes
// the parser relies on without requiring optional fields, so a structurally
// sound but sparse response still passes.

// ResumeResponse validates the initial generation payload.
const ResumeResponse = `{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "summary": {"type": "string"},
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "bullets": {"type": "array"}
        }
      }
    },
    "suggestions": {"type": "array"},
    "job_requirements": {"type": "object"},
    "job_location": {"type": "object"}
  }
}`

// BackfillResponse validates a single-section backfill payload.
const BackfillResponse = `{
  "type": "object",
  "properties": {
    "bullets": {"type": "array"}
  }
}`

// GuardrailResponse validates the audit payload.
const GuardrailResponse = `{
  "type": "object",
  "properties": {
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "bullet_id": {"type": "string"},
          "snippet_id": {"type": "string"},
          "status": {"type": "string"},
          "reasons": {"type": "array"}
        }
      }
    }
  }
}`

// RegenerationResponse validates the flagged-bullet rewrite payload.
const RegenerationResponse = `{
  "type": "object",
  "properties": {
    "replacements": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "bullet_id": {"type": "string"},
          "text": {"type": "string"}
        }
      }
    }
  }
}`

// CoverLetterResponse validates the cover letter payload.
const CoverLetterResponse = `{
  "type": "object",
  "properties": {
    "cover_letter": {"type": "string"},
    "talking_points": {"type": "array"}
  }
}`
