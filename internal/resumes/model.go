package resumes

import "encoding/json"

// DefaultName labels records uploaded without a title.
const DefaultName = "untitled"

// Resume is the durable record for one uploaded resume. ID and RawText
// are set once at ingest and never mutated in place; Structured is
// absent until the first annotate call and replaced wholesale after.
type Resume struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	RawText    string          `json:"raw_text"`
	Structured json.RawMessage `json:"structured,omitempty"`
}
