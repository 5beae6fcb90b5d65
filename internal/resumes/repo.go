package resumes

import (
	"context"
	"encoding/json"
)

// Patch carries whole-field replacements for Merge. Nil fields are left
// untouched; present fields replace the stored value in full. There is
// no deeper merge: a Structured patch overwrites the prior analysis.
// Name is part of the merge contract so records can be retitled in
// place; the HTTP surface only sets it at ingest today.
type Patch struct {
	Name       *string
	Structured json.RawMessage
}

// Repo defines persistence operations for resume records.
//
// Put must be durable before returning and overwrites without error.
// Get returns ErrNotFound for a missing id. Merge is an explicit
// read-then-write: it is not atomic against concurrent Merge/Put calls
// on the same id. Racing merges are last-writer-wins, and every write
// lands as one full record, never an interleaving of two.
type Repo interface {
	Put(ctx context.Context, rec Resume) error
	Get(ctx context.Context, id string) (Resume, error)
	Merge(ctx context.Context, id string, patch Patch) (Resume, error)
}

func applyPatch(rec Resume, patch Patch) Resume {
	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Structured != nil {
		rec.Structured = patch.Structured
	}
	return rec
}
