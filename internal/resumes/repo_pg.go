package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The structured payload lives
// in a jsonb column and is written as a single value, so a merge race
// resolves to one full record at the row level.
type PGRepo struct {
	DB *sql.DB
}

// Put upserts the full record.
func (r *PGRepo) Put(ctx context.Context, rec Resume) error {
	const query = `
INSERT INTO resumes (id, name, raw_text, structured)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    raw_text = EXCLUDED.raw_text,
    structured = EXCLUDED.structured,
    updated_at = now()`

	_, err := r.DB.ExecContext(ctx, query, rec.ID, rec.Name, rec.RawText, nullableRaw(rec.Structured))
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStorage, rec.ID, err)
	}
	return nil
}

// Get fetches the record stored at id.
func (r *PGRepo) Get(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT name, raw_text, structured
FROM resumes
WHERE id = $1`

	rec := Resume{ID: id}
	var structured []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&rec.Name, &rec.RawText, &structured)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("%w: get %s: %v", ErrStorage, id, err)
	}
	if len(structured) > 0 {
		rec.Structured = structured
	}
	return rec, nil
}

// Merge reads the current row, applies the patch and writes the full
// row back. Read-then-write on purpose; the later of two racing merges
// wins whole.
func (r *PGRepo) Merge(ctx context.Context, id string, patch Patch) (Resume, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	rec = applyPatch(rec, patch)

	const query = `
UPDATE resumes
SET name = $2, raw_text = $3, structured = $4, updated_at = now()
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id, rec.Name, rec.RawText, nullableRaw(rec.Structured))
	if err != nil {
		return Resume{}, fmt.Errorf("%w: merge %s: %v", ErrStorage, id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return Resume{}, ErrNotFound
	}
	return rec, nil
}

func nullableRaw(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

var _ Repo = (*PGRepo)(nil)
