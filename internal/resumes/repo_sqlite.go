package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register the sqlite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS resumes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    raw_text TEXT NOT NULL,
    structured TEXT
)`

// SQLiteRepo implements Repo on an embedded SQLite database.
type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo opens (or creates) the database in dataDir and applies
// the schema. Pass ":memory:" as dataDir for an in-memory database.
func NewSQLiteRepo(dataDir string) (*SQLiteRepo, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: mkdir %s: %v", ErrStorage, dataDir, err)
		}
		dsn = filepath.Join(dataDir, "resumes.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrStorage, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", ErrStorage, err)
	}

	// Single connection avoids "database is locked" errors; the busy
	// timeout makes concurrent access wait instead of failing.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: set busy timeout: %v", ErrStorage, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: set journal mode: %v", ErrStorage, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply schema: %v", ErrStorage, err)
	}

	return &SQLiteRepo{db: db}, nil
}

// Close closes the underlying database connection.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Put upserts the full record.
func (r *SQLiteRepo) Put(ctx context.Context, rec Resume) error {
	const query = `
INSERT INTO resumes (id, name, raw_text, structured)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE
SET name = excluded.name,
    raw_text = excluded.raw_text,
    structured = excluded.structured`

	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.Name, rec.RawText, nullableText(rec.Structured))
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStorage, rec.ID, err)
	}
	return nil
}

// Get fetches the record stored at id.
func (r *SQLiteRepo) Get(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT name, raw_text, structured
FROM resumes
WHERE id = ?`

	rec := Resume{ID: id}
	var structured sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rec.Name, &rec.RawText, &structured)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("%w: get %s: %v", ErrStorage, id, err)
	}
	if structured.Valid && structured.String != "" {
		rec.Structured = []byte(structured.String)
	}
	return rec, nil
}

// Merge reads the current row, applies the patch and writes the full
// row back.
func (r *SQLiteRepo) Merge(ctx context.Context, id string, patch Patch) (Resume, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	rec = applyPatch(rec, patch)

	const query = `
UPDATE resumes
SET name = ?, raw_text = ?, structured = ?
WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, rec.Name, rec.RawText, nullableText(rec.Structured), id)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: merge %s: %v", ErrStorage, id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return Resume{}, ErrNotFound
	}
	return rec, nil
}

func nullableText(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

var _ Repo = (*SQLiteRepo)(nil)
