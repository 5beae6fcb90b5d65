package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileRepo implements Repo with one <id>.json file per record under a
// base directory. It is the default backend.
type FileRepo struct {
	baseDir string
}

// NewFileRepo creates the base directory if needed and returns a repo
// rooted at it.
func NewFileRepo(baseDir string) (*FileRepo, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %v", ErrStorage, baseDir, err)
	}
	return &FileRepo{baseDir: baseDir}, nil
}

// Put writes the full record durably. The record is staged in a temp
// file and renamed into place, so readers and racing merges always
// observe exactly one complete record.
func (r *FileRepo) Put(ctx context.Context, rec Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.recordPath(rec.ID)
	if err != nil {
		return err
	}

	// Compact encoding keeps the opaque Structured bytes exactly as
	// submitted; indentation would reformat the RawMessage.
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, rec.ID, err)
	}

	tmp, err := os.CreateTemp(r.baseDir, ".put-*")
	if err != nil {
		return fmt.Errorf("%w: stage %s: %v", ErrStorage, rec.ID, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrStorage, rec.ID, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", ErrStorage, rec.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", ErrStorage, rec.ID, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %v", ErrStorage, rec.ID, err)
	}
	return nil
}

// Get returns the record stored at id, or ErrNotFound if none exists.
func (r *FileRepo) Get(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	path, err := r.recordPath(id)
	if err != nil {
		return Resume{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("%w: read %s: %v", ErrStorage, id, err)
	}

	var rec Resume
	if err := json.Unmarshal(data, &rec); err != nil {
		return Resume{}, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, id, err)
	}
	return rec, nil
}

// Merge reads the current record, applies the patch and persists the
// result via Put. The read and the write are deliberately separate:
// two racing merges each rewrite the full record and the later rename
// wins.
func (r *FileRepo) Merge(ctx context.Context, id string, patch Patch) (Resume, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	rec = applyPatch(rec, patch)
	if err := r.Put(ctx, rec); err != nil {
		return Resume{}, err
	}
	return rec, nil
}

// recordPath rejects ids that would escape the base directory.
func (r *FileRepo) recordPath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") || id != filepath.Clean(id) {
		return "", fmt.Errorf("%w: bad record id", ErrInvalidInput)
	}
	return filepath.Join(r.baseDir, id+".json"), nil
}

var _ Repo = (*FileRepo)(nil)
