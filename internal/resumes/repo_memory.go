package resumes

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used as the dev
// fallback and in tests. Writes replace the whole record under the
// lock, so the no-interleaving guarantee holds here too.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Resume),
	}
}

// Put stores/overwrites the record under its id.
func (r *MemoryRepo) Put(ctx context.Context, rec Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec.Structured = cloneRaw(rec.Structured)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = rec
	return nil
}

// Get returns the record stored at id.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	rec.Structured = cloneRaw(rec.Structured)
	return rec, nil
}

// Merge applies the patch to the existing record and stores the result.
func (r *MemoryRepo) Merge(ctx context.Context, id string, patch Patch) (Resume, error) {
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

func cloneRaw(raw []byte) []byte {
	if raw == nil {
		return nil
	}
	return append([]byte(nil), raw...)
}

var _ Repo = (*MemoryRepo)(nil)
