package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRepoPutGetSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}

	rec := Resume{ID: "rec-1", Name: "My Resume", RawText: "John Doe, Engineer"}
	if err := repo.Put(context.Background(), rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := repo.Get(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "My Resume" || got.RawText != "John Doe, Engineer" {
		t.Fatalf("unexpected record: %+v", got)
	}

	// A fresh repo over the same directory must observe the write.
	reopened, err := NewFileRepo(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err = reopened.Get(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.ID != "rec-1" {
		t.Fatalf("unexpected id after reopen: %s", got.ID)
	}
}

func TestFileRepoGetMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}

	_, err = repo.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileRepoMergeReplacesStructuredWholesale(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	ctx := context.Background()

	rec := Resume{ID: "rec-1", Name: "My Resume", RawText: "raw"}
	if err := repo.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	first := json.RawMessage(`{"skills":["Go"],"years":5}`)
	if _, err := repo.Merge(ctx, "rec-1", Patch{Structured: first}); err != nil {
		t.Fatalf("first Merge: %v", err)
	}

	second := json.RawMessage(`{"skills":["Rust"]}`)
	merged, err := repo.Merge(ctx, "rec-1", Patch{Structured: second})
	if err != nil {
		t.Fatalf("second Merge: %v", err)
	}

	if string(merged.Structured) != string(second) {
		t.Fatalf("expected full replacement, got %s", merged.Structured)
	}
	if merged.Name != "My Resume" || merged.RawText != "raw" {
		t.Fatalf("merge touched untouched fields: %+v", merged)
	}

	got, err := repo.Get(ctx, "rec-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var payload struct {
		Skills []string `json:"skills"`
		Years  *int     `json:"years"`
	}
	if err := json.Unmarshal(got.Structured, &payload); err != nil {
		t.Fatalf("decode structured: %v", err)
	}
	if payload.Years != nil {
		t.Fatalf("expected years from first payload to be gone, got %d", *payload.Years)
	}
}

func TestFileRepoStructuredRoundTripsVerbatim(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	ctx := context.Background()

	if err := repo.Put(ctx, Resume{ID: "rec-1", Name: "My Resume", RawText: "raw"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	payload := `{"k":"AAAA","x":1}`
	if _, err := repo.Merge(ctx, "rec-1", Patch{Structured: json.RawMessage(payload)}); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	got, err := repo.Get(ctx, "rec-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Structured) != payload {
		t.Fatalf("structured payload reformatted: %s", got.Structured)
	}
}

func TestFileRepoMergeName(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	ctx := context.Background()

	if err := repo.Put(ctx, Resume{ID: "rec-1", Name: "untitled", RawText: "raw"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	name := "Senior Resume"
	merged, err := repo.Merge(ctx, "rec-1", Patch{Name: &name})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Name != "Senior Resume" || merged.RawText != "raw" {
		t.Fatalf("unexpected record after name merge: %+v", merged)
	}
}

func TestFileRepoMergeMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}

	_, err = repo.Merge(context.Background(), "nope", Patch{Structured: json.RawMessage(`{}`)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileRepoCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err = repo.Get(context.Background(), "bad")
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("corruption must not look like absence: %v", err)
	}
}

func TestFileRepoRejectsTraversalID(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		if err := repo.Put(context.Background(), Resume{ID: id, Name: "x", RawText: "y"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("id %q: expected ErrInvalidInput, got %v", id, err)
		}
	}
}
