package resumes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-tailor/internal/shared/telemetry"
)

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, fileName string) (string, error)
}

// DocumentRenderer turns tailored text into a downloadable file and
// returns the generated file's name.
type DocumentRenderer interface {
	Render(ctx context.Context, text string) (string, error)
}

// Service contains business logic for the resume lifecycle. It holds
// no state of its own between calls; the repo is the single source of
// truth.
type Service struct {
	Repo      Repo
	Extractor TextExtractor
	Renderer  DocumentRenderer
}

// Ingest extracts text from the uploaded bytes, assigns a fresh id and
// stores a new record. It never touches an existing record.
func (s *Service) Ingest(ctx context.Context, fileBytes []byte, fileName, title string) (Resume, error) {
	if len(fileBytes) == 0 {
		return Resume{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	text, err := s.Extractor.Extract(ctx, fileBytes, fileName)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	rec := Resume{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(title),
		RawText: text,
	}
	if rec.Name == "" {
		rec.Name = DefaultName
	}

	if err := s.Repo.Put(ctx, rec); err != nil {
		return Resume{}, err
	}

	telemetry.Info("resume.ingested", map[string]any{"resume_id": rec.ID, "name": rec.Name})
	return rec, nil
}

// Annotate replaces the record's structured analysis wholesale. The
// payload is opaque to this layer; its shape is not validated.
func (s *Service) Annotate(ctx context.Context, id string, structured json.RawMessage) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if _, err := s.Repo.Merge(ctx, id, Patch{Structured: structured}); err != nil {
		return err
	}
	telemetry.Info("resume.annotated", map[string]any{"resume_id": id})
	return nil
}

// Retrieve returns the record stored at id.
func (s *Service) Retrieve(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.Get(ctx, id)
}

// Render produces a downloadable document from tailoredText alone. The
// stored record is not consulted; the id is carried for log
// correlation only.
func (s *Service) Render(ctx context.Context, id, tailoredText string) (string, error) {
	if strings.TrimSpace(tailoredText) == "" {
		return "", fmt.Errorf("%w: tailored text is required", ErrInvalidInput)
	}
	fileName, err := s.Renderer.Render(ctx, tailoredText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	telemetry.Info("resume.rendered", map[string]any{"resume_id": id, "file": fileName})
	return fileName, nil
}
