package resumes

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist. Absence
	// is a normal outcome callers branch on, not a storage fault.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage indicates the durable medium failed.
	ErrStorage = errors.New("storage failure")

	// ErrCorrupt indicates a persisted record could not be decoded.
	ErrCorrupt = errors.New("corrupt record")

	// ErrExtraction indicates the uploaded document could not be parsed.
	ErrExtraction = errors.New("text extraction failed")

	// ErrRender indicates the document renderer failed.
	ErrRender = errors.New("render failed")
)
