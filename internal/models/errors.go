package models

import "errors"

// Error kinds shared across the pipeline. Components wrap these with
// fmt.Errorf("...: %w", ...) so callers can classify failures with errors.Is
// while keeping the human-readable detail.
var (
	// ErrInvalidInput marks bad or missing request fields. The HTTP layer
	// maps it to a 4xx response.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFetch marks an upstream HTTP failure during content extraction.
	ErrFetch = errors.New("fetch failed")

	// ErrConfiguration marks a missing credential or key. Fatal for the
	// operation, never retried.
	ErrConfiguration = errors.New("missing configuration")

	// ErrSynthesis marks a speech provider failure after all fallbacks.
	ErrSynthesis = errors.New("speech synthesis failed")

	// ErrNotFound marks a missing record in the store.
	ErrNotFound = errors.New("not found")
)
