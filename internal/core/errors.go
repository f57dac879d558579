package core

import "errors"

// Sentinel errors separating infrastructure failures from business outcomes.
var (
	// ErrProviderUnavailable indicates the AI provider has no usable
	// credential. Surfaced to callers distinctly so the UI can tell a
	// misconfiguration from a transient failure.
	ErrProviderUnavailable = errors.New("AI provider unavailable: API key not configured")

	// ErrProvider indicates a transport or model-side failure during an
	// external AI call.
	ErrProvider = errors.New("AI provider request failed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable indicates object storage is not configured.
	// File uploads are disabled without it.
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
