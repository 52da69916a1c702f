package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotSupported indicates an unrecognised input kind
	// (e.g. a file extension no parser handles).
	ErrNotSupported = errors.New("not supported")

	// ErrValidationFailed indicates content that is parseable but unusable
	// (e.g. empty or undecodable).
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a storage or authorization collaborator
	// rejected the operation. Propagated unchanged.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchUnavailable indicates the chunk repository is not configured.
	ErrSearchUnavailable = errors.New("chunk repository unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	// Semantic similarity search is disabled.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Vector search degrades to keyword-only.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
