package driven

import "context"

// EmbeddingService generates vector embeddings for text.
// Optional: when absent, hybrid search degrades to keyword-only.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the model identifier.
	ModelName() string

	// Close releases resources.
	Close() error
}
