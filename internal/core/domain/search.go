package domain

// RankedChunk is a single hybrid search hit. Ephemeral, produced per query.
type RankedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the combined rank-fusion score.
	Score float64
}

// SearchOptions configures a hybrid search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// KeywordWeight scales the lexical list's reciprocal-rank scores.
	KeywordWeight float64

	// VectorWeight scales the vector list's reciprocal-rank scores.
	VectorWeight float64
}
