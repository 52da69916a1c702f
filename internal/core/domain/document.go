package domain

import "time"

// SourceType identifies the kind of source a document was parsed from.
type SourceType string

const (
	// SourceTypeMarkdown covers markdown and plain text files.
	SourceTypeMarkdown SourceType = "markdown"

	// SourceTypePDF covers paginated PDF files.
	SourceTypePDF SourceType = "pdf"
)

// ParsedDocument is the result of parsing a single source file.
// It is immutable once built and owned by the ingesting job until persisted.
type ParsedDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// SourceURL is the original file location.
	SourceURL string

	// Title is the human-readable title.
	Title string

	// SourceType identifies how the document was parsed.
	SourceType SourceType

	// Chunks is the ordered chunk sequence. Ordinals are dense and
	// zero-based across the whole document.
	Chunks []Chunk

	// Sections is the heading skeleton, ordered by ChunkStartOrdinal.
	Sections []Section

	// LowQualityPages lists the zero-based page indices flagged for
	// fallback re-extraction. Empty for non-paginated sources.
	LowQualityPages []int

	// FallbackPageCount is the number of pages flagged for fallback
	// re-extraction, always len(LowQualityPages).
	FallbackPageCount int
}

// Chunk is a bounded span of document text, ordered within its parent
// document. Chunks are immutable values; repository upsert is keyed by
// ID with last-write-wins semantics.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent document (back-reference, not ownership).
	DocumentID string

	// Ordinal is the dense, zero-based position within the document.
	Ordinal int

	// Text is the chunk content.
	Text string
}

// Section is one entry of a document's heading skeleton.
type Section struct {
	// DocumentID links to the parent document.
	DocumentID string

	// Level is the heading level (1-6).
	Level int

	// Title is the heading text.
	Title string

	// ChunkStartOrdinal is the ordinal of the first chunk under this heading.
	ChunkStartOrdinal int
}

// DocumentRecord is the persisted metadata for an imported document.
// It is mutated by import and by reparse completion.
type DocumentRecord struct {
	// ID is the document identifier.
	ID string

	// SourcePath is the original file location.
	SourcePath string

	// Title is the human-readable title.
	Title string

	// SourceType identifies how the document was parsed.
	SourceType SourceType

	// ChunkCount is the number of chunks persisted for the document.
	ChunkCount int

	// LowQualityPages is the set of zero-based page indices still awaiting
	// fallback re-extraction. It only shrinks, via successful reparse.
	LowQualityPages []int

	// ImportedAt is when the document was imported.
	ImportedAt time.Time
}
