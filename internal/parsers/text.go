package parsers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/docforge/docforge/internal/core/domain"
)

// Ensure TextParser implements the interface.
var _ Parser = (*TextParser)(nil)

// TextParser handles markdown and plain text files.
type TextParser struct {
	chunkLimit int
}

// NewTextParser creates a text parser with the given options.
func NewTextParser(opts ...Option) *TextParser {
	cfg := newConfig(opts...)
	return &TextParser{chunkLimit: cfg.chunkLimit}
}

// Extensions returns the file extensions this parser handles.
func (p *TextParser) Extensions() []string {
	return []string{".md", ".markdown", ".txt", ".text"}
}

// Parse converts a text file into a parsed document. Content is split on
// blank-line boundaries; segments exceeding the chunk limit are further
// split at whitespace boundaries. Ordinals are dense across the result.
func (p *TextParser) Parse(_ context.Context, fileURL string) (*domain.ParsedDocument, error) {
	path := localPath(fileURL)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrValidationFailed, path)
	}

	content := normaliseLineEndings(string(data))
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s has no usable text", domain.ErrValidationFailed, path)
	}

	docID := uuid.New().String()
	segments := splitSegments(content)
	if len(segments) == 0 {
		segments = []string{strings.TrimSpace(content)}
	}

	doc := &domain.ParsedDocument{
		ID:         docID,
		SourceURL:  fileURL,
		Title:      extractTitle(content, path),
		SourceType: domain.SourceTypeMarkdown,
	}

	for _, seg := range segments {
		startOrdinal := len(doc.Chunks)

		for _, piece := range boundedSplit(seg, p.chunkLimit) {
			doc.Chunks = append(doc.Chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: docID,
				Ordinal:    len(doc.Chunks),
				Text:       piece,
			})
		}

		doc.Sections = append(doc.Sections, headingSections(docID, seg, startOrdinal)...)
	}

	return doc, nil
}

// extractTitle returns the first top-level heading line, falling back to a
// cleaned-up file base name.
func extractTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	filename := filepath.Base(path)
	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// headingSections extracts markdown heading lines from a segment as
// skeleton entries anchored at the segment's first chunk ordinal.
func headingSections(docID, segment string, startOrdinal int) []domain.Section {
	var sections []domain.Section
	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		level := headingLevel(line)
		if level == 0 {
			continue
		}
		title := strings.TrimSpace(strings.TrimLeft(line, "#"))
		if title == "" {
			continue
		}
		sections = append(sections, domain.Section{
			DocumentID:        docID,
			Level:             level,
			Title:             title,
			ChunkStartOrdinal: startOrdinal,
		})
	}
	return sections
}

// headingLevel returns the markdown heading level of a line, or 0 when the
// line is not a heading.
func headingLevel(line string) int {
	level := 0
	for _, r := range line {
		if r == '#' {
			level++
			continue
		}
		if r == ' ' && level >= 1 && level <= 6 {
			return level
		}
		return 0
	}
	return 0
}
