package parsers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docforge/docforge/internal/core/domain"
)

// Ensure PDFParser implements the interface.
var _ Parser = (*PDFParser)(nil)

// PDFParser handles paginated PDF files. Each page's extracted text is
// scored into a confidence band. Pages below the routing threshold are
// flagged for VLM fallback; only pages with no extractable text at all
// are dropped from chunking.
type PDFParser struct {
	chunkLimit     int
	routeThreshold float64
	bands          []ScoreBand
}

// NewPDFParser creates a PDF parser with the given options.
func NewPDFParser(opts ...Option) *PDFParser {
	cfg := newConfig(opts...)
	return &PDFParser{
		chunkLimit:     cfg.chunkLimit,
		routeThreshold: cfg.routeThreshold,
		bands:          cfg.bands,
	}
}

// Extensions returns the file extensions this parser handles.
func (p *PDFParser) Extensions() []string {
	return []string{".pdf"}
}

// Parse extracts text per page, scores each page, routes low-confidence
// pages to the fallback set, and chunks the remaining page texts with
// dense ordinals across the whole document. Re-extraction itself is not
// performed here.
func (p *PDFParser) Parse(_ context.Context, fileURL string) (*domain.ParsedDocument, error) {
	path := localPath(fileURL)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: pdfcpu read %s: %v", domain.ErrValidationFailed, path, err)
	}

	docID := uuid.New().String()
	doc := &domain.ParsedDocument{
		ID:         docID,
		SourceURL:  fileURL,
		SourceType: domain.SourceTypePDF,
	}

	assessments := make([]domain.PageAssessment, 0, pdfCtx.PageCount)
	nonEmpty := 0

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		pageText := extractPageText(pdfCtx, pageNr)
		pageIndex := pageNr - 1

		assessments = append(assessments, domain.PageAssessment{
			PageIndex:    pageIndex,
			QualityScore: scoreForLength(len([]rune(pageText)), p.bands),
		})

		if pageText == "" {
			// No extractable text: assessed but dropped from chunking.
			continue
		}
		nonEmpty++

		if doc.Title == "" {
			doc.Title = firstLine(pageText)
		}

		for _, piece := range chunkSegments(splitSegments(normaliseLineEndings(pageText)), p.chunkLimit) {
			doc.Chunks = append(doc.Chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: docID,
				Ordinal:    len(doc.Chunks),
				Text:       piece,
			})
		}
	}

	if nonEmpty == 0 {
		return nil, fmt.Errorf("%w: %s has no extractable text", domain.ErrValidationFailed, path)
	}

	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	for _, decision := range domain.Route(assessments, p.routeThreshold) {
		if decision.RequiresVLMFallback {
			doc.LowQualityPages = append(doc.LowQualityPages, decision.PageIndex)
		}
	}
	doc.FallbackPageCount = len(doc.LowQualityPages)

	return doc, nil
}

// firstLine returns the first non-empty line, capped at 200 runes.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > 200 {
			return string(runes[:200])
		}
		return line
	}
	return ""
}

// extractPageText extracts text from a single PDF page via the pdfcpu
// content stream.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromContentStream parses PDF content stream operators for text.
func textFromContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Tj and TJ show-text operators carry string literals.
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		}

		// ' moves to the next line and shows text.
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if text := decodePDFString(m[1]); text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}
		}

		// Td/TD reposition the text cursor.
		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}

		// T* moves to the start of the next line.
		if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return cleanExtractedText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			// Octal escape (e.g. \040 for space).
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// cleanExtractedText collapses runs of whitespace and strips
// non-printable runes from extracted PDF text.
func cleanExtractedText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteRune(r)
			prevSpace = true
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
