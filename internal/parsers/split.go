package parsers

import "strings"

// DefaultChunkLimit is the default maximum chunk length in runes.
const DefaultChunkLimit = 1200

// normaliseLineEndings rewrites CRLF and bare CR to LF.
func normaliseLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// splitSegments splits text on blank-line boundaries into trimmed,
// non-empty segments. A blank line is one containing only whitespace.
func splitSegments(text string) []string {
	var segments []string
	var cur []string

	flush := func() {
		if len(cur) == 0 {
			return
		}
		seg := strings.TrimSpace(strings.Join(cur, "\n"))
		if seg != "" {
			segments = append(segments, seg)
		}
		cur = cur[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	return segments
}

// boundedSplit splits a segment exceeding limit runes at whitespace
// boundaries, never inside a token. A single token longer than the limit
// becomes its own oversized piece.
func boundedSplit(segment string, limit int) []string {
	if len([]rune(segment)) <= limit {
		return []string{segment}
	}

	var pieces []string
	var cur strings.Builder
	curLen := 0

	for _, token := range strings.Fields(segment) {
		tokenLen := len([]rune(token))

		if curLen > 0 && curLen+1+tokenLen > limit {
			pieces = append(pieces, cur.String())
			cur.Reset()
			curLen = 0
		}

		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(token)
		curLen += tokenLen
	}

	if curLen > 0 {
		pieces = append(pieces, cur.String())
	}

	return pieces
}

// chunkSegments applies the length-bounded splitting rule to each segment
// and returns the resulting pieces in order. Ordinal assignment happens at
// the call site so numbering stays dense across the whole document.
func chunkSegments(segments []string, limit int) []string {
	var pieces []string
	for _, seg := range segments {
		pieces = append(pieces, boundedSplit(seg, limit)...)
	}
	return pieces
}
