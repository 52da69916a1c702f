package parsers

// DefaultRouteThreshold is the quality score below which a page is routed
// to VLM fallback.
const DefaultRouteThreshold = 0.5

// ScoreBand maps a minimum extracted-text length to a confidence score.
// Longer extracted text means higher confidence that the page text is
// usable without fallback re-extraction.
type ScoreBand struct {
	// MinChars is the inclusive lower bound of extracted runes.
	MinChars int

	// Score is the quality score in [0,1] for this band.
	Score float64
}

// DefaultScoreBands returns the default confidence bands, ordered from the
// highest MinChars down. A page with no extractable text scores 0.
func DefaultScoreBands() []ScoreBand {
	return []ScoreBand{
		{MinChars: 768, Score: 0.95},
		{MinChars: 256, Score: 0.8},
		{MinChars: 64, Score: 0.55},
		{MinChars: 1, Score: 0.25},
		{MinChars: 0, Score: 0.0},
	}
}

// scoreForLength maps an extracted rune count to its confidence band.
// Bands must be ordered by descending MinChars.
func scoreForLength(runes int, bands []ScoreBand) float64 {
	for _, b := range bands {
		if runes >= b.MinChars {
			return b.Score
		}
	}
	return 0.0
}
