package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreForLength(t *testing.T) {
	bands := DefaultScoreBands()

	tests := []struct {
		runes int
		want  float64
	}{
		{0, 0.0},
		{1, 0.25},
		{63, 0.25},
		{64, 0.55},
		{255, 0.55},
		{256, 0.8},
		{767, 0.8},
		{768, 0.95},
		{10000, 0.95},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scoreForLength(tt.runes, bands), "runes=%d", tt.runes)
	}
}

func TestScoreForLengthCustomBands(t *testing.T) {
	bands := []ScoreBand{
		{MinChars: 10, Score: 1.0},
		{MinChars: 0, Score: 0.1},
	}

	assert.Equal(t, 0.1, scoreForLength(5, bands))
	assert.Equal(t, 1.0, scoreForLength(10, bands))
}
