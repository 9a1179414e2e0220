package sentiment

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"

	"CommentsAnalyzer/internal/ports"
)

// VaderScorer is the built-in polarity scorer backed by the VADER lexicon and
// rules. Score returns the compound value in [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

var _ ports.PolarityScorer = (*VaderScorer)(nil)

// NewVaderScorer loads the VADER lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements ports.PolarityScorer and never fails. Blank text scores 0.
func (s *VaderScorer) Score(_ context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	return clamp(s.analyzer.PolarityScores(text).Compound), nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
