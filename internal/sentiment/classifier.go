// Package sentiment turns comment text into a three-way sentiment label.
package sentiment

import (
	"context"
	"fmt"

	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/ports"
)

const (
	DefaultPositiveThreshold = 0.05
	DefaultNegativeThreshold = -0.05
)

// Rule maps a compound score to a label when Match holds.
type Rule struct {
	Label domain.Sentiment
	Match func(score float64) bool
}

// ThresholdRules builds the inclusive threshold table: score >= positive is
// positive, score <= negative is negative. Anything else falls through to neutral.
func ThresholdRules(positive, negative float64) []Rule {
	return []Rule{
		{Label: domain.SentimentPositive, Match: func(score float64) bool { return score >= positive }},
		{Label: domain.SentimentNegative, Match: func(score float64) bool { return score <= negative }},
	}
}

// DefaultRules is the ±0.05 table.
func DefaultRules() []Rule {
	return ThresholdRules(DefaultPositiveThreshold, DefaultNegativeThreshold)
}

// Classifier labels text using an external polarity scorer and an ordered rule table.
type Classifier struct {
	scorer   ports.PolarityScorer
	rules    []Rule
	fallback domain.Sentiment
}

// NewClassifier wires a scorer; nil or empty rules select DefaultRules.
func NewClassifier(scorer ports.PolarityScorer, rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{
		scorer:   scorer,
		rules:    rules,
		fallback: domain.SentimentNeutral,
	}
}

// Label applies the rule table to a compound score; the first matching rule wins.
func (c *Classifier) Label(score float64) domain.Sentiment {
	for _, rule := range c.rules {
		if rule.Match(score) {
			return rule.Label
		}
	}
	return c.fallback
}

// Classify scores text and labels it.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Sentiment, error) {
	if c.scorer == nil {
		return "", fmt.Errorf("polarity scorer is not configured")
	}

	score, err := c.scorer.Score(ctx, text)
	if err != nil {
		return "", fmt.Errorf("score text: %w", err)
	}

	return c.Label(score), nil
}

// ClassifyAll labels every draft in order and returns completed comments.
func (c *Classifier) ClassifyAll(ctx context.Context, drafts []domain.DraftComment) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0, len(drafts))
	for i, draft := range drafts {
		label, err := c.Classify(ctx, draft.Content)
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}
		comments = append(comments, domain.Comment{
			Author:    draft.Author,
			Date:      draft.Date,
			Content:   draft.Content,
			Sentiment: label,
		})
	}
	return comments, nil
}
