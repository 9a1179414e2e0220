// Package stats summarises a classified comment set.
package stats

import (
	"errors"
	"fmt"

	"CommentsAnalyzer/internal/domain"
)

// ErrEmptyInput is returned when there are no comments to aggregate.
var ErrEmptyInput = errors.New("no comments")

// Weights used by the overall score.
var Weights = map[domain.Sentiment]float64{
	domain.SentimentPositive: 5,
	domain.SentimentNeutral:  3,
	domain.SentimentNegative: 1,
}

// Aggregate computes counts, percentages, the weighted overall score in [1, 5]
// and the number of distinct user ids among comments that carry one.
func Aggregate(comments []domain.Comment) (domain.SentimentStats, error) {
	total := len(comments)
	if total == 0 {
		return domain.SentimentStats{}, ErrEmptyInput
	}

	var (
		counts   domain.SentimentCounts
		weighted float64
		users    = make(map[string]struct{})
	)

	for i, c := range comments {
		weight, ok := Weights[c.Sentiment]
		if !ok {
			return domain.SentimentStats{}, fmt.Errorf("comment %d: unknown sentiment %q", i, c.Sentiment)
		}
		weighted += weight

		switch c.Sentiment {
		case domain.SentimentPositive:
			counts.Positive++
		case domain.SentimentNeutral:
			counts.Neutral++
		case domain.SentimentNegative:
			counts.Negative++
		}

		if c.UserID != "" {
			users[c.UserID] = struct{}{}
		}
	}

	n := float64(total)
	return domain.SentimentStats{
		TotalComments: total,
		Counts:        counts,
		Breakdown: domain.SentimentBreakdown{
			Positive: float64(counts.Positive) / n * 100,
			Neutral:  float64(counts.Neutral) / n * 100,
			Negative: float64(counts.Negative) / n * 100,
		},
		OverallSentiment: weighted / n,
		UniqueUsers:      len(users),
	}, nil
}
