package stats

import (
	"errors"
	"math"
	"testing"

	"CommentsAnalyzer/internal/domain"
)

const tolerance = 1e-9

func makeComments(p, n, g int) []domain.Comment {
	var out []domain.Comment
	for i := 0; i < p; i++ {
		out = append(out, domain.Comment{Content: "p", Sentiment: domain.SentimentPositive})
	}
	for i := 0; i < n; i++ {
		out = append(out, domain.Comment{Content: "n", Sentiment: domain.SentimentNeutral})
	}
	for i := 0; i < g; i++ {
		out = append(out, domain.Comment{Content: "g", Sentiment: domain.SentimentNegative})
	}
	return out
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	cases := []struct{ p, n, g int }{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{2, 1, 1},
		{1, 1, 1},
		{7, 3, 13},
	}

	for _, tc := range cases {
		got, err := Aggregate(makeComments(tc.p, tc.n, tc.g))
		if err != nil {
			t.Fatalf("Aggregate(%v) error: %v", tc, err)
		}

		total := tc.p + tc.n + tc.g
		if got.TotalComments != total {
			t.Errorf("%v: total %d, want %d", tc, got.TotalComments, total)
		}
		if got.Counts.Positive != tc.p || got.Counts.Neutral != tc.n || got.Counts.Negative != tc.g {
			t.Errorf("%v: counts %+v", tc, got.Counts)
		}

		sum := got.Breakdown.Positive + got.Breakdown.Neutral + got.Breakdown.Negative
		if math.Abs(sum-100) > tolerance {
			t.Errorf("%v: percentages sum to %v", tc, sum)
		}

		wantOverall := float64(5*tc.p+3*tc.n+tc.g) / float64(total)
		if math.Abs(got.OverallSentiment-wantOverall) > tolerance {
			t.Errorf("%v: overall %v, want %v", tc, got.OverallSentiment, wantOverall)
		}
		if got.OverallSentiment < 1 || got.OverallSentiment > 5 {
			t.Errorf("%v: overall out of range: %v", tc, got.OverallSentiment)
		}
	}
}

func TestAggregateBreakdownValues(t *testing.T) {
	t.Parallel()

	got, err := Aggregate(makeComments(2, 1, 1))
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if got.Breakdown.Positive != 50 || got.Breakdown.Neutral != 25 || got.Breakdown.Negative != 25 {
		t.Fatalf("unexpected breakdown: %+v", got.Breakdown)
	}
	if got.OverallSentiment != 3.5 {
		t.Fatalf("unexpected overall: %v", got.OverallSentiment)
	}
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	if _, err := Aggregate(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Aggregate([]domain.Comment{}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAggregateUniqueUsers(t *testing.T) {
	t.Parallel()

	comments := []domain.Comment{
		{Content: "a", Sentiment: domain.SentimentPositive, UserID: "u1"},
		{Content: "b", Sentiment: domain.SentimentPositive, UserID: "u1"},
		{Content: "c", Sentiment: domain.SentimentNeutral, UserID: "u2"},
		{Content: "d", Sentiment: domain.SentimentNegative},
		{Content: "e", Sentiment: domain.SentimentNegative},
	}

	got, err := Aggregate(comments)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if got.UniqueUsers != 2 {
		t.Fatalf("expected 2 unique users, got %d", got.UniqueUsers)
	}
}

func TestAggregateRejectsUnknownSentiment(t *testing.T) {
	t.Parallel()

	_, err := Aggregate([]domain.Comment{{Content: "x", Sentiment: "mixed"}})
	if err == nil || errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected unknown sentiment error, got %v", err)
	}
}
