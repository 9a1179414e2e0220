package sentiment

import (
	"context"
	"testing"

	"CommentsAnalyzer/internal/domain"
)

func score(t *testing.T, s *VaderScorer, text string) float64 {
	t.Helper()
	v, err := s.Score(context.Background(), text)
	if err != nil {
		t.Fatalf("Score(%q) error: %v", text, err)
	}
	return v
}

func TestVaderClassify(t *testing.T) {
	t.Parallel()

	scorer := NewVaderScorer()
	c := NewClassifier(scorer, nil)

	cases := []struct {
		text string
		want domain.Sentiment
	}{
		{text: "This is a great article, thanks!", want: domain.SentimentPositive},
		{text: "Terrible decision by a corrupt government", want: domain.SentimentNegative},
		{text: "The meeting is on Tuesday", want: domain.SentimentNeutral},
		{text: "This is not good", want: domain.SentimentNegative},
		{text: "I don't hate it", want: domain.SentimentPositive},
		{text: "", want: domain.SentimentNeutral},
		{text: "   ", want: domain.SentimentNeutral},
	}

	for _, tc := range cases {
		got, err := c.Classify(context.Background(), tc.text)
		if err != nil {
			t.Fatalf("Classify(%q) error: %v", tc.text, err)
		}
		if got != tc.want {
			t.Errorf("Classify(%q) = %s (score %.3f), want %s", tc.text, got, score(t, scorer, tc.text), tc.want)
		}
	}
}

func TestVaderModifiers(t *testing.T) {
	t.Parallel()

	s := NewVaderScorer()
	plain := score(t, s, "good")
	if boosted := score(t, s, "very good"); boosted <= plain {
		t.Errorf("booster should raise score: %v <= %v", boosted, plain)
	}
	if loud := score(t, s, "it is GOOD"); loud <= score(t, s, "it is good") {
		t.Errorf("capitalised word should raise score: %v", loud)
	}
	if excited := score(t, s, "good!!!"); excited <= plain {
		t.Errorf("exclamations should raise score: %v <= %v", excited, plain)
	}
}

func TestVaderIsBounded(t *testing.T) {
	t.Parallel()

	s := NewVaderScorer()
	if v := score(t, s, "great great great amazing awesome best love love love perfect!!!!!!"); v > 1 || v < 0.9 {
		t.Fatalf("expected score close to but not above 1, got %v", v)
	}
	if v := score(t, s, "worst terrible horrible evil kill death disaster"); v < -1 || v > -0.9 {
		t.Fatalf("expected score close to but not below -1, got %v", v)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	for in, want := range map[float64]float64{1.5: 1, -2: -1, 0.3: 0.3} {
		if got := clamp(in); got != want {
			t.Errorf("clamp(%v) = %v, want %v", in, got, want)
		}
	}
}
