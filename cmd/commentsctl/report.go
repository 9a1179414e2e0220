package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"CommentsAnalyzer/internal/category"
	"CommentsAnalyzer/internal/commentblock"
	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/sentiment"
	"CommentsAnalyzer/internal/stats"
)

var errNoComments = errors.New("no comments")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	labelStyles = map[domain.Sentiment]lipgloss.Style{
		domain.SentimentPositive: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		domain.SentimentNeutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")),
		domain.SentimentNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F56")),
	}
)

type report struct {
	Category domain.Category
	Comments []domain.Comment
	Stats    domain.SentimentStats
}

// analyze parses and classifies raw with the offline VADER scorer.
// Category is left empty when neither title nor lead is given.
func analyze(ctx context.Context, raw, title, lead string, log *slog.Logger) (report, error) {
	drafts := commentblock.Parse(raw)
	log.Debug("parsed block", "comments", len(drafts))

	classifier := sentiment.NewClassifier(sentiment.NewVaderScorer(), nil)
	comments, err := classifier.ClassifyAll(ctx, drafts)
	if err != nil {
		return report{}, fmt.Errorf("classify comments: %w", err)
	}

	summary, err := stats.Aggregate(comments)
	if errors.Is(err, stats.ErrEmptyInput) {
		return report{}, errNoComments
	}
	if err != nil {
		return report{}, fmt.Errorf("aggregate: %w", err)
	}

	rep := report{Comments: comments, Stats: summary}
	if strings.TrimSpace(title+lead) != "" {
		rep.Category = category.NewClassifier(nil).Classify(title, lead)
	}
	return rep, nil
}

func render(rep report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Comment sentiment report"))
	b.WriteString("\n")

	for i, c := range rep.Comments {
		label := labelStyles[c.Sentiment].Render(fmt.Sprintf("%-8s", c.Sentiment))
		fmt.Fprintf(&b, "%2d. %s %s\n", i+1, label, c.Content)
		b.WriteString(infoStyle.Render(fmt.Sprintf("      %s · %s", c.Author, c.Date)))
		b.WriteString("\n")
	}

	s := rep.Stats
	lines := []string{
		fmt.Sprintf("Comments:  %d", s.TotalComments),
		fmt.Sprintf("Positive:  %d (%.1f%%)", s.Counts.Positive, s.Breakdown.Positive),
		fmt.Sprintf("Neutral:   %d (%.1f%%)", s.Counts.Neutral, s.Breakdown.Neutral),
		fmt.Sprintf("Negative:  %d (%.1f%%)", s.Counts.Negative, s.Breakdown.Negative),
		fmt.Sprintf("Overall:   %.2f / 5", s.OverallSentiment),
	}
	if rep.Category != "" {
		lines = append(lines, fmt.Sprintf("Category:  %s", rep.Category))
	}

	b.WriteString("\n")
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	return b.String()
}
