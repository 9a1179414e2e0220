package domain

import "time"

// Sentiment is the three-way label assigned to a comment.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// Category is the topic assigned to an article.
type Category string

const (
	CategoryPolitics      Category = "politics"
	CategorySports        Category = "sports"
	CategoryTragedies     Category = "tragedies"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// ArticleMetadata is produced by the scraper; Category is attached once afterwards.
type ArticleMetadata struct {
	ID       string   `json:"id" bson:"id"`
	Title    string   `json:"title" bson:"title"`
	Lead     string   `json:"lead" bson:"lead"`
	URL      string   `json:"url" bson:"url"`
	Category Category `json:"category" bson:"category"`
}

// DraftComment is a parsed comment that has not been classified yet.
type DraftComment struct {
	Author  string
	Date    string
	Content string
}

// Comment is a classified comment. Date is free text as it appeared in the pasted block.
type Comment struct {
	Author    string    `json:"author" bson:"author"`
	Date      string    `json:"date" bson:"date"`
	Content   string    `json:"content" bson:"content"`
	Sentiment Sentiment `json:"sentiment" bson:"sentiment"`
	UserID    string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
}

// NewsRecord is the unit of persistence, keyed by Article.ID.
type NewsRecord struct {
	Article   ArticleMetadata `json:"news_data" bson:"news_data"`
	Comments  []Comment       `json:"comments" bson:"comments"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// SentimentBreakdown holds percentages in [0,100].
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentimentCounts holds raw per-label counts.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// SentimentStats is a derived view over a comment set and is never persisted with the record.
type SentimentStats struct {
	TotalComments    int                `json:"totalComments"`
	Counts           SentimentCounts    `json:"counts"`
	Breakdown        SentimentBreakdown `json:"sentimentBreakdown"`
	OverallSentiment float64            `json:"overallSentiment"`
	UniqueUsers      int                `json:"uniqueUsers"`
}

// StatsReport is the statistics view of one record: article identity plus the
// aggregated sentiment and the comments it was computed from.
type StatsReport struct {
	Title    string   `json:"title"`
	Lead     string   `json:"lead"`
	Category Category `json:"category"`
	SentimentStats
	Comments []Comment `json:"comments"`
}
