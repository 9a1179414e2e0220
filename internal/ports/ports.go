package ports

import (
	"context"

	"CommentsAnalyzer/internal/domain"
)

// ArticleScraper fetches a news page and extracts its metadata (no category, no comments).
type ArticleScraper interface {
	Scrape(ctx context.Context, url string) (domain.ArticleMetadata, error)
}

// RecordRepository persists news records keyed by article id.
// FindByID and DeleteByID return *domain.NotFoundError for unknown ids.
type RecordRepository interface {
	Insert(ctx context.Context, record domain.NewsRecord) error
	FindByID(ctx context.Context, id string) (domain.NewsRecord, error)
	DeleteByID(ctx context.Context, id string) error
	Close() error
}

// PolarityScorer returns a compound polarity score in [-1, 1].
type PolarityScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// StatsCache keeps computed statistics reports between lookups.
type StatsCache interface {
	Get(ctx context.Context, id string) (domain.StatsReport, bool, error)
	Set(ctx context.Context, id string, report domain.StatsReport) error
	Invalidate(ctx context.Context, id string) error
}

// EventPublisher emits record lifecycle events (e.g., to Kafka).
type EventPublisher interface {
	PublishStored(ctx context.Context, record domain.NewsRecord) error
	PublishDeleted(ctx context.Context, id string) error
}

// Archiver writes a durable snapshot of a stored record.
type Archiver interface {
	Archive(ctx context.Context, record domain.NewsRecord) error
}

// Notifier streams short digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}
