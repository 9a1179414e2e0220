package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"CommentsAnalyzer/internal/category"
	"CommentsAnalyzer/internal/commentblock"
	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/logging"
	"CommentsAnalyzer/internal/ports"
	"CommentsAnalyzer/internal/sentiment"
	"CommentsAnalyzer/internal/stats"
)

// ServiceDeps wires the driven adapters into the comment service. Cache,
// Events, Archiver and Notifier are optional.
type ServiceDeps struct {
	Scraper    ports.ArticleScraper
	Repository ports.RecordRepository
	Sentiment  *sentiment.Classifier
	Categories *category.Classifier
	Cache      ports.StatsCache
	Events     ports.EventPublisher
	Archiver   ports.Archiver
	Notifier   ports.Notifier
	Logger     *slog.Logger
	Clock      func() time.Time
}

// SubmitRequest is a pasted comment block for one article URL.
type SubmitRequest struct {
	URL      string `json:"url"`
	Comments string `json:"comments"`
}

// Service implements submission, lookup, deletion and statistics.
type Service struct {
	scraper    ports.ArticleScraper
	repository ports.RecordRepository
	sentiment  *sentiment.Classifier
	categories *category.Classifier
	cache      ports.StatsCache
	events     ports.EventPublisher
	archiver   ports.Archiver
	notifier   ports.Notifier
	logger     *slog.Logger
	clock      func() time.Time

	// writes counts record writes per id; a stats report computed before a
	// write of the same id is not cached.
	writesMu sync.Mutex
	writes   map[string]uint64
}

// NewService constructs the use case. Missing classifiers fall back to the
// VADER scorer and the default keyword table.
func NewService(deps ServiceDeps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	classifier := deps.Sentiment
	if classifier == nil {
		classifier = sentiment.NewClassifier(sentiment.NewVaderScorer(), nil)
	}
	categories := deps.Categories
	if categories == nil {
		categories = category.NewClassifier(nil)
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		scraper:    deps.Scraper,
		repository: deps.Repository,
		sentiment:  classifier,
		categories: categories,
		cache:      deps.Cache,
		events:     deps.Events,
		archiver:   deps.Archiver,
		notifier:   deps.Notifier,
		logger:     logger.With("component", "service"),
		clock:      clock,
		writes:     make(map[string]uint64),
	}
}

// Submit scrapes the article, classifies the pasted comments and stores the
// record. Nothing is stored when any step before persistence fails.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (domain.NewsRecord, error) {
	if err := validateSubmit(req); err != nil {
		return domain.NewsRecord{}, err
	}
	if s.scraper == nil || s.repository == nil {
		return domain.NewsRecord{}, fmt.Errorf("service is not configured")
	}

	rawURL := strings.TrimSpace(req.URL)
	meta, err := s.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return domain.NewsRecord{}, fmt.Errorf("scrape article: %w", err)
	}

	drafts := commentblock.Parse(req.Comments)
	comments, err := s.sentiment.ClassifyAll(ctx, drafts)
	if err != nil {
		return domain.NewsRecord{}, fmt.Errorf("classify comments: %w", err)
	}

	cat := s.categories.Classify(meta.Title, meta.Lead)
	record, err := AssembleRecord(meta, cat, comments, s.clock())
	if err != nil {
		return domain.NewsRecord{}, err
	}

	if err := s.repository.Insert(ctx, record); err != nil {
		s.logger.Error("persist record failed", "id", record.Article.ID, "error", err)
		return domain.NewsRecord{}, fmt.Errorf("persist record %s: %w", record.Article.ID, err)
	}

	s.logger.Info("submission stored",
		"id", record.Article.ID,
		"comments", len(record.Comments),
		"category", record.Article.Category,
	)

	s.afterStore(ctx, record)
	return record, nil
}

// afterStore runs the best-effort side effects of a successful submission.
func (s *Service) afterStore(ctx context.Context, record domain.NewsRecord) {
	id := record.Article.ID

	s.markWritten(id)
	s.invalidate(ctx, id)

	if s.events != nil {
		if err := s.events.PublishStored(ctx, record); err != nil {
			s.logger.Warn("publish stored event failed", "id", id, "error", err)
		}
	}
	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, record); err != nil {
			s.logger.Warn("archive record failed", "id", id, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.PublishDigest(ctx, buildDigestMessage(record)); err != nil {
			s.logger.Warn("notify failed", "id", id, "error", err)
		}
	}
}

// Get returns the stored record for id.
func (s *Service) Get(ctx context.Context, id string) (domain.NewsRecord, error) {
	if err := validateID(id); err != nil {
		return domain.NewsRecord{}, err
	}
	if s.repository == nil {
		return domain.NewsRecord{}, fmt.Errorf("service is not configured")
	}

	record, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return domain.NewsRecord{}, fmt.Errorf("find record %s: %w", id, err)
	}
	return record, nil
}

// Delete removes the record for id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if s.repository == nil {
		return fmt.Errorf("service is not configured")
	}

	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	s.logger.Info("record deleted", "id", id)

	s.markWritten(id)
	s.invalidate(ctx, id)
	if s.events != nil {
		if err := s.events.PublishDeleted(ctx, id); err != nil {
			s.logger.Warn("publish deleted event failed", "id", id, "error", err)
		}
	}
	return nil
}

// Stats aggregates the stored comments of id. A record without comments
// yields *domain.EmptyCommentsError.
func (s *Service) Stats(ctx context.Context, id string) (domain.StatsReport, error) {
	if err := validateID(id); err != nil {
		return domain.StatsReport{}, err
	}
	if s.repository == nil {
		return domain.StatsReport{}, fmt.Errorf("service is not configured")
	}

	if s.cache != nil {
		report, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("stats cache lookup failed", "id", id, "error", err)
		} else if ok {
			return report, nil
		}
	}

	seen := s.writeCount(id)
	record, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("find record %s: %w", id, err)
	}

	summary, err := stats.Aggregate(record.Comments)
	if errors.Is(err, stats.ErrEmptyInput) {
		return domain.StatsReport{}, &domain.EmptyCommentsError{ID: id}
	}
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("aggregate record %s: %w", id, err)
	}

	report := domain.StatsReport{
		Title:          record.Article.Title,
		Lead:           record.Article.Lead,
		Category:       record.Article.Category,
		SentimentStats: summary,
		Comments:       record.Comments,
	}

	s.cacheReport(ctx, id, seen, report)
	return report, nil
}

func (s *Service) writeCount(id string) uint64 {
	s.writesMu.Lock()
	defer s.writesMu.Unlock()
	return s.writes[id]
}

// markWritten must run before the cache entry of id is invalidated.
func (s *Service) markWritten(id string) {
	s.writesMu.Lock()
	s.writes[id]++
	s.writesMu.Unlock()
}

// cacheReport stores report unless id was written after seen was read.
// The lock is held across Set so a concurrent write either sees the entry
// and invalidates it or makes this call skip.
func (s *Service) cacheReport(ctx context.Context, id string, seen uint64, report domain.StatsReport) {
	if s.cache == nil {
		return
	}
	s.writesMu.Lock()
	defer s.writesMu.Unlock()

	if s.writes[id] != seen {
		s.logger.Debug("stats cache store skipped, record changed", "id", id)
		return
	}
	if err := s.cache.Set(ctx, id, report); err != nil {
		s.logger.Warn("stats cache store failed", "id", id, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("stats cache invalidation failed", "id", id, "error", err)
	}
}

func validateSubmit(req SubmitRequest) error {
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return &domain.ValidationError{Field: "url", Reason: "is required"}
	}
	if strings.TrimSpace(req.Comments) == "" {
		return &domain.ValidationError{Field: "comments", Reason: "is required"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return &domain.ValidationError{Field: "url", Reason: "must be an absolute http(s) URL"}
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "id", Reason: "is required"}
	}
	return nil
}

func buildDigestMessage(record domain.NewsRecord) string {
	var counts domain.SentimentCounts
	for _, c := range record.Comments {
		switch c.Sentiment {
		case domain.SentimentPositive:
			counts.Positive++
		case domain.SentimentNeutral:
			counts.Neutral++
		case domain.SentimentNegative:
			counts.Negative++
		}
	}

	return fmt.Sprintf("New comments analysed: %s\nCategory: %s\nComments: %d (%d positive, %d neutral, %d negative)\n%s",
		record.Article.Title,
		record.Article.Category,
		len(record.Comments),
		counts.Positive,
		counts.Neutral,
		counts.Negative,
		record.Article.URL)
}
