package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"CommentsAnalyzer/internal/category"
	"CommentsAnalyzer/internal/config"
	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/extractor"
	"CommentsAnalyzer/internal/infrastructure/archive"
	"CommentsAnalyzer/internal/infrastructure/cache"
	"CommentsAnalyzer/internal/infrastructure/events"
	"CommentsAnalyzer/internal/infrastructure/llm"
	"CommentsAnalyzer/internal/infrastructure/ml"
	"CommentsAnalyzer/internal/infrastructure/scraper"
	"CommentsAnalyzer/internal/infrastructure/storage"
	"CommentsAnalyzer/internal/infrastructure/telegram"
	"CommentsAnalyzer/internal/logging"
	"CommentsAnalyzer/internal/ports"
	"CommentsAnalyzer/internal/sentiment"
	"CommentsAnalyzer/internal/transport/httpapi"
	"CommentsAnalyzer/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to use cases and owns adapter lifecycles.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	service *usecase.Service
	router  *gin.Engine
	closers []func() error
}

// New opens the configured store and optional adapters and builds the HTTP
// router. Optional adapters that fail to start are logged and skipped.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	a := &Application{cfg: cfg, logger: baseLogger.With("component", "app")}

	repo, err := openRepository(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	a.closers = append(a.closers, repo.Close)

	scorer, err := newScorer(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	deps := usecase.ServiceDeps{
		Scraper: scraper.New(scraper.Options{
			UserAgent:         cfg.Scraper.UserAgent,
			Timeout:           cfg.Scraper.Timeout(),
			RequestsPerSecond: cfg.Scraper.RequestsPerSecond,
			Burst:             cfg.Scraper.Burst,
			Registry:          extractor.DefaultRegistry(),
			Sites:             cfg.Sites,
			Logger:            baseLogger.With("component", "scraper"),
		}),
		Repository: repo,
		Sentiment: sentiment.NewClassifier(scorer,
			sentiment.ThresholdRules(cfg.Sentiment.PositiveThreshold, cfg.Sentiment.NegativeThreshold)),
		Categories: category.NewClassifier(a.categoryRules(cfg.Categories)),
		Logger:     baseLogger,
	}
	a.attachOptional(ctx, &deps)

	a.service = usecase.NewService(deps)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	a.router = httpapi.NewRouter(httpapi.NewHandler(a.service, baseLogger), cfg.Server.AllowedOrigins)

	a.logger.Info("application ready",
		"storage", cfg.Storage.Driver,
		"scorer", cfg.Sentiment.Scorer,
		"cache", deps.Cache != nil,
		"events", deps.Events != nil,
		"archive", deps.Archiver != nil,
		"notify", deps.Notifier != nil,
	)
	return a, nil
}

// Service exposes the use case for other drivers (tests, CLI).
func (a *Application) Service() *usecase.Service {
	return a.service
}

// Handler returns the HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

// Close releases adapters in reverse order of creation.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openRepository(ctx context.Context, cfg config.StorageConfig) (ports.RecordRepository, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return storage.OpenSQLite(ctx, cfg.SQLite.Path)
	case config.DriverPostgres:
		return storage.OpenPostgres(ctx, cfg.Postgres.DSN)
	case config.DriverMongo:
		return storage.OpenMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func newScorer(cfg config.Config) (ports.PolarityScorer, error) {
	switch cfg.Sentiment.Scorer {
	case config.ScorerVader, "":
		return sentiment.NewVaderScorer(), nil
	case config.ScorerRemote:
		if cfg.ML.InferenceURL == "" {
			return nil, fmt.Errorf("remote scorer requires ml.inferenceUrl")
		}
		return ml.NewClient(cfg.ML.InferenceURL, cfg.ML.APIKey), nil
	case config.ScorerChatGPT:
		if cfg.ChatGPT.APIKey == "" {
			return nil, fmt.Errorf("chatgpt scorer requires an api key")
		}
		return llm.NewChatGPTClient(cfg.ChatGPT), nil
	default:
		return nil, fmt.Errorf("unknown sentiment scorer %q", cfg.Sentiment.Scorer)
	}
}

// categoryRules converts configured categories; an empty list keeps the
// built-in table. Names outside the closed category set are skipped.
func (a *Application) categoryRules(cfg []config.CategoryConfig) []category.Rule {
	if len(cfg) == 0 {
		return nil
	}

	rules := make([]category.Rule, 0, len(cfg))
	for _, c := range cfg {
		cat := domain.Category(strings.ToLower(strings.TrimSpace(c.Name)))
		switch cat {
		case domain.CategoryPolitics, domain.CategorySports, domain.CategoryTragedies, domain.CategoryEntertainment:
			rules = append(rules, category.Rule{Category: cat, Keywords: c.Keywords})
		default:
			a.logger.Warn("ignoring unknown category", "name", c.Name)
		}
	}
	return rules
}

func (a *Application) attachOptional(ctx context.Context, deps *usecase.ServiceDeps) {
	cfg := a.cfg

	if cfg.Redis.Addr != "" {
		c, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL())
		if err != nil {
			a.logger.Warn("stats cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			deps.Cache = c
			a.closers = append(a.closers, c.Close)
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		p, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			a.logger.Warn("event publishing disabled", "brokers", cfg.Kafka.Brokers, "error", err)
		} else {
			deps.Events = p
			a.closers = append(a.closers, p.Close)
		}
	}

	if cfg.Archive.Bucket != "" {
		s3a, err := archive.NewS3Archiver(ctx, cfg.Archive.Bucket, cfg.Archive.Prefix, cfg.Archive.Region)
		if err != nil {
			a.logger.Warn("archive disabled", "bucket", cfg.Archive.Bucket, "error", err)
		} else {
			deps.Archiver = s3a
		}
	}

	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		deps.Notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}
}
