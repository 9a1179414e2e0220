package scraper

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"CommentsAnalyzer/internal/config"
	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/extractor"
	"CommentsAnalyzer/internal/ports"
)

const (
	DefaultTitle = "Untitled"
	DefaultLead  = "No lead"

	maxBodyBytes = 8 << 20
)

var idExpr = regexp.MustCompile(`-(\d+)(?:#|$)`)

// Options configures a Scraper. Zero values fall back to sane defaults.
type Options struct {
	Client            *http.Client
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Registry          *extractor.Registry
	Sites             []config.SiteConfig
	Logger            *slog.Logger
}

// Scraper fetches an article page and extracts its metadata with the
// strategy configured for the page host.
type Scraper struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	registry  *extractor.Registry
	sites     []config.SiteConfig
	logger    *slog.Logger
}

var _ ports.ArticleScraper = (*Scraper)(nil)

// New wires an HTTP client, limiter and extractor registry.
func New(opts Options) *Scraper {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "CommentsAnalyzer/1.0"
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	registry := opts.Registry
	if registry == nil {
		registry = extractor.DefaultRegistry()
	}

	return &Scraper{
		client:    client,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(limit, burst),
		registry:  registry,
		sites:     opts.Sites,
		logger:    opts.Logger,
	}
}

// Scrape downloads rawURL and returns its id, title, lead and URL.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (domain.ArticleMetadata, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return domain.ArticleMetadata{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("parse url: %w", err)}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return domain.ArticleMetadata{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("wait for limiter: %w", err)}
	}

	body, err := s.fetch(ctx, rawURL)
	if err != nil {
		return domain.ArticleMetadata{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.ArticleMetadata{}, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("parse document: %w", err)}
	}

	site := s.siteFor(pageURL.Hostname())
	strategy, err := s.registry.Resolve(site.Extractor)
	if err != nil {
		return domain.ArticleMetadata{}, fmt.Errorf("site %s: %w", site.Name, err)
	}
	s.debug("extract page", "url", rawURL, "site", site.Name, "extractor", strategy.Name())

	res := strategy.Extract(doc, site.Options)
	if res.Lead == "" {
		res.Lead = s.excerpt(body, pageURL)
	}
	if res.Title == "" {
		res.Title = DefaultTitle
	}
	if res.Lead == "" {
		res.Lead = DefaultLead
	}

	return domain.ArticleMetadata{
		ID:    DeriveID(rawURL),
		Title: res.Title,
		Lead:  res.Lead,
		URL:   rawURL,
	}, nil
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("request document: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if s.logger != nil {
			s.logger.Warn("scrape failed", "url", rawURL, "status", resp.StatusCode)
		}
		return nil, &domain.FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func (s *Scraper) excerpt(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		s.debug("readability fallback failed", "url", pageURL.String(), "error", err)
		return ""
	}
	return strings.Join(strings.Fields(article.Excerpt), " ")
}

func (s *Scraper) siteFor(host string) config.SiteConfig {
	host = strings.ToLower(host)
	for _, site := range s.sites {
		if strings.EqualFold(site.Host, host) {
			if site.Extractor == "" {
				site.Extractor = extractor.OpenGraph
			}
			return site
		}
	}
	return config.SiteConfig{Name: host, Host: host, Extractor: extractor.OpenGraph}
}

func (s *Scraper) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// DeriveID returns the numeric id news sites append to article slugs
// ("...-12345" or "...-12345#comments"). URLs without one get a stable
// 16 hex char digest instead.
func DeriveID(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if m := idExpr.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:16]
}
