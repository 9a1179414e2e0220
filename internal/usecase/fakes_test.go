package usecase

import (
	"context"
	"errors"
	"sync"

	"CommentsAnalyzer/internal/domain"
)

type fakeScraper struct {
	meta  domain.ArticleMetadata
	err   error
	calls int
}

func (f *fakeScraper) Scrape(_ context.Context, url string) (domain.ArticleMetadata, error) {
	f.calls++
	if f.err != nil {
		return domain.ArticleMetadata{}, f.err
	}
	meta := f.meta
	meta.URL = url
	return meta, nil
}

type fakeRepository struct {
	mu        sync.Mutex
	records   map[string]domain.NewsRecord
	insertErr error
	inserts   int
	finds     int
	afterFind func()
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: map[string]domain.NewsRecord{}}
}

func (f *fakeRepository) Insert(_ context.Context, rec domain.NewsRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records[rec.Article.ID] = rec
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (domain.NewsRecord, error) {
	f.mu.Lock()
	f.finds++
	rec, ok := f.records[id]
	hook := f.afterFind
	f.afterFind = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok {
		return domain.NewsRecord{}, &domain.NotFoundError{ID: id}
	}
	return rec, nil
}

func (f *fakeRepository) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return &domain.NotFoundError{ID: id}
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRepository) Close() error { return nil }

// mapScorer returns a fixed score per text, 0 for unknown text.
type mapScorer struct {
	scores map[string]float64
	err    error
}

func (m mapScorer) Score(_ context.Context, text string) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.scores[text], nil
}

type fakeCache struct {
	entries     map[string]domain.StatsReport
	invalidated []string
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]domain.StatsReport{}}
}

func (f *fakeCache) Get(_ context.Context, id string) (domain.StatsReport, bool, error) {
	if f.getErr != nil {
		return domain.StatsReport{}, false, f.getErr
	}
	r, ok := f.entries[id]
	return r, ok, nil
}

func (f *fakeCache) Set(_ context.Context, id string, report domain.StatsReport) error {
	f.entries[id] = report
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, id string) error {
	f.invalidated = append(f.invalidated, id)
	delete(f.entries, id)
	return nil
}

type fakeEvents struct {
	stored  []string
	deleted []string
	err     error
}

func (f *fakeEvents) PublishStored(_ context.Context, rec domain.NewsRecord) error {
	f.stored = append(f.stored, rec.Article.ID)
	return f.err
}

func (f *fakeEvents) PublishDeleted(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeArchiver struct {
	archived []string
}

func (f *fakeArchiver) Archive(_ context.Context, rec domain.NewsRecord) error {
	f.archived = append(f.archived, rec.Article.ID)
	return nil
}

type fakeNotifier struct {
	digests []string
}

func (f *fakeNotifier) PublishDigest(_ context.Context, digest string) error {
	f.digests = append(f.digests, digest)
	return errors.New("telegram unavailable")
}
