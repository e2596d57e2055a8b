package resolve

import (
	"context"
	"errors"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/platform/aladin"
	"bookshelf/internal/platform/logger"
)

// CatalogClient is the slice of the external catalog the resolver consumes.
type CatalogClient interface {
	Search(ctx context.Context, target aladin.Target, query string, maxResults, start int) ([]aladin.Item, error)
	Lookup(ctx context.Context, isbn13 string) ([]aladin.Item, error)
}

// Service resolves queries and ISBNs to canonical book records: local store
// first, external catalog on a miss, then normalize, reconcile and backfill.
type Service struct {
	repo       catalog.Repository
	client     CatalogClient
	reconciler *Reconciler
	backfiller *Backfiller
	log        *logger.Logger
}

func NewService(repo catalog.Repository, client CatalogClient, log *logger.Logger) *Service {
	reconciler := NewReconciler(repo, log)
	return &Service{
		repo:       repo,
		client:     client,
		reconciler: reconciler,
		backfiller: NewBackfiller(repo, client, reconciler, log),
		log:        log,
	}
}

// BookView is the external-facing shape of a resolved book.
type BookView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CoverURL     string    `json:"cover_url,omitempty"`
	Publisher    string    `json:"publisher,omitempty"`
	ISBN13       string    `json:"isbn13,omitempty"`
	TotalPages   int       `json:"total_pages"`
	PublishedAt  time.Time `json:"published_date"`
	AvgRating    float64   `json:"avg_rating"`
	CategoryName string    `json:"category_name"`
	Authors      []string  `json:"authors"`
}

// SearchBooks returns up to limit books matching query by title or author
// name. Local matches win outright; only an empty local result triggers the
// external three-target search. External failures degrade to fewer or zero
// results, never to an error.
func (s *Service) SearchBooks(ctx context.Context, query string, limit int) ([]BookView, error) {
	local, err := s.repo.FindByTitleOrAuthor(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return toViews(local), nil
	}

	records := s.fetchAndReconcile(ctx, query, limit)
	for i := range records {
		s.backfiller.Backfill(ctx, &records[i])
	}
	return toViews(records), nil
}

// GetBookByISBN returns the book with the exact ISBN-13, fetching it from the
// external catalog when the local store misses. A failed or empty lookup
// yields catalog.ErrNotFound.
func (s *Service) GetBookByISBN(ctx context.Context, isbn13 string) (BookView, error) {
	rec, err := s.repo.FindByISBN(ctx, isbn13)
	if err == nil {
		return toView(rec), nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return BookView{}, err
	}

	items, err := s.client.Lookup(ctx, isbn13)
	if err != nil {
		s.log.Warnw("external lookup failed", "isbn13", isbn13, "error", err)
		return BookView{}, catalog.ErrNotFound
	}
	if len(items) == 0 {
		return BookView{}, catalog.ErrNotFound
	}

	draft, ok := Normalize(items[0], time.Now())
	if !ok {
		return BookView{}, catalog.ErrNotFound
	}
	rec, err = s.reconciler.Reconcile(ctx, draft)
	if err != nil {
		return BookView{}, err
	}
	return toView(rec), nil
}

// ListBooks returns the most recently stored books. Local only; never calls
// the external catalog.
func (s *Service) ListBooks(ctx context.Context, limit int) ([]BookView, error) {
	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toViews(records), nil
}

// fetchAndReconcile runs the external search over all three sub-targets,
// splitting limit evenly across them (at least 1 each), and persists every
// normalized record. A failed target contributes zero results; a record that
// fails to reconcile is skipped. The aggregate is truncated to limit.
func (s *Service) fetchAndReconcile(ctx context.Context, query string, limit int) []catalog.BookRecord {
	perTarget := limit / len(aladin.SearchTargets)
	if perTarget < 1 {
		perTarget = 1
	}

	var records []catalog.BookRecord
	for _, target := range aladin.SearchTargets {
		items, err := s.client.Search(ctx, target, query, perTarget, 1)
		if err != nil {
			s.log.Warnw("external search failed", "target", target, "query", query, "error", err)
			continue
		}

		for _, item := range items {
			draft, ok := Normalize(item, time.Now())
			if !ok {
				continue
			}
			rec, err := s.reconciler.Reconcile(ctx, draft)
			if err != nil {
				s.log.Warnw("reconcile failed", "title", draft.Book.Title, "isbn13", draft.Book.ISBN13, "error", err)
				continue
			}
			records = append(records, rec)
		}
	}

	if len(records) > limit {
		records = records[:limit]
	}
	return records
}

func toView(rec catalog.BookRecord) BookView {
	return BookView{
		ID:           rec.ID,
		Title:        rec.Title,
		CoverURL:     rec.CoverURL,
		Publisher:    rec.Publisher,
		ISBN13:       rec.ISBN13,
		TotalPages:   rec.TotalPages,
		PublishedAt:  rec.PublishedAt,
		AvgRating:    rec.AvgRating,
		CategoryName: rec.CategoryName,
		Authors:      rec.AuthorNames,
	}
}

func toViews(records []catalog.BookRecord) []BookView {
	views := make([]BookView, len(records))
	for i, rec := range records {
		views[i] = toView(rec)
	}
	return views
}
