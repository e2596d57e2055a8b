package resolve

import (
	"context"

	"bookshelf/internal/catalog"
	"bookshelf/internal/platform/logger"
)

// Backfiller repairs locally-incomplete records with one supplemental lookup
// per book. It only ever fills gaps; values already present are never
// overwritten.
type Backfiller struct {
	repo       catalog.Repository
	client     CatalogClient
	reconciler *Reconciler
	log        *logger.Logger
}

func NewBackfiller(repo catalog.Repository, client CatalogClient, reconciler *Reconciler, log *logger.Logger) *Backfiller {
	return &Backfiller{repo: repo, client: client, reconciler: reconciler, log: log}
}

// NeedsBackfill reports whether a reconciled record is incomplete enough to
// warrant the supplemental lookup: it has an ISBN to look up and is missing
// either its page count or all of its authors.
func NeedsBackfill(rec catalog.BookRecord) bool {
	return rec.ISBN13 != "" && (rec.TotalPages == 0 || len(rec.AuthorNames) == 0)
}

// Backfill merges missing fields into rec from a single-item lookup. A failed
// lookup or partial persistence failure is logged and leaves rec as-is; no
// error reaches the caller.
func (b *Backfiller) Backfill(ctx context.Context, rec *catalog.BookRecord) {
	if !NeedsBackfill(*rec) {
		return
	}

	items, err := b.client.Lookup(ctx, rec.ISBN13)
	if err != nil {
		b.log.Warnw("backfill lookup failed", "isbn13", rec.ISBN13, "error", err)
		return
	}
	if len(items) == 0 {
		return
	}
	item := items[0]

	if rec.TotalPages == 0 {
		pages := item.ItemPage
		if pages == 0 {
			pages = item.SubInfo.ItemPage
		}
		if pages > 0 {
			if err := b.repo.UpdateBookPages(ctx, rec.ID, pages); err != nil {
				b.log.Warnw("backfill page update failed", "isbn13", rec.ISBN13, "error", err)
			} else {
				rec.TotalPages = pages
			}
		}
	}

	if len(rec.AuthorNames) == 0 {
		if names := authorNames(item); len(names) > 0 {
			if err := b.reconciler.AttachAuthors(ctx, rec.ID, names); err != nil {
				b.log.Warnw("backfill author attach failed", "isbn13", rec.ISBN13, "error", err)
			} else {
				rec.AuthorNames = names
			}
		}
	}
}
