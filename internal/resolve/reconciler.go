package resolve

import (
	"context"
	"errors"
	"fmt"

	"bookshelf/internal/catalog"
	"bookshelf/internal/platform/logger"
)

// Reconciler persists a draft book and its author names as canonical rows
// with no duplicates. Find-or-create paths lean on the store's uniqueness
// constraints: losing an insert race is treated as "the row already exists"
// and the winning row is re-fetched, so reconciliation stays idempotent under
// concurrent resolution of the same ISBN, author or category.
type Reconciler struct {
	repo catalog.Repository
	log  *logger.Logger
}

func NewReconciler(repo catalog.Repository, log *logger.Logger) *Reconciler {
	return &Reconciler{repo: repo, log: log}
}

// Reconcile returns the canonical record for draft. When a book with the
// draft's ISBN-13 already exists the stored row wins and the draft is
// discarded entirely.
func (r *Reconciler) Reconcile(ctx context.Context, draft Draft) (catalog.BookRecord, error) {
	if draft.Book.ISBN13 != "" {
		existing, err := r.repo.FindByISBN(ctx, draft.Book.ISBN13)
		switch {
		case err == nil:
			return existing, nil
		case !errors.Is(err, catalog.ErrNotFound):
			return catalog.BookRecord{}, fmt.Errorf("probe isbn %s: %w", draft.Book.ISBN13, err)
		}
	}

	cat, err := r.findOrCreateCategory(ctx, draft.Category)
	if err != nil {
		return catalog.BookRecord{}, err
	}

	book := draft.Book
	book.CategoryID = cat.ID
	if err := r.repo.CreateBook(ctx, &book); err != nil {
		if catalog.IsUniqueViolation(err) && book.ISBN13 != "" {
			// Lost the insert race to a concurrent request; its row is canonical.
			return r.repo.FindByISBN(ctx, book.ISBN13)
		}
		return catalog.BookRecord{}, err
	}

	if err := r.AttachAuthors(ctx, book.ID, draft.Authors); err != nil {
		return catalog.BookRecord{}, err
	}

	return catalog.BookRecord{
		Book:         book,
		CategoryName: cat.Name,
		AuthorNames:  draft.Authors,
	}, nil
}

// AttachAuthors resolves each name to an Author row and creates the missing
// authorship edges. Edges that already exist are left alone, so attaching the
// same names twice is a no-op.
func (r *Reconciler) AttachAuthors(ctx context.Context, bookID string, names []string) error {
	for _, name := range names {
		author, err := r.findOrCreateAuthor(ctx, name)
		if err != nil {
			return err
		}

		exists, err := r.repo.HasAuthorship(ctx, bookID, author.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := r.repo.CreateAuthorship(ctx, bookID, author.ID); err != nil {
			if catalog.IsUniqueViolation(err) {
				continue
			}
			return err
		}
	}
	return nil
}

func (r *Reconciler) findOrCreateCategory(ctx context.Context, name string) (catalog.Category, error) {
	cat, err := r.repo.FindCategoryByName(ctx, name)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return catalog.Category{}, err
	}

	cat = catalog.Category{Name: name}
	if err := r.repo.CreateCategory(ctx, &cat); err != nil {
		if catalog.IsUniqueViolation(err) {
			return r.repo.FindCategoryByName(ctx, name)
		}
		return catalog.Category{}, err
	}
	return cat, nil
}

func (r *Reconciler) findOrCreateAuthor(ctx context.Context, name string) (catalog.Author, error) {
	author, err := r.repo.FindAuthorByName(ctx, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return catalog.Author{}, err
	}

	author = catalog.Author{Name: name}
	if err := r.repo.CreateAuthor(ctx, &author); err != nil {
		if catalog.IsUniqueViolation(err) {
			return r.repo.FindAuthorByName(ctx, name)
		}
		return catalog.Author{}, err
	}
	return author, nil
}
