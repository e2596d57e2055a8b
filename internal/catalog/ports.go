package catalog

import (
	"context"
)

// Repository defines the contract for catalog storage. Lookups by name and
// ISBN are exact; FindByTitleOrAuthor is a case-insensitive substring match
// over book titles and author names.
type Repository interface {
	FindByTitleOrAuthor(ctx context.Context, query string, limit int) ([]BookRecord, error)
	FindByISBN(ctx context.Context, isbn13 string) (BookRecord, error)
	ListRecent(ctx context.Context, limit int) ([]BookRecord, error)
	CreateBook(ctx context.Context, b *Book) error
	UpdateBookPages(ctx context.Context, bookID string, pages int) error

	FindCategoryByName(ctx context.Context, name string) (Category, error)
	CreateCategory(ctx context.Context, c *Category) error

	FindAuthorByName(ctx context.Context, name string) (Author, error)
	CreateAuthor(ctx context.Context, a *Author) error

	HasAuthorship(ctx context.Context, bookID, authorID string) (bool, error)
	CreateAuthorship(ctx context.Context, bookID, authorID string) error
}
