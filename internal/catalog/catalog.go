package catalog

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book, author or category is not in the store.
var ErrNotFound = errors.New("not found")

// Book is a canonical book row. ISBN13 may be empty (unknown) and TotalPages
// zero means "page count unknown", not a zero-page book.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Publisher   string    `json:"publisher,omitempty"`
	ISBN13      string    `json:"isbn13,omitempty"`
	TotalPages  int       `json:"total_pages"`
	PublishedAt time.Time `json:"published_date"`
	AvgRating   float64   `json:"avg_rating"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Author is unique per distinct spelling of its name. No fuzzy matching.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is created lazily the first time a name is encountered.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Authorship links one Book to one Author. The (book, author) pair is unique.
type Authorship struct {
	ID       string `json:"id"`
	BookID   string `json:"book_id"`
	AuthorID string `json:"author_id"`
}

// BookRecord is a Book joined with its category name and author names, the
// shape read paths work with.
type BookRecord struct {
	Book
	CategoryName string   `json:"category_name"`
	AuthorNames  []string `json:"authors"`
}
