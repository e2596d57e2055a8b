package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo implements Repository on top of pgx. Uniqueness of ISBN-13,
// author names, category names and (book, author) pairs is enforced by DB
// constraints; callers detect the resulting errors with IsUniqueViolation and
// re-fetch the winning row.
type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error
// (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const bookRecordColumns = `
	b.id, b.title, b.cover_url, b.publisher, COALESCE(b.isbn13, ''),
	b.total_pages, b.published_at, b.avg_rating, b.category_id,
	b.created_at, b.updated_at, c.name,
	COALESCE(array_agg(a.name ORDER BY a.name) FILTER (WHERE a.name IS NOT NULL), '{}')`

const bookRecordJoins = `
	FROM books b
	JOIN categories c ON c.id = b.category_id
	LEFT JOIN authorships w ON w.book_id = b.id
	LEFT JOIN authors a ON a.id = w.author_id`

func scanBookRecord(row pgx.Row) (BookRecord, error) {
	var rec BookRecord
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.CoverURL, &rec.Publisher, &rec.ISBN13,
		&rec.TotalPages, &rec.PublishedAt, &rec.AvgRating, &rec.CategoryID,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.CategoryName, &rec.AuthorNames,
	)
	return rec, err
}

func (r *PostgresRepo) FindByTitleOrAuthor(ctx context.Context, query string, limit int) ([]BookRecord, error) {
	sql := fmt.Sprintf(`
		SELECT %s %s
		WHERE b.title ILIKE $1 OR b.id IN (
			SELECT w2.book_id
			FROM authorships w2
			JOIN authors a2 ON a2.id = w2.author_id
			WHERE a2.name ILIKE $1
		)
		GROUP BY b.id, c.name
		ORDER BY b.created_at DESC
		LIMIT $2`, bookRecordColumns, bookRecordJoins)

	pattern := "%" + query + "%"
	rows, err := r.db.Query(ctx, sql, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("find by title or author: %w", err)
	}
	defer rows.Close()

	var out []BookRecord
	for rows.Next() {
		rec, err := scanBookRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) FindByISBN(ctx context.Context, isbn13 string) (BookRecord, error) {
	sql := fmt.Sprintf(`
		SELECT %s %s
		WHERE b.isbn13 = $1
		GROUP BY b.id, c.name`, bookRecordColumns, bookRecordJoins)

	rec, err := scanBookRecord(r.db.QueryRow(ctx, sql, isbn13))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BookRecord{}, ErrNotFound
		}
		return BookRecord{}, fmt.Errorf("find by isbn: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepo) ListRecent(ctx context.Context, limit int) ([]BookRecord, error) {
	sql := fmt.Sprintf(`
		SELECT %s %s
		GROUP BY b.id, c.name
		ORDER BY b.created_at DESC
		LIMIT $1`, bookRecordColumns, bookRecordJoins)

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	defer rows.Close()

	var out []BookRecord
	for rows.Next() {
		rec, err := scanBookRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateBook(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (title, cover_url, publisher, isbn13, total_pages, published_at, avg_rating, category_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql,
		b.Title, b.CoverURL, b.Publisher, b.ISBN13,
		b.TotalPages, b.PublishedAt, b.AvgRating, b.CategoryID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) UpdateBookPages(ctx context.Context, bookID string, pages int) error {
	const sql = `UPDATE books SET total_pages = $2, updated_at = now() WHERE id = $1`
	if _, err := r.db.Exec(ctx, sql, bookID, pages); err != nil {
		return fmt.Errorf("update book pages: %w", err)
	}
	return nil
}

func (r *PostgresRepo) FindCategoryByName(ctx context.Context, name string) (Category, error) {
	const sql = `SELECT id, name, created_at FROM categories WHERE name = $1`
	var c Category
	err := r.db.QueryRow(ctx, sql, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

func (r *PostgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	const sql = `INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`
	if err := r.db.QueryRow(ctx, sql, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *PostgresRepo) FindAuthorByName(ctx context.Context, name string) (Author, error) {
	const sql = `SELECT id, name, created_at FROM authors WHERE name = $1`
	var a Author
	err := r.db.QueryRow(ctx, sql, name).Scan(&a.ID, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrNotFound
		}
		return Author{}, fmt.Errorf("find author: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) CreateAuthor(ctx context.Context, a *Author) error {
	const sql = `INSERT INTO authors (name) VALUES ($1) RETURNING id, created_at`
	if err := r.db.QueryRow(ctx, sql, a.Name).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *PostgresRepo) HasAuthorship(ctx context.Context, bookID, authorID string) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM authorships WHERE book_id = $1 AND author_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, sql, bookID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has authorship: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepo) CreateAuthorship(ctx context.Context, bookID, authorID string) error {
	const sql = `INSERT INTO authorships (book_id, author_id) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, sql, bookID, authorID); err != nil {
		return fmt.Errorf("create authorship: %w", err)
	}
	return nil
}
