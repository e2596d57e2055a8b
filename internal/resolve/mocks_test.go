package resolve

import (
	"context"

	"bookshelf/internal/catalog"
	"bookshelf/internal/platform/aladin"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FindByTitleOrAuthor(ctx context.Context, query string, limit int) ([]catalog.BookRecord, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.BookRecord), args.Error(1)
}

func (m *mockRepo) FindByISBN(ctx context.Context, isbn13 string) (catalog.BookRecord, error) {
	args := m.Called(ctx, isbn13)
	return args.Get(0).(catalog.BookRecord), args.Error(1)
}

func (m *mockRepo) ListRecent(ctx context.Context, limit int) ([]catalog.BookRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.BookRecord), args.Error(1)
}

func (m *mockRepo) CreateBook(ctx context.Context, b *catalog.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) UpdateBookPages(ctx context.Context, bookID string, pages int) error {
	args := m.Called(ctx, bookID, pages)
	return args.Error(0)
}

func (m *mockRepo) FindCategoryByName(ctx context.Context, name string) (catalog.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(catalog.Category), args.Error(1)
}

func (m *mockRepo) CreateCategory(ctx context.Context, c *catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockRepo) FindAuthorByName(ctx context.Context, name string) (catalog.Author, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(catalog.Author), args.Error(1)
}

func (m *mockRepo) CreateAuthor(ctx context.Context, a *catalog.Author) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockRepo) HasAuthorship(ctx context.Context, bookID, authorID string) (bool, error) {
	args := m.Called(ctx, bookID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) CreateAuthorship(ctx context.Context, bookID, authorID string) error {
	args := m.Called(ctx, bookID, authorID)
	return args.Error(0)
}

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Search(ctx context.Context, target aladin.Target, query string, maxResults, start int) ([]aladin.Item, error) {
	args := m.Called(ctx, target, query, maxResults, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]aladin.Item), args.Error(1)
}

func (m *mockClient) Lookup(ctx context.Context, isbn13 string) ([]aladin.Item, error) {
	args := m.Called(ctx, isbn13)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]aladin.Item), args.Error(1)
}

// fillBookID assigns an ID to the book passed into a mocked CreateBook call.
func fillBookID(id string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*catalog.Book).ID = id
	}
}
