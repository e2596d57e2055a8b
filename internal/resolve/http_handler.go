package resolve

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/catalog"
	"bookshelf/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Search handles GET /api/v1/books. With a query parameter it resolves
// through the full pipeline; without one it lists recent local books.
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	limit, _ := strconv.Atoi(params.Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var (
		books []BookView
		err   error
	)
	if query := params.Get("query"); query != "" {
		books, err = h.svc.SearchBooks(r.Context(), query, limit)
	} else {
		books, err = h.svc.ListBooks(r.Context(), limit)
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	httpx.JSONSuccess(w, books, map[string]any{
		"count": len(books),
		"limit": limit,
	})
}

// GetByISBN handles GET /api/v1/books/{isbn}.
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "ISBN is required")
		return
	}

	book, err := h.svc.GetBookByISBN(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	httpx.JSONSuccess(w, book, nil)
}
