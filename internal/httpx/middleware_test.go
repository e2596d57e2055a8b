package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookshelf/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_AssignsWhenMissing(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	})

	rec := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestRequestIDMiddleware_PropagatesCallerID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "caller-supplied")
	rec := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied", seen)
	assert.Equal(t, "caller-supplied", rec.Header().Get("X-Request-Id"))
}

func TestRecoveryMiddleware_PanicBecomes500(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	RecoveryMiddleware(logger.NewNop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}

func TestRecoveryMiddleware_PassThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	RecoveryMiddleware(logger.NewNop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestAccessLogMiddleware_PreservesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "nothing here")
	})

	rec := httptest.NewRecorder()
	AccessLogMiddleware(logger.NewNop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
