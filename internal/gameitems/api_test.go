package gameitems

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listerFunc func(ctx context.Context) ([]GameItem, error)

func (f listerFunc) List(ctx context.Context) ([]GameItem, error) {
	return f(ctx)
}

func TestAPIHandlerListsItems(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Replace(context.Background(), mustItems(t, `[{"id":1,"name":"Sword"}]`)))

	rec := httptest.NewRecorder()
	NewAPIHandler(store, zerolog.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ResourcePath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"id":1,"name":"Sword"}]`, rec.Body.String())
}

func TestAPIHandlerEmptyCatalog(t *testing.T) {
	lister := listerFunc(func(context.Context) ([]GameItem, error) { return nil, nil })

	rec := httptest.NewRecorder()
	NewAPIHandler(lister, zerolog.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ResourcePath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestAPIHandlerErrors(t *testing.T) {
	var logs bytes.Buffer
	lister := listerFunc(func(context.Context) ([]GameItem, error) { return nil, errors.New("disk gone") })
	handler := NewAPIHandler(lister, zerolog.New(&logs))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ResourcePath, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"game items unavailable"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "disk gone")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, ResourcePath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}
