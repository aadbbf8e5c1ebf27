package gameitems

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustItems(t *testing.T, payload string) []GameItem {
	t.Helper()

	var items []GameItem
	require.NoError(t, json.Unmarshal([]byte(payload), &items))
	return items
}

func TestStoreReplaceAndListKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	empty, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, store.Replace(ctx, mustItems(t, `[{"id":3,"name":"Bow"},{"id":1,"name":"Sword"}]`)))
	require.NoError(t, store.Replace(ctx, mustItems(t, `[{"id":2,"name":"Axe"},{"id":1,"name":"Sword"},{"id":5}]`)))

	items, err := store.List(ctx)
	require.NoError(t, err)

	encoded, err := json.Marshal(items)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2,"name":"Axe"},{"id":1,"name":"Sword"},{"id":5}]`, string(encoded))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := OpenStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, mustItems(t, `[{"id":1,"name":"Sword"}]`)))
	require.NoError(t, store.Close())

	reopened, err := OpenStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	items, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sword", items[0].Name())
}

func TestOpenStoreRequiresPath(t *testing.T) {
	_, err := OpenStore(context.Background(), " ")
	assert.Error(t, err)
}
