package gameitems

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameItemRoundTripKeepsPayload(t *testing.T) {
	payload := `[{"id":1,"name":"Sword","stats":{"atk":12.50}},{"id":"b2","title":"Shield"},7,null]`

	var items []GameItem
	require.NoError(t, json.Unmarshal([]byte(payload), &items))
	require.Len(t, items, 4)

	encoded, err := json.Marshal(items)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(encoded))
	assert.Contains(t, string(encoded), `12.50`)
}

func TestGameItemAccessors(t *testing.T) {
	item, err := NewGameItem([]byte(`{"id":1,"name":" Sword ","description":"**sharp**","rare":true,"tags":["a"]}`))
	require.NoError(t, err)

	assert.True(t, item.IsRecord())
	assert.Equal(t, "1", item.ID())
	assert.Equal(t, "Sword", item.Name())
	assert.Equal(t, "**sharp**", item.Description())
	assert.Equal(t, "true", item.Text("rare"))
	assert.Empty(t, item.Text("tags"))
	assert.Empty(t, item.Text("missing"))

	titled, err := NewGameItem([]byte(`{"id":"x9","title":"Shield"}`))
	require.NoError(t, err)
	assert.Equal(t, "Shield", titled.Name())

	bare, err := NewGameItem([]byte(`{"id":"x10"}`))
	require.NoError(t, err)
	assert.Equal(t, "x10", bare.Name())
}

func TestGameItemNonRecord(t *testing.T) {
	item, err := NewGameItem([]byte(`"plain"`))
	require.NoError(t, err)

	assert.False(t, item.IsRecord())
	assert.Empty(t, item.Name())
	_, ok := item.Field("id")
	assert.False(t, ok)
}

func TestNewGameItemRejectsInvalid(t *testing.T) {
	_, err := NewGameItem([]byte(`{"id":`))
	assert.Error(t, err)

	_, err = NewGameItem([]byte("  "))
	assert.Error(t, err)
}
