package jsonstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/orders/internal/model"
	"github.com/idilsaglam/orders/internal/store"
	"github.com/idilsaglam/orders/internal/store/jsonstore"
)

func TestStore_GetMissingKey(t *testing.T) {
	s, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("orders")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_SetAndGet(t *testing.T) {
	dir := t.TempDir()
	s, err := jsonstore.Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("orders", []byte(`[{"id":1,"text":"Coffee","complete":false}]`)))

	raw, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {", "file is indented")

	got, err := s.Get("orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"text":"Coffee","complete":false}]`, string(got))
}

func TestStore_SetOverwrites(t *testing.T) {
	s, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("orders", []byte(`[1]`)))
	require.NoError(t, s.Set("orders", []byte(`[2]`)))

	got, err := s.Get("orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[2]`, string(got))
}

func TestStore_SetRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	s, err := jsonstore.Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("orders", []byte(`[]`)))
	assert.Error(t, s.Set("orders", []byte(`{not json`)))

	got, err := s.Get("orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got), "previous value survives a failed write")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestStore_InvalidKeys(t *testing.T) {
	s, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "a/b", `a\b`, "..", "."} {
		assert.Error(t, s.Set(key, []byte(`[]`)), key)
		_, err := s.Get(key)
		assert.Error(t, err, key)
	}
}

func TestStore_OrdersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	kv, err := jsonstore.Open(dir)
	require.NoError(t, err)

	orders := []model.Order{
		{ID: 1, Text: "Coffee", Complete: true},
		{ID: 3, Text: "Tea with \"milk\""},
	}
	require.NoError(t, store.NewOrders(kv, "").Save(orders))

	reopened, err := jsonstore.Open(dir)
	require.NoError(t, err)
	got, err := store.NewOrders(reopened, "").Load()
	require.NoError(t, err)
	assert.Equal(t, orders, got)
}
