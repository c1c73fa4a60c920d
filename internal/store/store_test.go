package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/orders/internal/model"
	"github.com/idilsaglam/orders/internal/store"
	"github.com/idilsaglam/orders/internal/store/memstore"
)

func TestOrders_LoadMissingKeyIsEmpty(t *testing.T) {
	got, err := store.NewOrders(memstore.New(), "").Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestOrders_SaveWritesJSONArray(t *testing.T) {
	kv := memstore.New()
	s := store.NewOrders(kv, "")

	require.NoError(t, s.Save([]model.Order{{ID: 1, Text: "Coffee"}, {ID: 2, Text: "Tea", Complete: true}}))

	raw, err := kv.Get(store.DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"text":"Coffee","complete":false},{"id":2,"text":"Tea","complete":true}]`, string(raw))
}

func TestOrders_CustomKey(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, store.NewOrders(kv, "bar-tab").Save([]model.Order{{ID: 1, Text: "Beer"}}))

	_, err := kv.Get(store.DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = kv.Get("bar-tab")
	assert.NoError(t, err)
}

func TestOrders_LoadCorruptValue(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(store.DefaultKey, []byte(`{"id":`)))

	_, err := store.NewOrders(kv, "").Load()
	assert.Error(t, err)
}

func TestOrders_ErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	kv := memstore.New()
	kv.GetErr = boom
	kv.SetErr = boom
	s := store.NewOrders(kv, "")

	_, err := s.Load()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Save(nil), boom)
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		orders []model.Order
	}{
		{name: "empty", orders: []model.Order{}},
		{name: "ordered", orders: []model.Order{{ID: 9, Text: "z"}, {ID: 2, Text: "ä ✔", Complete: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := store.Encode(tt.orders)
			require.NoError(t, err)
			got, err := store.Decode(b)
			require.NoError(t, err)
			assert.Equal(t, tt.orders, got)
		})
	}
}

func TestEncodeNil(t *testing.T) {
	b, err := store.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	got, err := store.Decode([]byte("null"))
	require.NoError(t, err)
	assert.Equal(t, []model.Order{}, got)
}

func TestModelRecoversFromCorruptStore(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(store.DefaultKey, []byte(`not json`)))

	m := model.New(store.NewOrders(kv, ""))
	assert.Empty(t, m.Orders())
}
