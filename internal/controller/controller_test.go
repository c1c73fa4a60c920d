package controller_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/orders/internal/controller"
	"github.com/idilsaglam/orders/internal/model"
	"github.com/idilsaglam/orders/internal/store"
	"github.com/idilsaglam/orders/internal/store/memstore"
)

// recordingView keeps the bound handlers and every rendered snapshot.
type recordingView struct {
	add    func(string) error
	edit   func(int, string) error
	del    func(int) error
	toggle func(int) error

	renders [][]model.Order
}

func (v *recordingView) BindAddOrder(h func(string) error)      { v.add = h }
func (v *recordingView) BindEditOrder(h func(int, string) error) { v.edit = h }
func (v *recordingView) BindDeleteOrder(h func(int) error)      { v.del = h }
func (v *recordingView) BindToggleOrder(h func(int) error)      { v.toggle = h }
func (v *recordingView) Render(orders []model.Order)            { v.renders = append(v.renders, orders) }

func (v *recordingView) last() []model.Order { return v.renders[len(v.renders)-1] }

func newWired(t *testing.T, kv *memstore.Store) (*model.Model, *recordingView, *controller.Controller) {
	t.Helper()
	m := model.New(store.NewOrders(kv, ""))
	v := &recordingView{}
	c := controller.New(m, v)
	require.NotNil(t, v.add)
	require.NotNil(t, v.edit)
	require.NotNil(t, v.del)
	require.NotNil(t, v.toggle)
	return m, v, c
}

func TestNew_InitialRenderDoesNotPersist(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(store.DefaultKey, []byte(`[{"id":3,"text":"Soup","complete":false}]`)))
	kv.SetErr = errors.New("read-only")

	_, v, _ := newWired(t, kv)

	require.Len(t, v.renders, 1)
	assert.Equal(t, []model.Order{{ID: 3, Text: "Soup"}}, v.last())
}

func TestHandlers_ForwardToModel(t *testing.T) {
	kv := memstore.New()
	m, v, _ := newWired(t, kv)

	require.NoError(t, v.add("Coffee"))
	require.NoError(t, v.add("Tea"))
	require.NoError(t, v.toggle(1))
	require.NoError(t, v.del(2))
	require.NoError(t, v.edit(1, "Espresso"))

	want := []model.Order{{ID: 1, Text: "Espresso", Complete: true}}
	assert.Equal(t, want, m.Orders())
	assert.Equal(t, want, v.last())
	assert.Len(t, v.renders, 6, "one initial render plus one per intent")

	persisted, err := store.NewOrders(kv, "").Load()
	require.NoError(t, err)
	assert.Equal(t, want, persisted)
}

func TestHandlers_DoNotValidate(t *testing.T) {
	m, v, _ := newWired(t, memstore.New())

	require.NoError(t, v.add(""))
	assert.Equal(t, []model.Order{{ID: 1, Text: ""}}, m.Orders())
}

func TestHandlers_ReturnCommitError(t *testing.T) {
	kv := memstore.New()
	m, v, _ := newWired(t, kv)
	boom := errors.New("disk full")
	kv.SetErr = boom

	err := v.add("Coffee")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, m.Orders(), 1)
	assert.Len(t, v.last(), 1, "view was notified before the write failed")
}

func TestClose_StopsRendering(t *testing.T) {
	_, v, c := newWired(t, memstore.New())
	c.Close()

	require.NoError(t, v.add("Coffee"))
	assert.Len(t, v.renders, 1)
}
