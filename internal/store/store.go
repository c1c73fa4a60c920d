// Package store persists the order list as a single JSON value in a
// key-value store. Sub packages implement KV on different backends.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/idilsaglam/orders/internal/model"
)

// DefaultKey is the key the order list is stored under.
const DefaultKey = "orders"

// ErrNotFound is returned by KV.Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a synchronous key-value store.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(key string, value []byte) error
	Close() error
}

// Orders implements model.OrderStore on top of a KV under a fixed key.
type Orders struct {
	kv  KV
	key string
}

// NewOrders returns an order store using key, or DefaultKey when key is
// empty.
func NewOrders(kv KV, key string) *Orders {
	if key == "" {
		key = DefaultKey
	}
	return &Orders{kv: kv, key: key}
}

// Load decodes the stored list. An absent key is an empty list.
func (o *Orders) Load() ([]model.Order, error) {
	b, err := o.kv.Get(o.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.Order{}, nil
		}
		return nil, fmt.Errorf("get %q: %w", o.key, err)
	}
	orders, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", o.key, err)
	}
	glog.V(2).Infof("store: read %d orders from %q", len(orders), o.key)
	return orders, nil
}

// Save encodes the full list and writes it under the key.
func (o *Orders) Save(orders []model.Order) error {
	b, err := Encode(orders)
	if err != nil {
		return err
	}
	if err := o.kv.Set(o.key, b); err != nil {
		return fmt.Errorf("set %q: %w", o.key, err)
	}
	glog.V(2).Infof("store: wrote %d orders to %q", len(orders), o.key)
	return nil
}

// Encode serializes orders as a JSON array in list order. A nil list encodes
// as an empty array.
func Encode(orders []model.Order) ([]byte, error) {
	if orders == nil {
		orders = []model.Order{}
	}
	b, err := json.Marshal(orders)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a JSON array of orders. A JSON null decodes as an empty list.
func Decode(b []byte) ([]model.Order, error) {
	var orders []model.Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}
