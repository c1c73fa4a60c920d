package model

import (
	"fmt"
	"slices"

	"github.com/golang/glog"
)

// Model owns the ordered order list. Every mutator replaces the list with a
// new slice and commits it: the listener is notified first, then the whole
// snapshot is written to the store.
//
// A Model is not safe for concurrent use; callers drive it from a single
// event loop.
type Model struct {
	store  OrderStore
	orders []Order

	// lastID is the highest id issued or loaded so far.
	lastID int

	listener Listener
	subID    uint64
}

// New loads the persisted list from s. A failed or corrupt load starts the
// Model with an empty list.
func New(s OrderStore) *Model {
	m := &Model{store: s, orders: []Order{}}

	orders, err := s.Load()
	if err == nil {
		err = checkIDs(orders)
	}
	if err != nil {
		glog.Warningf("orders: load failed, starting empty: %v", err)
		return m
	}
	if orders != nil {
		m.orders = orders
	}
	m.lastID = maxID(m.orders)
	glog.V(1).Infof("orders: loaded %d orders", len(m.orders))
	return m
}

// Orders returns a copy of the current list.
func (m *Model) Orders() []Order {
	return slices.Clone(m.orders)
}

// Subscribe registers l as the single change listener, replacing any previous
// one. The returned func removes l if it is still the active listener.
func (m *Model) Subscribe(l Listener) (unsubscribe func()) {
	m.subID++
	id := m.subID
	m.listener = l
	return func() {
		if m.subID == id {
			m.listener = nil
		}
	}
}

// BindOrderListChanged registers l as the change listener.
func (m *Model) BindOrderListChanged(l Listener) {
	m.Subscribe(l)
}

// AddOrder appends a new, incomplete order. text is not validated here.
func (m *Model) AddOrder(text string) error {
	m.lastID++
	next := make([]Order, 0, len(m.orders)+1)
	next = append(next, m.orders...)
	next = append(next, Order{ID: m.lastID, Text: text})
	return m.commit(next)
}

// EditOrder replaces the text of the order with the given id. A commit
// happens even when no order matches.
func (m *Model) EditOrder(id int, text string) error {
	return m.commit(m.replace(id, func(o Order) Order {
		return Order{ID: o.ID, Text: text, Complete: o.Complete}
	}))
}

// DeleteOrder removes the order with the given id, keeping the others in
// place.
func (m *Model) DeleteOrder(id int) error {
	next := make([]Order, 0, len(m.orders))
	for _, o := range m.orders {
		if o.ID != id {
			next = append(next, o)
		}
	}
	return m.commit(next)
}

// ToggleOrder flips the completion flag of the order with the given id.
func (m *Model) ToggleOrder(id int) error {
	return m.commit(m.replace(id, func(o Order) Order {
		return Order{ID: o.ID, Text: o.Text, Complete: !o.Complete}
	}))
}

func (m *Model) replace(id int, fn func(Order) Order) []Order {
	next := make([]Order, len(m.orders))
	for i, o := range m.orders {
		if o.ID == id {
			o = fn(o)
		}
		next[i] = o
	}
	return next
}

// commit publishes next. The in-memory list is not rolled back when the
// store write fails.
func (m *Model) commit(next []Order) error {
	m.orders = next
	if m.listener != nil {
		m.listener(slices.Clone(next))
	}
	if err := m.store.Save(slices.Clone(next)); err != nil {
		glog.Errorf("orders: commit of %d orders not persisted: %v", len(next), err)
		return fmt.Errorf("save orders: %w", err)
	}
	glog.V(1).Infof("orders: committed %d orders", len(next))
	return nil
}

func maxID(orders []Order) int {
	n := 0
	for _, o := range orders {
		n = max(n, o.ID)
	}
	return n
}

func checkIDs(orders []Order) error {
	seen := make(map[int]struct{}, len(orders))
	for _, o := range orders {
		if o.ID <= 0 {
			return fmt.Errorf("invalid order id %d", o.ID)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("duplicate order id %d", o.ID)
		}
		seen[o.ID] = struct{}{}
	}
	return nil
}
