package model

// Order is the domain model for a single tracked order.
type Order struct {
	ID       int    `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Complete bool   `json:"complete" yaml:"complete"`
}

// OrderStore is the persistence boundary the Model loads from once and
// saves a full snapshot to on every commit.
type OrderStore interface {
	Load() ([]Order, error)
	Save(orders []Order) error
}

// Listener receives the full list after every commit. The slice is a
// snapshot owned by the listener.
type Listener func(orders []Order)

// Stats counts completed and pending orders.
func Stats(orders []Order) (done, pending int) {
	for _, o := range orders {
		if o.Complete {
			done++
		} else {
			pending++
		}
	}
	return
}
