// Package controller links a View's user intents to the Model and the
// Model's change notifications back to the View.
package controller

import (
	"github.com/golang/glog"

	"github.com/idilsaglam/orders/internal/model"
)

// View renders orders and raises add/edit/delete/toggle intents. Handlers
// return the error of the commit they triggered.
type View interface {
	BindAddOrder(handler func(text string) error)
	BindEditOrder(handler func(id int, text string) error)
	BindDeleteOrder(handler func(id int) error)
	BindToggleOrder(handler func(id int) error)
	// Render redraws everything from orders. It must not modify the slice.
	Render(orders []model.Order)
}

// Controller holds no state of its own beyond the two collaborators.
type Controller struct {
	model       *model.Model
	view        View
	unsubscribe func()
}

// New wires m and v together and renders the current list once. The initial
// render does not persist anything.
func New(m *model.Model, v View) *Controller {
	c := &Controller{model: m, view: v}

	c.unsubscribe = m.Subscribe(c.onOrderListChanged)
	v.BindAddOrder(c.handleAddOrder)
	v.BindEditOrder(c.handleEditOrder)
	v.BindDeleteOrder(c.handleDeleteOrder)
	v.BindToggleOrder(c.handleToggleOrder)

	c.onOrderListChanged(m.Orders())
	return c
}

// Close stops forwarding model changes to the view.
func (c *Controller) Close() {
	c.unsubscribe()
}

func (c *Controller) onOrderListChanged(orders []model.Order) {
	glog.V(1).Infof("controller: render %d orders", len(orders))
	c.view.Render(orders)
}

func (c *Controller) handleAddOrder(text string) error {
	return c.model.AddOrder(text)
}

func (c *Controller) handleEditOrder(id int, text string) error {
	return c.model.EditOrder(id, text)
}

func (c *Controller) handleDeleteOrder(id int) error {
	return c.model.DeleteOrder(id)
}

func (c *Controller) handleToggleOrder(id int) error {
	return c.model.ToggleOrder(id)
}
