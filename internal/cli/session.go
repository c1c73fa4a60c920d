package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/orders/internal/config"
	"github.com/idilsaglam/orders/internal/controller"
	"github.com/idilsaglam/orders/internal/model"
	"github.com/idilsaglam/orders/internal/store"
	"github.com/idilsaglam/orders/internal/store/jsonstore"
	"github.com/idilsaglam/orders/internal/store/memstore"
	"github.com/idilsaglam/orders/internal/store/sqlitestore"
)

const sqliteFileName = "orders.db"

// openKV creates the configured key-value backend.
func openKV(cfg config.StoreConfig) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.Open(cfg.Dir)
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		return sqlitestore.Open(filepath.Join(cfg.Dir, sqliteFileName))
	case config.BackendMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// oneShotView is the View used by single-command invocations: it keeps the
// bound intent handlers so the command can raise exactly one of them, and
// the latest rendered snapshot so the command can report on it.
type oneShotView struct {
	add    func(text string) error
	edit   func(id int, text string) error
	del    func(id int) error
	toggle func(id int) error

	orders []model.Order
}

func (v *oneShotView) BindAddOrder(h func(text string) error)          { v.add = h }
func (v *oneShotView) BindEditOrder(h func(id int, text string) error) { v.edit = h }
func (v *oneShotView) BindDeleteOrder(h func(id int) error)            { v.del = h }
func (v *oneShotView) BindToggleOrder(h func(id int) error)            { v.toggle = h }
func (v *oneShotView) Render(orders []model.Order)                     { v.orders = orders }

func (v *oneShotView) find(id int) (model.Order, bool) {
	for _, o := range v.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// session is one Model + Controller + View wiring over an open store.
type session struct {
	kv   store.KV
	ctrl *controller.Controller
}

func openSession(cfg config.Config, view controller.View) (*session, error) {
	kv, err := openKV(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	m := model.New(store.NewOrders(kv, cfg.Store.Key))
	return &session{kv: kv, ctrl: controller.New(m, view)}, nil
}

func (s *session) Close() error {
	s.ctrl.Close()
	return s.kv.Close()
}

// closeInto closes s and stores the close error in *err unless an earlier
// error is already there.
func (s *session) closeInto(err *error) {
	if cerr := s.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close store: %w", cerr)
	}
}
