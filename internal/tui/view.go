// Package tui is the interactive terminal View. It renders whatever list the
// controller hands it and turns key presses into order intents.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"

	"github.com/idilsaglam/orders/internal/model"
)

// orderItem adapts model.Order to bubbles/list.Item
type orderItem struct {
	order model.Order
}

func (i orderItem) Title() string       { return i.order.Text }
func (i orderItem) Description() string { return "" }
func (i orderItem) FilterValue() string { return i.order.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(orderItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.order.Text
	if it.order.Complete {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, mutedStyle.Render(fmt.Sprintf("#%d", it.order.ID)), box, text)
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// View is a Bubble Tea model and a controller.View. Everything runs on the
// Bubble Tea update goroutine: intent handlers are called from Update and
// trigger Render synchronously through the controller.
type View struct {
	title string
	list  list.Model
	ti    textinput.Model

	// Inline add / edit
	adding   bool
	editing  bool
	editID   int
	// editBase is the input value right after the order text was loaded,
	// with tabs and newlines already sanitized by the input.
	editBase string
	inputErr string

	// err is the commit failure that ended the program.
	err     error
	pending tea.Cmd

	width, height int

	onAdd    func(text string) error
	onEdit   func(id int, text string) error
	onDelete func(id int) error
	onToggle func(id int) error
}

// New builds an empty View; the controller fills it through Render.
func New(title string) *View {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = title
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("order", "orders")
	// "d" deletes here, so drop it from paging.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown", "f"), key.WithHelp("→/l/pgdn", "next page"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, toggleBind, deleteBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, toggleBind, deleteBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add Order"

	return &View{title: title, list: l, ti: ti, width: 80, height: 24}
}

func (v *View) BindAddOrder(h func(text string) error)          { v.onAdd = h }
func (v *View) BindEditOrder(h func(id int, text string) error) { v.onEdit = h }
func (v *View) BindDeleteOrder(h func(id int) error)            { v.onDelete = h }
func (v *View) BindToggleOrder(h func(id int) error)            { v.onToggle = h }

// Render replaces the list contents with orders and refreshes the header.
func (v *View) Render(orders []model.Order) {
	items := make([]list.Item, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderItem{order: o})
	}
	idx := v.list.Index()
	v.pending = v.list.SetItems(items)
	if n := len(v.list.VisibleItems()); idx >= n && n > 0 {
		v.list.Select(n - 1)
	}

	done, pending := model.Stats(orders)
	v.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(v.title),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(orders),
	)
	glog.V(1).Infof("tui: rendered %d orders", len(orders))
}

// Err returns the commit error that stopped the program, if any.
func (v *View) Err() error { return v.err }

// Run starts the program on the alternate screen and blocks until quit.
func (v *View) Run(opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(v, opts...).Run(); err != nil {
		return err
	}
	return v.err
}

// Update and View implement Bubble Tea's Model on View
func (v *View) Init() tea.Cmd { return nil }

func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.width, v.height = size.Width, size.Height
		v.resize()
		return v, nil
	}
	if v.adding || v.editing {
		return v.updateInput(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && v.list.FilterState() != list.Filtering {
		switch km.String() {
		case "q", "ctrl+c":
			return v, tea.Quit
		case "esc":
			if v.list.FilterState() == list.Unfiltered {
				return v, tea.Quit
			}
		case " ":
			if it, ok := v.selected(); ok {
				return v.dispatch(v.onToggle(it.order.ID))
			}
			return v, nil
		case "d":
			if it, ok := v.selected(); ok {
				return v.dispatch(v.onDelete(it.order.ID))
			}
			return v, nil
		case "a":
			v.adding = true
			v.inputErr = ""
			v.ti.SetValue("")
			v.ti.Placeholder = "Add Order"
			v.resize()
			return v, v.ti.Focus()
		case "e":
			if it, ok := v.selected(); ok {
				v.editing = true
				v.editID = it.order.ID
				v.inputErr = ""
				v.ti.SetValue(it.order.Text)
				v.editBase = strings.TrimSpace(v.ti.Value())
				v.ti.CursorEnd()
				v.ti.Placeholder = "Edit order..."
				v.resize()
				return v, v.ti.Focus()
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// updateInput handles the inline add/edit bar. The edit intent is raised
// only when editing completes with changed text.
func (v *View) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := strings.TrimSpace(v.ti.Value())
			if text == "" {
				v.inputErr = "Order cannot be empty"
				return v, nil
			}
			adding, id, changed := v.adding, v.editID, text != v.editBase
			v.closeInput()
			if adding {
				return v.dispatch(v.onAdd(text))
			}
			if changed {
				return v.dispatch(v.onEdit(id, text))
			}
			return v, nil
		case "esc":
			v.closeInput()
			return v, nil
		case "ctrl+c":
			return v, tea.Quit
		}
	}
	var cmd tea.Cmd
	v.ti, cmd = v.ti.Update(msg)
	return v, cmd
}

// dispatch finishes an intent. A failed commit is fatal: the program quits
// and Run returns the error.
func (v *View) dispatch(err error) (tea.Model, tea.Cmd) {
	cmd := v.pending
	v.pending = nil
	if err != nil {
		glog.Errorf("tui: %v", err)
		v.err = err
		return v, tea.Quit
	}
	return v, cmd
}

func (v *View) closeInput() {
	v.adding = false
	v.editing = false
	v.editID = 0
	v.editBase = ""
	v.inputErr = ""
	v.ti.SetValue("")
	v.ti.Blur()
	v.resize()
}

func (v *View) selected() (orderItem, bool) {
	it, ok := v.list.SelectedItem().(orderItem)
	return it, ok
}

func (v *View) resize() {
	h := v.height - 4
	if v.adding || v.editing {
		h = v.height - 8
	}
	v.list.SetSize(max(v.width-4, 0), max(h, 0))
}

func (v *View) View() string {
	content := v.list.View()
	if len(v.list.Items()) == 0 {
		content = v.list.Title + "\n\n" + mutedStyle.Render(emptyMessage)
	}
	if v.adding || v.editing {
		title := "Add order"
		if v.editing {
			title = fmt.Sprintf("Edit order #%d", v.editID)
		}
		if v.inputErr != "" {
			title += " - " + errorStyle.Render(v.inputErr)
		}
		content += "\n" + panelStyle.Render(title+"\n"+v.ti.View())
	}
	return panelStyle.Render(content)
}
