package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/orders/internal/model"
	"github.com/idilsaglam/orders/internal/ui"
)

// Output formats for `ls`.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

const maxTextWidth = 80

func writeOrders(w io.Writer, title string, orders []model.Order, format string, group bool) error {
	switch format {
	case formatTable, "":
		ui.Panel(w, panelLines(title, orders, group))
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(orders)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(orders); err != nil {
			return err
		}
		return enc.Close()
	default:
		return usageErrorf("ls: unknown output format %q (want table, json or yaml)", format)
	}
}

func panelLines(title string, orders []model.Order, group bool) []string {
	t := ui.Current()
	d, p := model.Stats(orders)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, title),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymPending), p,
		ui.C(t.Accent, "Total"), len(orders),
	)

	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, groupLines(orders)...)
	} else {
		lines = append(lines, flatLines(orders)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: add with `orders add \"Coffee\"`"))
	return lines
}

func flatLines(orders []model.Order) []string {
	t := ui.Current()
	if len(orders) == 0 {
		return []string{ui.C(t.Muted, "Nothing to serve? Take orders!")}
	}
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		box, color := t.BoxUnchecked, t.Muted
		if o.Complete {
			box, color = t.BoxChecked, t.Success
		}
		text := []rune(o.Text)
		if len(text) > maxTextWidth {
			text = append(text[:maxTextWidth-3], []rune("...")...)
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.Dim(fmt.Sprintf("%3s", fmt.Sprintf("#%d", o.ID))), ui.C(color, box), string(text)))
	}
	return out
}

func groupLines(orders []model.Order) []string {
	var pend, done []model.Order
	for _, o := range orders {
		if o.Complete {
			done = append(done, o)
		} else {
			pend = append(pend, o)
		}
	}
	t := ui.Current()
	section := func(name string, items []model.Order) []string {
		lines := []string{ui.C(t.Accent, name)}
		if len(items) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(items)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
