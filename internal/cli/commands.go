package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/orders/internal/config"
	"github.com/idilsaglam/orders/internal/tui"
	"github.com/idilsaglam/orders/internal/ui"
)

// withView opens a session around a one-shot view and runs fn against it.
// The memory backend is rejected: nothing it holds outlives one command.
func (a *app) withView(fn func(v *oneShotView) error) (err error) {
	if a.cfg.Store.Backend == config.BackendMemory {
		return usageErrorf("store %q keeps nothing between commands; use it with `orders tui`", config.BackendMemory)
	}
	v := &oneShotView{}
	s, err := openSession(a.cfg, v)
	if err != nil {
		return err
	}
	defer s.closeInto(&err)
	return fn(v)
}

func (a *app) newListCmd() *cobra.Command {
	var (
		group  bool
		output string
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List orders",
		Args:    noArgs("ls"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withView(func(v *oneShotView) error {
				return writeOrders(cmd.OutOrStdout(), a.cfg.UI.Title, v.orders, output, group)
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new order (text can be multiple words)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return usageErrorf("usage: orders add <text...>")
			}
			return a.withView(func(v *oneShotView) error {
				if err := v.add(text); err != nil {
					return err
				}
				added := v.orders[len(v.orders)-1]
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", added.ID))
				return nil
			})
		},
	}
}

func (a *app) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace the text of an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usageErrorf("usage: orders edit <id> <text...>")
			}
			id, err := parseID("edit", args[0])
			if err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return usageErrorf("edit: empty text")
			}
			return a.withView(func(v *oneShotView) error {
				if err := requireOrder(v, id); err != nil {
					return err
				}
				if err := v.edit(id, text); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("edited #%d", id))
				return nil
			})
		},
	}
}

func (a *app) newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of an order",
		Args:    oneID("done"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			return a.withView(func(v *oneShotView) error {
				if err := requireOrder(v, id); err != nil {
					return err
				}
				if err := v.toggle(id); err != nil {
					return err
				}
				o, _ := v.find(id)
				state := "pending"
				if o.Complete {
					state = "complete"
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("#%d is %s", id, state))
				return nil
			})
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an order",
		Args:    oneID("rm"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			return a.withView(func(v *oneShotView) error {
				if err := requireOrder(v, id); err != nil {
					return err
				}
				if err := v.del(id); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed #%d", id))
				return nil
			})
		},
	}
}

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Manage orders interactively",
		Args:  noArgs("tui"),
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			v := tui.New(a.cfg.UI.Title)
			s, err := openSession(a.cfg, v)
			if err != nil {
				return err
			}
			defer s.closeInto(&err)
			return v.Run()
		},
	}
}

func parseID(cmd, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, usageErrorf("%s: not a valid order id: %s", cmd, arg)
	}
	return id, nil
}

// requireOrder rejects ids the user cannot see in the current list.
func requireOrder(v *oneShotView, id int) error {
	if _, ok := v.find(id); !ok {
		return usageErrorf("no order #%d (have %d); run `orders ls` to see ids", id, len(v.orders))
	}
	return nil
}

func noArgs(name string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 0 {
			return usageErrorf("usage: orders %s", name)
		}
		return nil
	}
}

func oneID(name string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usageErrorf("usage: orders %s <id>", name)
		}
		return nil
	}
}
