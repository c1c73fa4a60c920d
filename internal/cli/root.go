package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/orders/internal/config"
	"github.com/idilsaglam/orders/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks bad invocations (exit code 2).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// rootFlags override the loaded configuration when set.
type rootFlags struct {
	backend string
	dir     string
	key     string
	theme   string
	color   string
}

type app struct {
	loadConfig func() (config.Config, error)
	flags      rootFlags
	cfg        config.Config
}

func newRootCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	a := &app{loadConfig: loadConfig}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Track orders: add, edit, complete and delete",
		Long: `orders keeps a list of short-text orders persisted in a local key-value store.

CONFIGURATION:
  ~/.config/orders/config.toml (or $ORDERS_CONFIG), overridden by ORDERS_* env vars
  and by the flags below.

    ORDERS_STORE_BACKEND   json | sqlite | memory (default: json; memory only lives
                           as long as one process, so it is only useful with tui)
    ORDERS_STORE_DIR       data directory (default: ~/.local/share/orders)
    ORDERS_STORE_KEY       key the list is stored under (default: orders)
    ORDERS_UI_THEME        classic | neon | mono
    ORDERS_UI_TITLE        list title
    ORDERS_UI_COLOR        auto | always | never`,
		Example: `  orders add "Coffee"
  orders ls
  orders done 1
  orders edit 1 Espresso
  orders rm 2
  orders tui`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flags.backend, "store", "", "store backend: json, sqlite or memory (memory: tui only)")
	pf.StringVar(&a.flags.dir, "dir", "", "data directory")
	pf.StringVar(&a.flags.key, "key", "", "key the order list is stored under")
	pf.StringVar(&a.flags.theme, "theme", "", "output theme: classic, neon or mono")
	pf.StringVar(&a.flags.color, "color", "", "color output: auto, always or never")
	// glog's -v, -logtostderr, -log_dir, ...
	pf.AddGoFlagSet(flag.CommandLine)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	cmd.AddCommand(
		a.newListCmd(),
		a.newAddCmd(),
		a.newEditCmd(),
		a.newDoneCmd(),
		a.newRemoveCmd(),
		a.newTUICmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// glog only reads its flags; mark the Go flag set parsed.
	if !flag.Parsed() {
		_ = flag.CommandLine.Parse(nil)
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.flags.backend != "" {
		cfg.Store.Backend = a.flags.backend
	}
	if a.flags.dir != "" {
		cfg.Store.Dir = a.flags.dir
	}
	if a.flags.key != "" {
		cfg.Store.Key = a.flags.key
	}
	if a.flags.theme != "" {
		cfg.UI.Theme = a.flags.theme
	}
	if a.flags.color != "" {
		cfg.UI.Color = a.flags.color
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{msg: err.Error()}
	}
	applyTheme(cfg.UI)
	a.cfg = cfg
	glog.V(1).Infof("cli: store=%s dir=%s key=%s theme=%s", cfg.Store.Backend, cfg.Store.Dir, cfg.Store.Key, ui.Current().Name)
	return nil
}

// applyTheme selects the theme, then the color mode. The mono theme never
// colors.
func applyTheme(c config.UIConfig) {
	ui.SetTheme(c.Theme)
	mono := ui.Current().Name == "mono"
	switch c.Color {
	case config.ColorAlways:
		ui.SetColorForcing(true, mono)
	case config.ColorNever:
		ui.SetColorForcing(false, true)
	default:
		ui.SetColorForcing(false, mono)
	}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(newRootCmd(config.Load), os.Args[1:])
}

func run(cmd *cobra.Command, args []string) int {
	defer glog.Flush()

	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	ui.Fail(cmd.ErrOrStderr(), err.Error())
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitError
}
