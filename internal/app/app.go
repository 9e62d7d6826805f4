package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/a11yfy/internal/backend"
	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/markup"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/metric"
	"github.com/atomicstack/a11yfy/internal/names"
	"github.com/atomicstack/a11yfy/internal/table"
	"github.com/atomicstack/a11yfy/internal/ui"
	"github.com/atomicstack/a11yfy/internal/validation"
)

// ErrNoMenu is returned when the interactive program has no menu to drive.
var ErrNoMenu = errors.New("no menu to drive")

// IsPrecondition reports whether err means the document or options can
// never work, as opposed to a runtime failure.
func IsPrecondition(err error) bool {
	for _, target := range []error{
		ErrNoMenu,
		ErrTarget,
		markup.ErrNoMatch,
		menu.ErrNotList,
		table.ErrNotTable,
		table.ErrExclusive,
		table.ErrRowBasedCSS,
		table.ErrMissingSection,
		validation.ErrNotForm,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Config describes user-provided application options.
type Config struct {
	Input       string
	Annotate    bool
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	Platform    menu.Platform
	Watch       bool
	MetricsAddr string
	// Operation is the raw -op value; unknown names fall back to the menu.
	Operation  string
	Target     []int
	ErrorsFile string
	Settings   Settings
}

// Settings are the options read from the optional config file.
type Settings struct {
	Names      names.Names        `mapstructure:"names"`
	Strings    i18n.Strings       `mapstructure:"strings"`
	CSS        i18n.Strings       `mapstructure:"css"`
	Validation validation.Options `mapstructure:"validation"`
	Table      table.Options      `mapstructure:"table"`
	Selectors  Selectors          `mapstructure:"selectors"`
}

// Selectors locate the widgets inside the input document.
type Selectors struct {
	Menu  string `mapstructure:"menu"`
	Form  string `mapstructure:"form"`
	Table string `mapstructure:"table"`
}

func DefaultSettings() Settings {
	return Settings{
		Names:      names.Default(),
		Validation: validation.DefaultOptions(),
		Table:      table.DefaultOptions(),
		Selectors:  Selectors{Menu: "ul", Form: "form", Table: "table"},
	}
}

// Run opens the input document and either writes it back annotated or
// drives it in the Bubble Tea program until the user quits.
func Run(ctx context.Context, cfg Config) error {
	s, err := Open(cfg)
	if err != nil {
		return err
	}
	if cfg.Annotate || s.Operation == menu.OpValidate {
		return s.Annotate(os.Stdout, cfg.Width)
	}
	if s.Widget == nil {
		return fmt.Errorf("%w: %q matched nothing", ErrNoMenu, cfg.Settings.Selectors.Menu)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.Input, cfg.Settings.Selectors.Menu)
		if err != nil {
			return fmt.Errorf("watch %s: %w", cfg.Input, err)
		}
		defer watcher.Stop()
	}

	g, gCtx := errgroup.WithContext(ctx)
	var metrics *metric.Set
	if cfg.MetricsAddr != "" {
		metrics = metric.NewSet()
		g.Go(func() error {
			return metric.Serve(gCtx, cfg.MetricsAddr, metrics.Handler())
		})
	}

	model := ui.NewModel(ui.Config{
		Widget:     s.Widget,
		Table:      s.Table,
		Announcer:  s.Announcer,
		Watcher:    watcher,
		Metrics:    metrics,
		Strings:    s.Strings,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Status:     s.Status,
		Error:      s.Problem,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gCtx))
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
