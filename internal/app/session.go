package app

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/atomicstack/a11yfy/internal/announce"
	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/logging"
	"github.com/atomicstack/a11yfy/internal/markup"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/names"
	"github.com/atomicstack/a11yfy/internal/table"
	"github.com/atomicstack/a11yfy/internal/validation"
)

// ErrTarget is returned when a focus operation has no item to act on.
var ErrTarget = errors.New("focus target")

// Session is one parsed input document with its widgets initialized.
type Session struct {
	Doc       *markup.Document
	Announcer *announce.Announcer
	Operation menu.Operation
	Widget    *menu.Widget
	Table     *table.Table
	Form      *validation.Form
	Invalid   []validation.Invalid
	Strings   i18n.Strings

	// Status summarises what was loaded; Problem carries a soft failure
	// that did not stop the session.
	Status  string
	Problem string
}

// Open parses cfg.Input and initializes whichever widgets the operation
// needs. The menu is optional for validate and tables.
func Open(cfg Config) (*Session, error) {
	doc, err := markup.ParseFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Input, err)
	}
	settings := cfg.Settings
	n := names.Default().Merge(settings.Names)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	s := &Session{Doc: doc, Announcer: announce.New(n)}
	announce.SetDefault(s.Announcer)

	op, err := menu.ParseOperation(orDefault(cfg.Operation, menu.OpMenu.String()))
	if err != nil {
		logging.Error(err)
		s.Problem = err.Error()
	}
	s.Operation = op

	strs := i18n.Defaults().Merge(settings.Strings)
	s.Strings = strs
	css := i18n.DefaultCSS().Merge(settings.CSS)

	if err := s.openMenu(doc, cfg, n); err != nil {
		return nil, err
	}
	if err := s.openTable(doc, settings, strs, css); err != nil {
		return nil, err
	}
	if err := s.openForm(doc, cfg, n, strs); err != nil {
		return nil, err
	}
	s.Status = s.summary(cfg.Input)
	return s, nil
}

func (s *Session) openMenu(doc *markup.Document, cfg Config, n names.Names) error {
	root, err := doc.Element(cfg.Settings.Selectors.Menu)
	if err != nil {
		if s.Operation == menu.OpValidate || s.Operation == menu.OpTables {
			return nil
		}
		return fmt.Errorf("menu: %w", err)
	}
	widget, err := menu.Init(root, menu.WithNames(n), menu.WithPlatform(cfg.Platform))
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	s.Widget = widget

	switch s.Operation {
	case menu.OpFocus, menu.OpShowAndFocus:
		id := widget.Tree().Lookup(cfg.Target)
		if len(cfg.Target) == 0 || id == menu.NoNode {
			return fmt.Errorf("%w: no item at path %s", ErrTarget, FormatPath(cfg.Target))
		}
		if s.Operation == menu.OpShowAndFocus {
			widget.ShowAndFocus(id)
		} else {
			widget.Focus(id)
		}
	}
	return nil
}

func (s *Session) openTable(doc *markup.Document, settings Settings, strs, css i18n.Strings) error {
	sel := doc.Find(settings.Selectors.Table)
	if sel.Length() == 0 {
		if s.Operation == menu.OpTables {
			return fmt.Errorf("tables: %w: %q", markup.ErrNoMatch, settings.Selectors.Table)
		}
		return nil
	}
	tbl, err := table.New(sel, settings.Table, table.WithStrings(strs), table.WithCSS(css), table.WithAnnouncer(s.Announcer))
	if err != nil {
		return fmt.Errorf("tables: %w", err)
	}
	s.Table = tbl
	return nil
}

func (s *Session) openForm(doc *markup.Document, cfg Config, n names.Names, strs i18n.Strings) error {
	if s.Operation != menu.OpValidate {
		return nil
	}
	form, err := validation.New(doc.Find(cfg.Settings.Selectors.Form), cfg.Settings.Validation, n, strs, s.Announcer)
	if err != nil {
		return err
	}
	form.Prepare()
	var invalid validation.Static
	if cfg.ErrorsFile != "" {
		if invalid, err = validation.LoadInvalidFile(cfg.ErrorsFile); err != nil {
			return fmt.Errorf("load errors: %w", err)
		}
	}
	if s.Invalid, err = form.Run(invalid); err != nil {
		return err
	}
	s.Form = form
	return nil
}

func (s *Session) summary(input string) string {
	parts := []string{filepath.Base(input)}
	if s.Widget != nil {
		parts = append(parts, fmt.Sprintf("%d menu items", s.Widget.Tree().Len()))
	}
	if s.Table != nil {
		parts = append(parts, fmt.Sprintf("%d table rows", len(s.Table.Rows())))
	}
	if s.Form != nil {
		parts = append(parts, fmt.Sprintf("%d invalid fields", len(s.Invalid)))
	}
	return strings.Join(parts, ", ")
}

// Annotate writes the document with its annotations, the menu's current
// state and the live regions. The
// tables operation also writes the table state and any responsive
// stylesheet; a width of 0 draws the desktop layout.
func (s *Session) Annotate(w io.Writer, width int) error {
	if width <= 0 {
		width = math.MaxInt32
	}
	if s.Widget != nil {
		s.Widget.Sync()
	}
	if s.Table != nil && s.Operation == menu.OpTables {
		s.Table.Apply(width)
		s.Doc.AppendStyle(s.Table.Stylesheet())
	}
	s.Doc.AppendToBody(s.Announcer.Nodes()...)
	return s.Doc.Render(w)
}

// FormatPath renders an item path the way -target accepts it.
func FormatPath(path []int) string {
	if len(path) == 0 {
		return `""`
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
