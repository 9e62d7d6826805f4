// Package validation renders accessible error reporting for HTML forms.
// Deciding which fields are invalid is left to an Engine.
package validation

import (
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/a11yfy/internal/announce"
	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/names"
)

// ErrNotForm is returned when the selection holds no <form>.
var ErrNotForm = errors.New("validation target must be a form")

// Options toggles the optional parts of the error report.
type Options struct {
	SkipLink         bool           `mapstructure:"skip_link"`
	Summary          bool           `mapstructure:"summary"`
	ValidatorOptions map[string]any `mapstructure:"validator_options"`
}

func DefaultOptions() Options {
	return Options{SkipLink: true, Summary: true, ValidatorOptions: map[string]any{}}
}

// Invalid names one failing field by element id.
type Invalid struct {
	ID      string `yaml:"id"`
	Message string `yaml:"message"`
}

// Engine decides which fields of a form are invalid. Options are passed
// through untouched.
type Engine interface {
	Validate(form *goquery.Selection, options map[string]any) ([]Invalid, error)
}

// Form decorates one <form> with error reporting markup.
type Form struct {
	sel       *goquery.Selection
	opts      Options
	names     names.Names
	strings   i18n.Strings
	announcer *announce.Announcer
}

func New(sel *goquery.Selection, opts Options, n names.Names, s i18n.Strings, a *announce.Announcer) (*Form, error) {
	form := sel.First()
	if form.Length() == 0 || goquery.NodeName(form) != "form" {
		return nil, ErrNotForm
	}
	if s == nil {
		s = i18n.Defaults()
	}
	if a == nil {
		a = announce.Default()
	}
	return &Form{sel: form, opts: opts, names: n, strings: s, announcer: a}, nil
}

// Prepare inserts the error summary container and marks required fields.
// It is idempotent.
func (f *Form) Prepare() {
	if f.sel.Find("." + f.names.ErrSummary).Length() == 0 {
		div := fmt.Sprintf(`<div class="%s" role="alert" aria-live="assertive"></div>`, html.EscapeString(f.names.ErrSummary))
		f.sel.PrependHtml(div)
	}
	f.sel.Find("[required]").SetAttr("aria-required", "true")
}

// Report replaces any earlier error markup with markup for invalid.
func (f *Form) Report(invalid []Invalid) {
	n := f.names
	f.sel.Find("a." + n.SkipLink).Remove()
	f.sel.Find("." + n.ValErrClass).RemoveClass(n.ValErrClass)
	f.sel.Find("." + n.ErrMessage).Remove()
	summary := f.sel.Find("." + n.ErrSummary)
	summary.Empty()
	if len(invalid) == 0 {
		return
	}

	var entries strings.Builder
	for i, field := range invalid {
		input := f.sel.Find(fmt.Sprintf("[id=%q]", field.ID))
		label := f.sel.Find(fmt.Sprintf("label[for=%q]", field.ID))
		label.AddClass(n.ValErrClass)
		input.AddClass(n.ValErrClass)

		fmt.Fprintf(&entries, `<li><a class="%s %s" href="#%s">%s</a> : %s</li>`,
			html.EscapeString(n.SkipLink), html.EscapeString(n.SummaryLink),
			html.EscapeString(field.ID), html.EscapeString(label.Text()), html.EscapeString(field.Message))

		if i < len(invalid)-1 && f.opts.SkipLink && input.Length() > 0 {
			next := fmt.Sprintf(`<a class="%s" href="#%s">%s</a>`,
				html.EscapeString(n.SkipLink), html.EscapeString(invalid[i+1].ID),
				html.EscapeString(f.strings.Lookup(i18n.SkipToNextError, nil)))
			if parent := input.Parent(); goquery.NodeName(parent) == "p" {
				parent.AfterHtml(next)
			} else {
				input.AfterHtml(next)
			}
		}

		label.AppendHtml(fmt.Sprintf(`<span class="%s">%s</span>`,
			html.EscapeString(n.ErrMessage), html.EscapeString(" - "+field.Message)))
	}
	if f.opts.Summary {
		summary.AppendHtml("<ul>" + entries.String() + "</ul>")
	}
	f.announcer.Assertive(f.strings.Lookup(i18n.ErrorCount, i18n.Values{"count": strconv.Itoa(len(invalid))}))
}

// Run asks engine for the invalid fields and reports them.
func (f *Form) Run(engine Engine) ([]Invalid, error) {
	invalid, err := engine.Validate(f.sel, f.opts.ValidatorOptions)
	if err != nil {
		return nil, fmt.Errorf("validate form: %w", err)
	}
	f.Report(invalid)
	return invalid, nil
}

// Static is an Engine that always reports the same fields.
type Static []Invalid

func (s Static) Validate(*goquery.Selection, map[string]any) ([]Invalid, error) {
	return s, nil
}

// LoadInvalid decodes a YAML list of invalid fields.
func LoadInvalid(r io.Reader) ([]Invalid, error) {
	var out []Invalid
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode invalid fields: %w", err)
	}
	for i, field := range out {
		if strings.TrimSpace(field.ID) == "" {
			return nil, fmt.Errorf("invalid field %d has no id", i)
		}
	}
	return out, nil
}

func LoadInvalidFile(path string) ([]Invalid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadInvalid(f)
}
