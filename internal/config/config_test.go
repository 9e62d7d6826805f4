package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/table"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{"page.html"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Input != "page.html" {
		t.Fatalf("expected positional input, got %q", cfg.App.Input)
	}
	if cfg.App.Operation != "menu" {
		t.Fatalf("expected menu operation, got %q", cfg.App.Operation)
	}
	if cfg.App.Platform != menu.PlatformDefault {
		t.Fatalf("expected default platform, got %v", cfg.App.Platform)
	}
	if cfg.App.Settings.Selectors.Menu != "ul" {
		t.Fatalf("expected default menu selector, got %q", cfg.App.Settings.Selectors.Menu)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"A11YFY_INPUT=env.html",
		"A11YFY_WIDTH=40",
		"A11YFY_PLATFORM=touch",
		"A11YFY_TRACE=true",
	}
	cfg, err := LoadArgs([]string{"-input", "flag.html", "-target", "1.0", "-op", "focus"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Input != "flag.html" {
		t.Fatalf("expected flag to win, got %q", cfg.App.Input)
	}
	if cfg.App.Width != 40 {
		t.Fatalf("expected width from env, got %d", cfg.App.Width)
	}
	if cfg.App.Platform != menu.PlatformTouch {
		t.Fatalf("expected touch platform, got %v", cfg.App.Platform)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from env")
	}
	if len(cfg.App.Target) != 2 || cfg.App.Target[0] != 1 || cfg.App.Target[1] != 0 {
		t.Fatalf("expected target [1 0], got %v", cfg.App.Target)
	}
	if cfg.Flags["platform"] != "touch" || cfg.Flags["op"] != "focus" {
		t.Fatalf("expected flags map to record values, got %v", cfg.Flags)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"-width", "-1", "a.html"},
		{"-height", "-3", "a.html"},
		{"-platform", "amiga", "a.html"},
		{"-target", "1.x", "a.html"},
		{"-nope"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestLoadArgsKeepsUnknownOperationForTheApp(t *testing.T) {
	cfg, err := LoadArgs([]string{"-op", "destroy", "a.html"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected unknown operation to pass validation, got %v", err)
	}
}

func TestValidateRequiresInput(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing input to fail validation")
	}
}

func TestValidateRejectsAnnotateWithWatch(t *testing.T) {
	cfg, err := LoadArgs([]string{"-annotate", "-watch", "a.html"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected -annotate with -watch to fail")
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a11yfy.yaml")
	body := `names:
  has_sub_class: nav-has-sub
strings:
  tableSortedAscending: "Sorted by ${column}"
selectors:
  menu: "#nav"
validation:
  summary: false
table:
  sort_filter: none
  responsive:
    break_point: 600
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Names.HasSubClass != "nav-has-sub" {
		t.Fatalf("expected names override, got %q", settings.Names.HasSubClass)
	}
	if settings.Names.PoliteID == "" {
		t.Fatalf("expected untouched names to keep defaults")
	}
	if got := settings.Strings[i18n.TableSortedAscending]; got != "Sorted by ${column}" {
		t.Fatalf("expected camelCase string key restored, got %v", settings.Strings)
	}
	if settings.Selectors.Menu != "#nav" || settings.Selectors.Table != "table" {
		t.Fatalf("expected selectors merged with defaults, got %+v", settings.Selectors)
	}
	if settings.Validation.Summary || !settings.Validation.SkipLink {
		t.Fatalf("expected summary off and skip link on, got %+v", settings.Validation)
	}
	if settings.Table.Mode() != table.None || settings.Table.Responsive == nil || settings.Table.Responsive.BreakPoint != 600 {
		t.Fatalf("expected responsive table options, got %+v", settings.Table)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
