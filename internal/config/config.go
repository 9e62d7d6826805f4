package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/atomicstack/a11yfy/internal/app"
	"github.com/atomicstack/a11yfy/internal/i18n"
	"github.com/atomicstack/a11yfy/internal/menu"
	"github.com/atomicstack/a11yfy/internal/names"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envInput       = "A11YFY_INPUT"
	envAnnotate    = "A11YFY_ANNOTATE"
	envWidth       = "A11YFY_WIDTH"
	envHeight      = "A11YFY_HEIGHT"
	envShowFooter  = "A11YFY_FOOTER"
	envVerbose     = "A11YFY_VERBOSE"
	envTrace       = "A11YFY_TRACE"
	envLogFile     = "A11YFY_LOG_FILE"
	envPlatform    = "A11YFY_PLATFORM"
	envWatch       = "A11YFY_WATCH"
	envMetricsAddr = "A11YFY_METRICS_ADDR"
	envConfigFile  = "A11YFY_CONFIG"
	envOperation   = "A11YFY_OP"
	envTarget      = "A11YFY_TARGET"
	envErrorsFile  = "A11YFY_ERRORS"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("a11yfy", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	input := fs.String("input", envOrDefault(env, envInput, ""), "HTML document holding the menu (may also be given as the first argument)")
	annotate := fs.Bool("annotate", envOrBool(env, envAnnotate, false), "write the annotated document to stdout instead of starting the UI")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print a status message for every reload")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	platform := fs.String("platform", envOrDefault(env, envPlatform, menu.PlatformDefault.String()), "focus platform: default or touch")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload item visibility when the input file changes")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "serve Prometheus metrics on this address")
	configFile := fs.String("config", envOrDefault(env, envConfigFile, ""), "optional config file (names, strings, validation and table options)")
	op := fs.String("op", envOrDefault(env, envOperation, menu.OpMenu.String()), "operation: menu, focus, showAndFocus, validate or tables")
	target := fs.String("target", envOrDefault(env, envTarget, ""), "dotted item path for focus operations, e.g. 0.1")
	errorsFile := fs.String("errors", envOrDefault(env, envErrorsFile, ""), "YAML list of invalid fields for -op validate")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *input == "" && fs.NArg() > 0 {
		*input = fs.Arg(0)
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	plat, err := menu.ParsePlatform(*platform)
	if err != nil {
		return Config{}, err
	}
	path, err := ParsePath(*target)
	if err != nil {
		return Config{}, err
	}
	settings, err := LoadSettings(*configFile)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Input:       *input,
			Annotate:    *annotate,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			Verbose:     *verbose,
			Platform:    plat,
			Watch:       *watch,
			MetricsAddr: *metricsAddr,
			Operation:   *op,
			Target:      path,
			ErrorsFile:  *errorsFile,
			Settings:    settings,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"input":       *input,
			"annotate":    strconv.FormatBool(*annotate),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
			"platform":    plat.String(),
			"watch":       strconv.FormatBool(*watch),
			"metricsAddr": *metricsAddr,
			"config":      *configFile,
			"op":          *op,
			"target":      *target,
			"errors":      *errorsFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// ParsePath reads a dotted item path such as "1.0". Empty input is an
// empty path.
func ParsePath(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ".")
	out := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid target %q: %q is not an item index", value, part)
		}
		out[i] = n
	}
	return out, nil
}

// LoadSettings reads the optional config file with viper. An empty path
// yields the defaults.
func LoadSettings(path string) (app.Settings, error) {
	settings := app.DefaultSettings()
	if strings.TrimSpace(path) == "" {
		return settings, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("selectors.menu", settings.Selectors.Menu)
	v.SetDefault("selectors.form", settings.Selectors.Form)
	v.SetDefault("selectors.table", settings.Selectors.Table)
	v.SetDefault("validation.skip_link", settings.Validation.SkipLink)
	v.SetDefault("validation.summary", settings.Validation.Summary)
	v.SetDefault("table.sort_filter", string(settings.Table.SortFilter))
	if err := v.ReadInConfig(); err != nil {
		return app.Settings{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&settings); err != nil {
		return app.Settings{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	// viper folds keys to lower case; string tables are camelCase.
	settings.Strings = canonicalKeys(settings.Strings, i18n.Defaults())
	settings.CSS = canonicalKeys(settings.CSS, i18n.DefaultCSS())
	return settings, nil
}

func canonicalKeys(overrides, defaults i18n.Strings) i18n.Strings {
	if len(overrides) == 0 {
		return overrides
	}
	out := make(i18n.Strings, len(overrides))
	for k, v := range overrides {
		key := k
		for dk := range defaults {
			if strings.EqualFold(dk, k) {
				key = dk
				break
			}
		}
		out[key] = v
	}
	return out
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects configurations that can never start. Unknown operations
// are not rejected here; the app reports them and falls back to the menu.
func Validate(cfg Config) error {
	a := cfg.App
	if strings.TrimSpace(a.Input) == "" {
		return errors.New("an input document is required (-input or first argument)")
	}
	if err := names.Default().Merge(a.Settings.Names).Validate(); err != nil {
		return err
	}
	if err := a.Settings.Table.Validate(); err != nil {
		return err
	}
	if a.Annotate && a.Watch {
		return errors.New("-watch needs the interactive program and cannot be combined with -annotate")
	}
	return nil
}
