package names

import (
	"fmt"
	"strings"
)

// Names holds the class names and element ids written into annotated markup.
// Only distinctness matters; callers may override any of them.
type Names struct {
	PoliteID    string `mapstructure:"polite_id"`
	AssertiveID string `mapstructure:"assertive_id"`
	HasSubClass string `mapstructure:"has_sub_class"`
	MenuLevel1  string `mapstructure:"menu_level1"`
	MenuLevel2  string `mapstructure:"menu_level2"`
	MenuLevel3  string `mapstructure:"menu_level3"`
	ValErrClass string `mapstructure:"val_err_class"`
	ErrSummary  string `mapstructure:"err_summary"`
	ErrMessage  string `mapstructure:"err_message"`
	SkipLink    string `mapstructure:"skip_link"`
	SummaryLink string `mapstructure:"summary_link"`
}

// Default returns the stock names.
func Default() Names {
	return Names{
		PoliteID:    "a11yfy-politeannounce",
		AssertiveID: "a11yfy-assertiveannounce",
		HasSubClass: "a11yfy-has-submenu",
		MenuLevel1:  "a11yfy-top-level-menu",
		MenuLevel2:  "a11yfy-second-level-menu",
		MenuLevel3:  "a11yfy-third-level-menu",
		ValErrClass: "a11yfy-validation-error",
		ErrSummary:  "a11yfy-error-summary",
		ErrMessage:  "a11yfy-error-message",
		SkipLink:    "a11yfy-skip-link",
		SummaryLink: "a11yfy-summary-link",
	}
}

// MenuLevel returns the class for a menu container at the given level (1..3).
func (n Names) MenuLevel(level int) string {
	switch level {
	case 1:
		return n.MenuLevel1
	case 2:
		return n.MenuLevel2
	case 3:
		return n.MenuLevel3
	default:
		return ""
	}
}

// Merge returns n with every non-empty field of override applied.
func (n Names) Merge(override Names) Names {
	out := n
	pick := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	pick(&out.PoliteID, override.PoliteID)
	pick(&out.AssertiveID, override.AssertiveID)
	pick(&out.HasSubClass, override.HasSubClass)
	pick(&out.MenuLevel1, override.MenuLevel1)
	pick(&out.MenuLevel2, override.MenuLevel2)
	pick(&out.MenuLevel3, override.MenuLevel3)
	pick(&out.ValErrClass, override.ValErrClass)
	pick(&out.ErrSummary, override.ErrSummary)
	pick(&out.ErrMessage, override.ErrMessage)
	pick(&out.SkipLink, override.SkipLink)
	pick(&out.SummaryLink, override.SummaryLink)
	return out
}

// Validate reports empty or duplicated names.
func (n Names) Validate() error {
	fields := []struct {
		key   string
		value string
	}{
		{"polite_id", n.PoliteID},
		{"assertive_id", n.AssertiveID},
		{"has_sub_class", n.HasSubClass},
		{"menu_level1", n.MenuLevel1},
		{"menu_level2", n.MenuLevel2},
		{"menu_level3", n.MenuLevel3},
		{"val_err_class", n.ValErrClass},
		{"err_summary", n.ErrSummary},
		{"err_message", n.ErrMessage},
		{"skip_link", n.SkipLink},
		{"summary_link", n.SummaryLink},
	}
	seen := make(map[string]string, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return fmt.Errorf("name %s must not be empty", f.key)
		}
		if prev, ok := seen[v]; ok {
			return fmt.Errorf("name %s duplicates %s (%q)", f.key, prev, v)
		}
		seen[v] = f.key
	}
	return nil
}
