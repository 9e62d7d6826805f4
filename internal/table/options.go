package table

import (
	"errors"
	"fmt"
)

// SortFilter selects which header interactions a table offers.
type SortFilter string

const (
	None   SortFilter = "none"
	Sort   SortFilter = "sort"
	Filter SortFilter = "filter"
	Both   SortFilter = "both"
)

func (s SortFilter) sorts() bool   { return s == Sort || s == Both }
func (s SortFilter) filters() bool { return s == Filter || s == Both }

// Responsive configures the small-screen layout.
type Responsive struct {
	// RowBased keeps the markup and relies on the stylesheet alone.
	RowBased   bool `mapstructure:"row_based"`
	BreakPoint int  `mapstructure:"break_point"`
	CSS        bool `mapstructure:"css"`
}

type Options struct {
	SortFilter SortFilter  `mapstructure:"sort_filter"`
	Responsive *Responsive `mapstructure:"responsive"`
}

func DefaultOptions() Options {
	return Options{SortFilter: Both}
}

var (
	ErrExclusive      = errors.New("responsive and sortFilter are mutually exclusive options because sortFilter implies a data table with row data and responsive implies columnar data")
	ErrRowBasedCSS    = errors.New("css must be used in conjunction with rowBased")
	ErrMissingSection = errors.New("columnar responsive table is missing a section")
)

// Mode returns the effective SortFilter; unset means Both.
func (o Options) Mode() SortFilter {
	if o.SortFilter == "" {
		return Both
	}
	return o.SortFilter
}

// Validate checks option combinations that can never work.
func (o Options) Validate() error {
	switch o.Mode() {
	case None, Sort, Filter, Both:
	default:
		return fmt.Errorf("unknown sortFilter %q", o.SortFilter)
	}
	if o.Responsive == nil {
		return nil
	}
	if o.Mode() != None {
		return ErrExclusive
	}
	if o.Responsive.RowBased && !o.Responsive.CSS {
		return ErrRowBasedCSS
	}
	if o.Responsive.BreakPoint < 0 {
		return fmt.Errorf("negative breakPoint %d", o.Responsive.BreakPoint)
	}
	return nil
}
