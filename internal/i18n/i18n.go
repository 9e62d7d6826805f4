// Package i18n resolves user-facing strings from configurable tables.
package i18n

import (
	"sort"
	"strings"
)

// Strings maps a message key to its template. Templates reference values
// with ${name} placeholders.
type Strings map[string]string

// Values supplies placeholder substitutions for Lookup.
type Values map[string]string

// Lookup resolves key against table and substitutes values. Each placeholder
// is replaced once, literally. A missing key yields "".
func Lookup(key string, values Values, table Strings) string {
	msg := table[key]
	if msg == "" || len(values) == 0 {
		return msg
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		msg = strings.Replace(msg, "${"+name+"}", values[name], 1)
	}
	return msg
}

// Merge returns a new table holding base overlaid with override.
func (s Strings) Merge(override Strings) Strings {
	out := make(Strings, len(s)+len(override))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Lookup is shorthand for Lookup(key, values, s).
func (s Strings) Lookup(key string, values Values) string {
	return Lookup(key, values, s)
}

// Keys used by the validation and table helpers.
const (
	SkipToNextError          = "skipToNextError"
	ErrorCount               = "errorCount"
	MenuActivated            = "menuActivated"
	MenuActivatedLink        = "menuActivatedLink"
	SortableSortedAscending  = "sortableSortedAscending"
	SortableNotSorted        = "sortableNotSorted"
	SortableSortedDescending = "sortableSortedDescending"
	Filterable               = "filterable"
	All                      = "all"
	TableSortedAscending     = "tableSortedAscending"
	TableSortedDescending    = "tableSortedDescending"
	TableFilteredOnAndBy     = "tableFilteredOnAndBy"
	CSSString                = "cssString"
)

// Defaults returns the built-in English strings.
func Defaults() Strings {
	return Strings{
		SkipToNextError:          "skip to next field with an error",
		ErrorCount:               "${count} fields contain errors",
		MenuActivated:            "Activated ${label}",
		MenuActivatedLink:        "Activated ${label} (${href})",
		SortableSortedAscending:  " Sortable, Sorted Ascending",
		SortableNotSorted:        " Sortable, Not Sorted",
		SortableSortedDescending: " Sortable, Sorted Descending",
		Filterable:               ", Filterable",
		All:                      "All",
		TableSortedAscending:     "Table sorted by ${column}, Ascending",
		TableSortedDescending:    "Table sorted by ${column}, Descending",
		TableFilteredOnAndBy:     "Table filtered on ${column}, by ${value}",
	}
}

// DefaultCSS returns the stylesheet table used by responsive tables.
func DefaultCSS() Strings {
	return Strings{CSSString: responsiveCSS}
}

const responsiveCSS = `@media
(max-width: ${breakPoint}px) {
/* Force table to not be like tables anymore but still be navigable as a table */
table, thead, tbody, tr {
width: 100%;
}
td, th {
display: block;
}
/* Hide table headers with display: none because accessibility APIs do not pick up reliably on these headers anyway */
thead tr {
display:none;
}
tr { border: 1px solid #ccc; }
td, th {
/* Behave  like a "row" */
border: none;
border-bottom: 1px solid #eee;
position: relative;
}
td:before, th:before {
/* Now like a table header */
position: absolute;
/* Top/left values mimic padding */
top: 6px;
left: 6px;
width: 45%;
padding-right: 10px;
white-space: nowrap;
}
}
`
