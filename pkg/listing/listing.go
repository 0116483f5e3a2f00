// Package listing implements the in-memory filter/sort pipeline shared by the
// admin enrollment dashboard and the public course catalog. It operates on an
// immutable snapshot of records and derives an ordered view without mutating
// its input.
package listing

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction selects the sort order.
type Direction string

// Supported sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// CategoryAll is the sentinel selector matching every category.
const CategoryAll = "all"

// DayFormat is the layout of the calendar-day selector.
const DayFormat = "2006-01-02"

// Criteria carries one render's combined filter and sort parameters.
type Criteria struct {
	Search   string
	Category string
	Date     string // calendar day, formatted 2006-01-02
	SortKey  string
	Order    Direction
}

// Kind describes how a sort key compares.
type Kind int

// Sort key kinds.
const (
	Text Kind = iota
	Numeric
	Date
)

// SortField binds a sort key to an accessor of the matching kind. Time
// accessors report ok=false for unparsable values; such records sort last for
// both directions.
type SortField[T any] struct {
	Kind   Kind
	Text   func(T) string
	Number func(T) float64
	Time   func(T) (time.Time, bool)
}

// Schema describes how a record type participates in filtering and sorting.
type Schema[T any] struct {
	// SearchFields are matched case-insensitively against the search text.
	SearchFields []func(T) string
	// Category returns the record's categorical key for exact matching.
	Category func(T) string
	// Timestamp feeds the calendar-day filter. ok=false excludes the record
	// whenever a date selector is present.
	Timestamp func(T) (time.Time, bool)
	// SortFields maps allowed sort keys to their accessors.
	SortFields map[string]SortField[T]
	// Location is the zone used to truncate timestamps to days. Defaults to
	// the process-local zone, matching the browser behaviour this replaces.
	Location *time.Location
	// Collation is the language tag used for text comparison. Defaults to
	// language.Und.
	Collation language.Tag
}

// Apply filters records by criteria (predicates combined with AND), then
// stable-sorts the result. The input slice is never modified; records with
// equal sort keys keep their relative input order. An unknown or empty sort
// key leaves the filtered records in their original order.
func Apply[T any](records []T, schema Schema[T], c Criteria) []T {
	out := filter(records, schema, c)

	field, ok := schema.SortFields[c.SortKey]
	if !ok {
		return out
	}
	less := lessFunc(field, schema.Collation, c.Order)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func filter[T any](records []T, schema Schema[T], c Criteria) []T {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	category := c.Category

	var day time.Time
	var dayValid bool
	if c.Date != "" {
		parsed, err := time.ParseInLocation(DayFormat, c.Date, schema.location())
		if err == nil {
			day = parsed
			dayValid = true
		}
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		if search != "" && !matchesSearch(record, schema.SearchFields, search) {
			continue
		}
		if category != "" && category != CategoryAll && schema.Category != nil {
			if schema.Category(record) != category {
				continue
			}
		}
		if c.Date != "" {
			// A selector that does not parse matches nothing, like string
			// equality against a malformed day would.
			if !dayValid || schema.Timestamp == nil {
				continue
			}
			ts, ok := schema.Timestamp(record)
			if !ok || !sameDay(ts, day, schema.location()) {
				continue
			}
		}
		out = append(out, record)
	}
	return out
}

func matchesSearch[T any](record T, fields []func(T) string, search string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(record)), search) {
			return true
		}
	}
	return false
}

func sameDay(ts, day time.Time, loc *time.Location) bool {
	y1, m1, d1 := ts.In(loc).Date()
	y2, m2, d2 := day.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// lessFunc builds the comparator for one sort field. Records whose key does
// not parse cluster after every parsable key regardless of direction, and
// keep their relative order among themselves.
func lessFunc[T any](field SortField[T], tag language.Tag, order Direction) func(a, b T) bool {
	desc := order == Descending

	switch field.Kind {
	case Numeric:
		return func(a, b T) bool {
			av, bv := field.Number(a), field.Number(b)
			if desc {
				return av > bv
			}
			return av < bv
		}
	case Date:
		return func(a, b T) bool {
			av, aok := field.Time(a)
			bv, bok := field.Time(b)
			if !aok || !bok {
				return aok && !bok
			}
			if desc {
				return av.After(bv)
			}
			return av.Before(bv)
		}
	default:
		if tag == (language.Tag{}) {
			tag = language.Und
		}
		collator := collate.New(tag)
		return func(a, b T) bool {
			cmp := collator.CompareString(field.Text(a), field.Text(b))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
	}
}

func (s Schema[T]) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}
