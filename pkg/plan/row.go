// Package plan models rows of a MySQL EXPLAIN-style query execution plan.
//
// A Row is one step of the plan, keyed by the EXPLAIN output column name
// (table, type, key, possible_keys, rows, Extra, ...). Values are kept as
// whatever scalar the producer handed over; the accessors normalize them so
// analysis code does not care whether a driver returned []byte, string or an
// integer type.
package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is a single query plan step keyed by plan column name.
// Rows are treated as read-only once obtained.
type Row map[string]any

// stringValue normalizes a raw plan value to a string. Nil and missing
// values become the empty string.
func (r Row) stringValue(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Table returns the table name for this plan step. The second return value
// is false when the row carries no table, which analysis treats as a
// malformed row to skip.
func (r Row) Table() (string, bool) {
	table := r.stringValue("table")
	return table, table != ""
}

// AccessType returns the lowercased join/access type (all, index, range, ...).
func (r Row) AccessType() string {
	return strings.ToLower(r.stringValue("type"))
}

// Key returns the index chosen by the optimizer, empty when none was used.
func (r Row) Key() string {
	return r.stringValue("key")
}

// PossibleKeys returns the candidate indexes the optimizer considered.
func (r Row) PossibleKeys() string {
	return r.stringValue("possible_keys")
}

// Extra returns the free-text plan annotations (Using where, Using filesort, ...).
func (r Row) Extra() string {
	return r.stringValue("Extra")
}

// EstimatedRows returns the optimizer row estimate for this step, 0 when the
// value is absent or not numeric.
func (r Row) EstimatedRows() int64 {
	v, ok := r["rows"]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case []byte:
		parsed, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
