package sproc

import (
	"strconv"
	"strings"
	"time"
)

// Row is one named-column row of a procedure result. Values carry whatever
// the driver produced; the typed getters below absorb the differences.
type Row map[string]any

// Table is an ordered sequence of rows together with the column order the
// procedure returned them in.
type Table struct {
	Columns []string
	Rows    []Row
}

// Result holds the result tables of one procedure call. Procedures are free
// to return zero, one, or several tables; the decoders only ever commit to
// the first one.
type Result struct {
	Tables []Table
}

// First returns the first table, or nil when the result is empty.
func (r *Result) First() *Table {
	if r == nil || len(r.Tables) == 0 {
		return nil
	}
	return &r.Tables[0]
}

func (r *Result) firstRow() (Row, []string) {
	t := r.First()
	if t == nil || len(t.Rows) == 0 {
		return nil, nil
	}
	return t.Rows[0], t.Columns
}

// ScalarInt extracts an integer from the first row: first column, then the
// named fallback column, then any column that parses. Missing or malformed
// data degrades to 0 rather than erroring; the caller decides whether 0 is
// a failure. Procedures report affected-row counts this way.
func (r *Result) ScalarInt(fallbackCol string) int {
	row, cols := r.firstRow()
	if row == nil {
		return 0
	}
	if len(cols) > 0 {
		if v, ok := asInt(row[cols[0]]); ok {
			return v
		}
	}
	if v, ok := asInt(row[fallbackCol]); ok {
		return v
	}
	for _, c := range cols {
		if v, ok := asInt(row[c]); ok {
			return v
		}
	}
	return 0
}

// Identity extracts a generated key by trying each candidate column name in
// order, falling back to ScalarInt when none matches. Returns 0 when the
// result carries no rows.
func (r *Result) Identity(candidates ...string) int {
	row, _ := r.firstRow()
	if row == nil {
		return 0
	}
	for _, name := range candidates {
		if raw, ok := row[name]; ok {
			if v, parsed := asInt(raw); parsed {
				return v
			}
		}
	}
	return r.ScalarInt("Afectados")
}

// Column access helpers. Missing columns and NULLs yield the zero value or
// nil; procedure versions drift and callers must not break on absent columns.

func (row Row) Int(col string, def int) int {
	if v, ok := asInt(row[col]); ok {
		return v
	}
	return def
}

func (row Row) OptionalInt(col string) *int {
	if v, ok := asInt(row[col]); ok {
		return &v
	}
	return nil
}

func (row Row) Float(col string, def float64) float64 {
	if v, ok := asFloat(row[col]); ok {
		return v
	}
	return def
}

func (row Row) OptionalFloat(col string) *float64 {
	if v, ok := asFloat(row[col]); ok {
		return &v
	}
	return nil
}

func (row Row) String(col string) string {
	switch v := row[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

func (row Row) Bool(col string) bool {
	if v, ok := row[col].(bool); ok {
		return v
	}
	if n, ok := asInt(row[col]); ok {
		return n != 0
	}
	return false
}

func (row Row) Time(col string) time.Time {
	if t, ok := asTime(row[col]); ok {
		return t
	}
	return time.Time{}
}

func (row Row) OptionalTime(col string) *time.Time {
	if t, ok := asTime(row[col]); ok {
		return &t
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case []byte:
		return parseInt(string(n))
	case string:
		return parseInt(n)
	}
	return 0, false
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case []byte:
		return parseFloat(string(n))
	case string:
		return parseFloat(n)
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// MySQL returns DATETIME columns as time.Time with parseTime=true, or as
// text otherwise. Accept both.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case []byte:
		return parseTime(string(t))
	case string:
		return parseTime(t)
	}
	return time.Time{}, false
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
