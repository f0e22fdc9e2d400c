package postgrest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Filter is a row-level filter expression of the form column=operator.value.
type Filter struct {
	Column   string
	Operator string
	Value    string
}

// String renders the filter as it appears in a query string, before escaping.
func (f Filter) String() string {
	return fmt.Sprintf("%s=%s.%s", f.Column, f.Operator, f.Value)
}

// Query collects the select list, filters and limit of a resource request.
// The zero value selects every column of every row.
type Query struct {
	columns []string
	filters []Filter
	limit   int
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Select restricts the returned columns.
func (q *Query) Select(columns ...string) *Query {
	q.columns = append(q.columns, columns...)
	return q
}

// Eq adds column=eq.value.
func (q *Query) Eq(column, value string) *Query {
	return q.Where(column, "eq", value)
}

// NotIs adds column=not.is.value.
func (q *Query) NotIs(column, value string) *Query {
	return q.Where(column, "not.is", value)
}

// Where adds an arbitrary operator filter.
func (q *Query) Where(column, operator, value string) *Query {
	q.filters = append(q.filters, Filter{Column: column, Operator: operator, Value: value})
	return q
}

// Limit caps the number of returned rows. Zero means no limit.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Filters returns the filters added so far.
func (q *Query) Filters() []Filter {
	if q == nil {
		return nil
	}
	return q.filters
}

// Encode renders the query string. Filter order is preserved.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}

	var parts []string
	for _, f := range q.filters {
		parts = append(parts, url.QueryEscape(f.Column)+"="+escapeValue(f.Operator+"."+f.Value))
	}
	if len(q.columns) > 0 {
		parts = append(parts, "select="+escapeValue(strings.Join(q.columns, ",")))
	}
	if q.limit > 0 {
		parts = append(parts, "limit="+strconv.Itoa(q.limit))
	}
	return strings.Join(parts, "&")
}

// escapeValue escapes a filter value but keeps the characters PostgREST uses as
// separators readable.
func escapeValue(v string) string {
	escaped := url.QueryEscape(v)
	r := strings.NewReplacer("%2C", ",", "%2A", "*", "%40", "@")
	return r.Replace(escaped)
}
