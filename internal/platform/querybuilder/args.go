// Package querybuilder assembles postgres statements with numbered
// placeholders. Identifiers are trusted; values always travel as args.
package querybuilder

import (
	"strconv"
	"strings"
)

// args collects bound values and hands out $n placeholders in order.
type args struct {
	values []any
}

func (a *args) bind(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// expand replaces each ? in expr with the next placeholder. Surplus ?
// characters are left alone.
func (a *args) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}
	var out strings.Builder
	out.Grow(len(expr) + 2*len(values))
	next := 0
	for _, r := range expr {
		if r == '?' && next < len(values) {
			out.WriteString(a.bind(values[next]))
			next++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// Condition renders one predicate of a WHERE clause.
type Condition func(buf *strings.Builder, a *args)

func Eq(column string, value any) Condition {
	return func(buf *strings.Builder, a *args) {
		buf.WriteString(column + " = " + a.bind(value))
	}
}

// In renders an always-false predicate for an empty value list.
func In(column string, values []any) Condition {
	return func(buf *strings.Builder, a *args) {
		if len(values) == 0 {
			buf.WriteString("1=0")
			return
		}
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = a.bind(v)
		}
		buf.WriteString(column + " IN (" + strings.Join(placeholders, ", ") + ")")
	}
}

func IsNull(column string) Condition {
	return func(buf *strings.Builder, _ *args) {
		buf.WriteString(column + " IS NULL")
	}
}

// Expr embeds a raw predicate, binding values to its ? markers.
func Expr(expr string, values ...any) Condition {
	return func(buf *strings.Builder, a *args) {
		buf.WriteString(a.expand(expr, values))
	}
}

func writeWhere(buf *strings.Builder, a *args, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		c(buf, a)
	}
}

func writeList(buf *strings.Builder, keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	buf.WriteString(" " + keyword + " " + strings.Join(parts, ", "))
}

func writeSuffix(buf *strings.Builder, a *args, suffix string) {
	if suffix == "" {
		return
	}
	buf.WriteString(" " + a.expand(suffix, nil))
}
