package db

import (
	"fmt"
	"strings"
)

// Where accumulates AND-ed predicates with positional arguments.
type Where struct {
	clauses []string
	args    []any
}

// NextArg registers a value and returns its placeholder.
func (w *Where) NextArg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// Eq adds column = value.
func (w *Where) Eq(column string, v any) *Where {
	w.clauses = append(w.clauses, column+" = "+w.NextArg(v))
	return w
}

// In adds column = ANY(values). An empty set matches nothing.
func (w *Where) In(column string, values []string) *Where {
	if len(values) == 0 {
		return w.Never()
	}
	w.clauses = append(w.clauses, column+" = ANY("+w.NextArg(values)+")")
	return w
}

// Gte adds column >= value.
func (w *Where) Gte(column string, v any) *Where {
	w.clauses = append(w.clauses, column+" >= "+w.NextArg(v))
	return w
}

// Lte adds column <= value.
func (w *Where) Lte(column string, v any) *Where {
	w.clauses = append(w.clauses, column+" <= "+w.NextArg(v))
	return w
}

// Raw adds a literal predicate with no arguments.
func (w *Where) Raw(clause string) *Where {
	w.clauses = append(w.clauses, clause)
	return w
}

// Never forces the predicate to match no rows.
func (w *Where) Never() *Where {
	return w.Raw("FALSE")
}

// SQL renders " WHERE ..." or an empty string when no predicate was added.
func (w *Where) SQL() string {
	if w == nil || len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Args returns the positional arguments in placeholder order.
func (w *Where) Args() []any {
	if w == nil {
		return nil
	}
	return w.args
}
