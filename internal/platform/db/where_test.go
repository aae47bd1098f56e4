package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereEmpty(t *testing.T) {
	var w Where
	assert.Equal(t, "", w.SQL())
	assert.Empty(t, w.Args())
}

func TestWhereCombinesPredicates(t *testing.T) {
	var w Where
	w.Eq("customer_id", "c1").In("salesperson_id", []string{"a", "b"}).Gte("sale_date", "2025-01-01")
	assert.Equal(t, " WHERE customer_id = $1 AND salesperson_id = ANY($2) AND sale_date >= $3", w.SQL())
	assert.Equal(t, []any{"c1", []string{"a", "b"}, "2025-01-01"}, w.Args())
}

func TestWhereEmptyInMatchesNothing(t *testing.T) {
	var w Where
	w.In("salesperson_id", nil).Eq("customer_id", "c1")
	assert.Equal(t, " WHERE FALSE AND customer_id = $1", w.SQL())
	assert.Equal(t, []any{"c1"}, w.Args())
}

func TestWhereNextArgForCustomClauses(t *testing.T) {
	var w Where
	w.Eq("active", true)
	p := w.NextArg(10)
	assert.Equal(t, "$2", p)
	assert.Len(t, w.Args(), 2)
}
