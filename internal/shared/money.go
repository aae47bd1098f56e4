package shared

import "github.com/shopspring/decimal"

func init() {
	// Monetary fields travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
