package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit labels products created without an explicit unit.
const DefaultUnit = "piece"

// Product is a catalog item. Inactive products are kept for historical sales.
type Product struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Price1To5   *decimal.Decimal `json:"price_1_5"`
	Price6To10  *decimal.Decimal `json:"price_6_10"`
	Price11To24 *decimal.Decimal `json:"price_11_24"`
	Unit        string           `json:"unit"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	PhotoBase64 *string          `json:"photo_base64"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
}
