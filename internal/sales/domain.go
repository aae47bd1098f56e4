package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a sale line. Product name and price are snapshots taken at sale time.
type Item struct {
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Total       decimal.Decimal `json:"total" validate:"gte=0"`
}

// Sale is an order taken by a salesperson. TotalAmount is stored as sent.
type Sale struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	SalespersonID string          `json:"salesperson_id"`
	SaleDate      time.Time       `json:"sale_date"`
	Items         []Item          `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Totals aggregates a set of sales.
type Totals struct {
	Count  int
	Amount decimal.Decimal
}

// Tier is the cosmetic commission level shown to salespersons.
type Tier struct {
	Emoji string `json:"emoji"`
	Level string `json:"level"`
}

var (
	tierChampion = decimal.NewFromInt(50000)
	tierOnFire   = decimal.NewFromInt(30000)
	tierStrong   = decimal.NewFromInt(10000)
)

// TierFor maps a monthly sales amount onto the commission ladder.
func TierFor(monthly decimal.Decimal) Tier {
	switch {
	case monthly.GreaterThan(tierChampion):
		return Tier{Emoji: "🏆", Level: "Champion"}
	case monthly.GreaterThan(tierOnFire):
		return Tier{Emoji: "🔥", Level: "On Fire"}
	case monthly.GreaterThan(tierStrong):
		return Tier{Emoji: "💪", Level: "Strong"}
	default:
		return Tier{Emoji: "🌱", Level: "Starter"}
	}
}

// Commission is the body of GET /sales/commission.
type Commission struct {
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	Emoji        string          `json:"emoji"`
	Level        string          `json:"level"`
	SalesCount   int             `json:"sales_count"`
}
