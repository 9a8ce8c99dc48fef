package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a rentable SKU offered by one company.
type Product struct {
	ID         int64           `db:"id"`
	CompanyID  int64           `db:"company_id"`
	SKU        string          `db:"sku"`
	Name       string          `db:"name"`
	DailyPrice decimal.Decimal `db:"daily_price"`
	StockCount int             `db:"stock_count"`
	Active     bool            `db:"is_active"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

type ProductFilter struct {
	Active *bool
	Search string
}

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" or "desc"
}

func (p Page) normalized() Page {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// StockSummary compares the declared stock with the physical units on record.
type StockSummary struct {
	ProductID       int64 `json:"product_id" db:"product_id"`
	StockCount      int   `json:"stock_count" db:"stock_count"`
	TotalAssets     int   `json:"total_assets" db:"total_assets"`
	AvailableAssets int   `json:"available_assets" db:"available_assets"`
}
