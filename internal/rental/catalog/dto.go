package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	CompanyID  int64           `json:"company_id"`
	SKU        string          `json:"sku" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	DailyPrice decimal.Decimal `json:"daily_price"`
	StockCount int             `json:"stock_count"`
}

type UpdateProductRequest struct {
	SKU        *string          `json:"sku,omitempty"`
	Name       *string          `json:"name,omitempty"`
	DailyPrice *decimal.Decimal `json:"daily_price,omitempty"`
	StockCount *int             `json:"stock_count,omitempty"`
	Active     *bool            `json:"is_active,omitempty"`
}

type ProductResponse struct {
	ID         int64           `json:"id"`
	CompanyID  int64           `json:"company_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	DailyPrice decimal.Decimal `json:"daily_price"`
	StockCount int             `json:"stock_count"`
	Active     bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		SKU:        p.SKU,
		Name:       p.Name,
		DailyPrice: p.DailyPrice,
		StockCount: p.StockCount,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
