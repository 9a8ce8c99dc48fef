package assets

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateAssetRequest struct {
	ProductID        int64            `json:"product_id" binding:"required"`
	WarehouseID      *int64           `json:"warehouse_id,omitempty"`
	Code             string           `json:"code" binding:"required"`
	Condition        string           `json:"condition"`
	AcquiredOn       *string          `json:"acquired_on,omitempty"` // YYYY-MM-DD
	AcquisitionCost  *decimal.Decimal `json:"acquisition_cost,omitempty"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

type ChangeAvailabilityRequest struct {
	Availability Availability `json:"availability" binding:"required"`
	Note         *string      `json:"note,omitempty"`
}

type ExportLabelsRequest struct {
	ProductID *int64 `json:"product_id,omitempty"`
	Encoding  string `json:"encoding"` // "utf8" (default) or "sjis"
}

type AssetResponse struct {
	ID               int64            `json:"id"`
	CompanyID        int64            `json:"company_id"`
	ProductID        int64            `json:"product_id"`
	WarehouseID      *int64           `json:"warehouse_id,omitempty"`
	Code             string           `json:"code"`
	Condition        string           `json:"condition"`
	Availability     Availability     `json:"availability"`
	Active           bool             `json:"is_active"`
	AcquiredOn       *time.Time       `json:"acquired_on,omitempty"`
	AcquisitionCost  *decimal.Decimal `json:"acquisition_cost,omitempty"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate,omitempty"`
	BookValue        *decimal.Decimal `json:"book_value,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToResponse renders an asset with its book value at now.
func ToResponse(a *Asset, now time.Time) AssetResponse {
	r := AssetResponse{
		ID:           a.ID,
		CompanyID:    a.CompanyID,
		ProductID:    a.ProductID,
		Code:         a.Code,
		Condition:    a.Condition,
		Availability: a.Availability,
		Active:       a.Active,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.WarehouseID.Valid {
		v := a.WarehouseID.Int64
		r.WarehouseID = &v
	}
	if a.AcquiredOn.Valid {
		v := a.AcquiredOn.Time
		r.AcquiredOn = &v
	}
	if a.AcquisitionCost.Valid {
		v := a.AcquisitionCost.Decimal
		r.AcquisitionCost = &v
	}
	if a.DepreciationRate.Valid {
		v := a.DepreciationRate.Decimal
		r.DepreciationRate = &v
	}
	if bv, ok := a.BookValue(now); ok {
		r.BookValue = &bv
	}
	if a.Notes.Valid {
		v := a.Notes.String
		r.Notes = &v
	}
	return r
}
