package integrity

import "github.com/shopspring/decimal"

// LineItem is a reservation line as submitted by a caller, before persistence.
type LineItem struct {
	CompanyID  int64           `json:"company_id"`
	ProductID  *int64          `json:"product_id,omitempty"`
	AssetID    *int64          `json:"asset_id,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	RentalDays int             `json:"rental_days"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// Clone copies the item including its optional references.
func (li LineItem) Clone() LineItem {
	out := li
	if li.ProductID != nil {
		v := *li.ProductID
		out.ProductID = &v
	}
	if li.AssetID != nil {
		v := *li.AssetID
		out.AssetID = &v
	}
	return out
}

// ExpectedSubtotal is unit_price * quantity * rental_days rounded to cents.
func (li LineItem) ExpectedSubtotal() decimal.Decimal {
	return li.UnitPrice.
		Mul(decimal.NewFromInt(int64(li.Quantity))).
		Mul(decimal.NewFromInt(int64(li.RentalDays))).
		Round(2)
}

// ProductAssetResult is the outcome of a product/asset consistency check.
// ResolvedProductID is the asset's real product whenever an asset was found.
type ProductAssetResult struct {
	Valid             bool   `json:"valid"`
	Message           string `json:"message"`
	ResolvedProductID *int64 `json:"resolved_product_id,omitempty"`
}

type NormalizeResult struct {
	Valid   bool     `json:"valid"`
	Message string   `json:"message"`
	Item    LineItem `json:"normalized_item"`
}
