// Package integrity checks that reservation lines reference a consistent product/asset
// pair and fixes up the fields derived from them.
package integrity

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"eventrent-backend/internal/rental/assets"
	"eventrent-backend/internal/rental/catalog"
)

const (
	MsgValid            = "valid"
	msgNothingSpecified = "at least one of product_id or asset_id must be specified"
)

// subtotalTolerance is the largest caller/computed subtotal gap accepted as is.
var subtotalTolerance = decimal.New(1, -2)

type ProductLookup interface {
	GetProductByID(ctx context.Context, id int64) (*catalog.Product, error)
}

type AssetLookup interface {
	GetAssetByID(ctx context.Context, id int64) (*assets.Asset, error)
	ListAvailableByProduct(ctx context.Context, productID int64) ([]assets.Asset, error)
	CountAvailableByProduct(ctx context.Context, productID int64) (int, error)
}

type Validator struct {
	products ProductLookup
	assets   AssetLookup
	log      *zap.Logger
}

func NewValidator(products ProductLookup, assets AssetLookup, log *zap.Logger) *Validator {
	return &Validator{products: products, assets: assets, log: log}
}

// ValidateProductAsset checks a (product, asset) reference pair.
// Rule violations come back as Valid=false; the error is reserved for lookup failures.
func (v *Validator) ValidateProductAsset(ctx context.Context, productID, assetID *int64) (ProductAssetResult, error) {
	if productID == nil && assetID == nil {
		return invalid(msgNothingSpecified, nil), nil
	}

	if assetID == nil {
		p, err := v.products.GetProductByID(ctx, *productID)
		if err != nil {
			return ProductAssetResult{}, fmt.Errorf("lookup product %d: %w", *productID, err)
		}
		if p == nil {
			return invalid(fmt.Sprintf("product %d not found", *productID), nil), nil
		}
		if !p.Active {
			return invalid(fmt.Sprintf("product %q is inactive", p.Name), nil), nil
		}
		return valid(p.ID), nil
	}

	a, err := v.assets.GetAssetByID(ctx, *assetID)
	if err != nil {
		return ProductAssetResult{}, fmt.Errorf("lookup asset %d: %w", *assetID, err)
	}
	if a == nil {
		return invalid(fmt.Sprintf("asset %d not found", *assetID), nil), nil
	}
	owner := a.ProductID
	if !a.Active {
		return invalid(fmt.Sprintf("asset %s is inactive", a.Code), &owner), nil
	}

	if productID != nil && *productID != owner {
		declared, actual, err := v.productNames(ctx, *productID, owner)
		if err != nil {
			return ProductAssetResult{}, err
		}
		msg := fmt.Sprintf("asset %s belongs to product %q (id %d), not to product %q (id %d)",
			a.Code, actual, owner, declared, *productID)
		return invalid(msg, &owner), nil
	}

	if a.Availability != assets.Available {
		msg := fmt.Sprintf("asset %s is not available (current state: %s)", a.Code, a.Availability)
		return invalid(msg, &owner), nil
	}

	return valid(owner), nil
}

// NormalizeLineItem validates item and returns a corrected copy. The caller's value is never modified.
func (v *Validator) NormalizeLineItem(ctx context.Context, item LineItem) (NormalizeResult, error) {
	original := item.Clone()

	res, err := v.ValidateProductAsset(ctx, item.ProductID, item.AssetID)
	if err != nil {
		return NormalizeResult{Message: "validation could not be completed", Item: original}, err
	}
	if !res.Valid {
		return NormalizeResult{Message: res.Message, Item: original}, nil
	}

	out := item.Clone()
	if out.AssetID != nil && out.ProductID == nil {
		pid := *res.ResolvedProductID
		out.ProductID = &pid
	}

	if out.AssetID != nil && out.Quantity != 1 {
		return NormalizeResult{
			Message: fmt.Sprintf("quantity must be exactly 1 when a specific asset is reserved (got %d)", out.Quantity),
			Item:    original,
		}, nil
	}
	if out.Quantity < 1 {
		return NormalizeResult{Message: "quantity must be >= 1", Item: original}, nil
	}
	if out.RentalDays < 1 {
		return NormalizeResult{Message: "rental_days must be >= 1", Item: original}, nil
	}
	if out.UnitPrice.IsNegative() {
		return NormalizeResult{Message: "unit_price must be >= 0", Item: original}, nil
	}

	expected := out.ExpectedSubtotal()
	if out.Subtotal.Sub(expected).Abs().GreaterThan(subtotalTolerance) {
		v.log.Warn("line item subtotal corrected",
			zap.String("submitted", out.Subtotal.StringFixed(2)),
			zap.String("computed", expected.StringFixed(2)),
			zap.Int64p("product_id", out.ProductID),
			zap.Int64p("asset_id", out.AssetID),
		)
		out.Subtotal = expected
	}

	return NormalizeResult{Valid: true, Message: MsgValid, Item: out}, nil
}

// ListAvailableAssets returns the reservable units of a product. Lookup failures yield an empty list.
func (v *Validator) ListAvailableAssets(ctx context.Context, productID int64) []assets.Asset {
	items, err := v.assets.ListAvailableByProduct(ctx, productID)
	if err != nil {
		v.log.Error("list available assets failed", zap.Int64("product_id", productID), zap.Error(err))
		return []assets.Asset{}
	}
	return items
}

// CountAvailableAssets is computed from the same filter as ListAvailableAssets, never cached.
func (v *Validator) CountAvailableAssets(ctx context.Context, productID int64) int {
	n, err := v.assets.CountAvailableByProduct(ctx, productID)
	if err != nil {
		v.log.Error("count available assets failed", zap.Int64("product_id", productID), zap.Error(err))
		return 0
	}
	return n
}

func (v *Validator) productNames(ctx context.Context, declaredID, actualID int64) (string, string, error) {
	declared, err := v.products.GetProductByID(ctx, declaredID)
	if err != nil {
		return "", "", fmt.Errorf("lookup product %d: %w", declaredID, err)
	}
	actual, err := v.products.GetProductByID(ctx, actualID)
	if err != nil {
		return "", "", fmt.Errorf("lookup product %d: %w", actualID, err)
	}
	return nameOrUnknown(declared), nameOrUnknown(actual), nil
}

func nameOrUnknown(p *catalog.Product) string {
	if p == nil {
		return "unknown"
	}
	return p.Name
}

func valid(productID int64) ProductAssetResult {
	return ProductAssetResult{Valid: true, Message: MsgValid, ResolvedProductID: &productID}
}

func invalid(msg string, resolved *int64) ProductAssetResult {
	return ProductAssetResult{Valid: false, Message: msg, ResolvedProductID: resolved}
}
