package catalog

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/platform/db"
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

func (s *Service) CreateProduct(ctx context.Context, scope auth.Scope, in CreateProductRequest) (ProductResponse, error) {
	if id, ok := scope.CompanyID(); ok {
		in.CompanyID = id
	}
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.CompanyID <= 0 {
		return ProductResponse{}, apierr.Invalid("company_id is required")
	}
	if in.SKU == "" || in.Name == "" {
		return ProductResponse{}, apierr.Invalid("sku and name are required")
	}
	if in.DailyPrice.IsNegative() {
		return ProductResponse{}, apierr.Invalid("daily_price must be >= 0")
	}
	if in.StockCount < 0 {
		return ProductResponse{}, apierr.Invalid("stock_count must be >= 0")
	}

	unique, err := s.repo.IsSKUUnique(ctx, in.CompanyID, in.SKU, 0)
	if err != nil {
		return ProductResponse{}, err
	}
	if !unique {
		return ProductResponse{}, apierr.Conflict("sku already exists")
	}

	now := s.now().UTC()
	p := &Product{
		CompanyID:  in.CompanyID,
		SKU:        in.SKU,
		Name:       in.Name,
		DailyPrice: in.DailyPrice,
		StockCount: in.StockCount,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.InsertProduct(ctx, p); err != nil {
		if db.IsMySQLError(err, db.ErrNumForeignKey) {
			return ProductResponse{}, apierr.Invalid("unknown company_id")
		}
		if db.IsMySQLError(err, db.ErrNumDuplicateKey) {
			return ProductResponse{}, apierr.Conflict("sku already exists")
		}
		return ProductResponse{}, err
	}
	s.log.Info("product created", zap.Int64("product_id", p.ID), zap.Int64("company_id", p.CompanyID))
	return toResponse(p), nil
}

// GetProduct hides products of other companies behind NOT_FOUND.
func (s *Service) GetProduct(ctx context.Context, scope auth.Scope, id int64) (ProductResponse, error) {
	p, err := s.visible(ctx, scope, id)
	if err != nil {
		return ProductResponse{}, err
	}
	return toResponse(p), nil
}

func (s *Service) ListProducts(ctx context.Context, scope auth.Scope, f ProductFilter, p Page) ([]ProductResponse, int64, error) {
	items, total, err := s.repo.ListProducts(ctx, scope, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out, total, nil
}

func (s *Service) UpdateProduct(ctx context.Context, scope auth.Scope, id int64, in UpdateProductRequest) (ProductResponse, error) {
	p, err := s.visible(ctx, scope, id)
	if err != nil {
		return ProductResponse{}, err
	}
	if in.DailyPrice != nil && in.DailyPrice.IsNegative() {
		return ProductResponse{}, apierr.Invalid("daily_price must be >= 0")
	}
	if in.StockCount != nil && *in.StockCount < 0 {
		return ProductResponse{}, apierr.Invalid("stock_count must be >= 0")
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return ProductResponse{}, apierr.Invalid("sku must not be empty")
		}
		in.SKU = &sku
		if sku != p.SKU {
			unique, err := s.repo.IsSKUUnique(ctx, p.CompanyID, sku, p.ID)
			if err != nil {
				return ProductResponse{}, err
			}
			if !unique {
				return ProductResponse{}, apierr.Conflict("sku already exists")
			}
		}
	}

	if err := s.repo.UpdateProduct(ctx, id, in); err != nil {
		return ProductResponse{}, err
	}
	return s.GetProduct(ctx, scope, id)
}

func (s *Service) DeactivateProduct(ctx context.Context, scope auth.Scope, id int64) error {
	if _, err := s.visible(ctx, scope, id); err != nil {
		return err
	}
	ok, err := s.repo.DeactivateProduct(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("product not found")
	}
	s.log.Info("product deactivated", zap.Int64("product_id", id))
	return nil
}

func (s *Service) GetStock(ctx context.Context, scope auth.Scope, id int64) (StockSummary, error) {
	if _, err := s.visible(ctx, scope, id); err != nil {
		return StockSummary{}, err
	}
	sum, err := s.repo.StockSummary(ctx, id)
	if err != nil {
		return StockSummary{}, err
	}
	if sum == nil {
		return StockSummary{}, apierr.NotFound("product not found")
	}
	return *sum, nil
}

func (s *Service) visible(ctx context.Context, scope auth.Scope, id int64) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !scope.Includes(p.CompanyID) {
		return nil, apierr.NotFound("product not found")
	}
	return p, nil
}
