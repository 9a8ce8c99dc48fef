package assets

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/audit"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/platform/db"
	"eventrent-backend/internal/rental/catalog"
)

type ProductLookup interface {
	GetProductByID(ctx context.Context, id int64) (*catalog.Product, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
	audit    audit.Sink
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, products ProductLookup, sink audit.Sink, log *zap.Logger) *Service {
	return &Service{repo: repo, products: products, audit: sink, log: log, now: time.Now}
}

func (s *Service) CreateAsset(ctx context.Context, scope auth.Scope, in CreateAssetRequest) (AssetResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return AssetResponse{}, apierr.Invalid("code is required")
	}
	if in.AcquisitionCost != nil && in.AcquisitionCost.IsNegative() {
		return AssetResponse{}, apierr.Invalid("acquisition_cost must be >= 0")
	}
	if in.DepreciationRate != nil && (in.DepreciationRate.IsNegative() || in.DepreciationRate.GreaterThan(decimal.NewFromInt(100))) {
		return AssetResponse{}, apierr.Invalid("depreciation_rate must be between 0 and 100")
	}

	p, err := s.products.GetProductByID(ctx, in.ProductID)
	if err != nil {
		return AssetResponse{}, err
	}
	if p == nil || !scope.Includes(p.CompanyID) {
		return AssetResponse{}, apierr.NotFound("product not found")
	}
	if !p.Active {
		return AssetResponse{}, apierr.Invalid("product is inactive")
	}

	now := s.now().UTC()
	a := &Asset{
		CompanyID:    p.CompanyID,
		ProductID:    p.ID,
		Code:         code,
		Condition:    strings.TrimSpace(in.Condition),
		Availability: Available,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if a.Condition == "" {
		a.Condition = "good"
	}
	if in.WarehouseID != nil {
		a.WarehouseID = sql.NullInt64{Int64: *in.WarehouseID, Valid: true}
	}
	if in.AcquiredOn != nil && *in.AcquiredOn != "" {
		t, err := time.Parse("2006-01-02", *in.AcquiredOn)
		if err != nil {
			return AssetResponse{}, apierr.Invalid("invalid acquired_on format, expected YYYY-MM-DD")
		}
		a.AcquiredOn = sql.NullTime{Time: t, Valid: true}
	}
	if in.AcquisitionCost != nil {
		a.AcquisitionCost = decimal.NewNullDecimal(*in.AcquisitionCost)
	}
	if in.DepreciationRate != nil {
		a.DepreciationRate = decimal.NewNullDecimal(*in.DepreciationRate)
	}
	if in.Notes != nil && *in.Notes != "" {
		a.Notes = sql.NullString{String: *in.Notes, Valid: true}
	}

	if err := s.repo.InsertAsset(ctx, a); err != nil {
		if db.IsMySQLError(err, db.ErrNumDuplicateKey) {
			return AssetResponse{}, apierr.Conflict("asset code already exists")
		}
		if db.IsMySQLError(err, db.ErrNumForeignKey) {
			return AssetResponse{}, apierr.Invalid("invalid warehouse_id")
		}
		return AssetResponse{}, err
	}
	return ToResponse(a, now), nil
}

func (s *Service) GetAsset(ctx context.Context, scope auth.Scope, id int64) (AssetResponse, error) {
	a, err := s.visible(ctx, scope, id)
	if err != nil {
		return AssetResponse{}, err
	}
	return ToResponse(a, s.now()), nil
}

func (s *Service) ListAssets(ctx context.Context, scope auth.Scope, f AssetFilter, p Page) ([]AssetResponse, int64, error) {
	if f.Availability != nil && !f.Availability.Valid() {
		return nil, 0, apierr.Invalidf("unknown availability %q", *f.Availability)
	}
	items, total, err := s.repo.ListAssets(ctx, scope, f, p)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	out := make([]AssetResponse, 0, len(items))
	for i := range items {
		out = append(out, ToResponse(&items[i], now))
	}
	return out, total, nil
}

// ChangeAvailability applies one lifecycle transition. A concurrent change makes it fail with CONFLICT.
func (s *Service) ChangeAvailability(ctx context.Context, identity auth.Identity, id int64, in ChangeAvailabilityRequest) (AssetResponse, error) {
	if !in.Availability.Valid() {
		return AssetResponse{}, apierr.Invalidf("unknown availability %q", in.Availability)
	}
	a, err := s.visible(ctx, identity.Scope(), id)
	if err != nil {
		return AssetResponse{}, err
	}
	if a.Availability == in.Availability {
		return ToResponse(a, s.now()), nil
	}
	if !a.Availability.CanTransitionTo(in.Availability) {
		return AssetResponse{}, apierr.Conflict("asset cannot move from " + string(a.Availability) + " to " + string(in.Availability))
	}

	ok, err := s.repo.UpdateAvailability(ctx, id, a.Availability, in.Availability)
	if err != nil {
		return AssetResponse{}, err
	}
	if !ok {
		return AssetResponse{}, apierr.Conflict("asset state changed concurrently, reload and retry")
	}

	attrs := map[string]any{"from": a.Availability, "to": in.Availability}
	if in.Note != nil {
		attrs["note"] = *in.Note
	}
	s.audit.Record(ctx, audit.Event{
		Name:       audit.EventAssetStateChanged,
		Entity:     "asset",
		EntityID:   id,
		ActorID:    identity.UserID,
		Attributes: attrs,
	})
	return s.GetAsset(ctx, identity.Scope(), id)
}

// ExportLabels renders the label CSV for the active assets in scope.
func (s *Service) ExportLabels(ctx context.Context, scope auth.Scope, in ExportLabelsRequest) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(in.Encoding))
	if enc == "" {
		enc = EncodingUTF8
	}
	if enc != EncodingUTF8 && enc != EncodingShiftJIS {
		return nil, apierr.Invalid("encoding must be utf8 or sjis")
	}
	rows, err := s.repo.ListLabelRows(ctx, scope, in.ProductID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("no assets to label")
	}
	out, err := writeLabelsCSV(rows, enc)
	if err != nil {
		// characters outside CP932 end up here
		s.log.Warn("label export failed", zap.String("encoding", enc), zap.Error(err))
		return nil, apierr.Invalid("labels contain characters the encoding cannot represent")
	}
	return out, nil
}

func (s *Service) visible(ctx context.Context, scope auth.Scope, id int64) (*Asset, error) {
	a, err := s.repo.GetAssetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || !scope.Includes(a.CompanyID) {
		return nil, apierr.NotFound("asset not found")
	}
	return a, nil
}
