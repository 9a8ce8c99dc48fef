package assets_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/japanese"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/audit"
	auditmocks "eventrent-backend/internal/platform/audit/mocks"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/assets"
	"eventrent-backend/internal/rental/assets/mocks"
	"eventrent-backend/internal/rental/catalog"
)

type fixture struct {
	repo     *mocks.MockRepository
	products *mocks.MockProductLookup
	sink     *auditmocks.MockSink
	svc      *assets.Service
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		repo:     mocks.NewMockRepository(ctrl),
		products: mocks.NewMockProductLookup(ctrl),
		sink:     auditmocks.NewMockSink(ctrl),
	}
	f.svc = assets.NewService(f.repo, f.products, f.sink, zap.NewNop())
	return f
}

func staffOf(companyID int64) auth.Identity {
	return auth.Identity{UserID: "staff-1", CompanyID: &companyID, Role: auth.RoleStaff, AccessLevel: auth.AccessLevelStaff}
}

func TestCreateAsset(t *testing.T) {
	f := newFixture(t)
	f.products.EXPECT().GetProductByID(gomock.Any(), int64(10)).Return(&catalog.Product{ID: 10, CompanyID: 2, Active: true}, nil)
	f.repo.EXPECT().InsertAsset(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *assets.Asset) error {
		if a.CompanyID != 2 || a.Availability != assets.Available || a.Condition != "good" || !a.AcquiredOn.Valid {
			t.Fatalf("unexpected asset %+v", a)
		}
		a.ID = 55
		return nil
	})

	on := "2025-04-01"
	got, err := f.svc.CreateAsset(context.Background(), auth.SingleCompany(2), assets.CreateAssetRequest{
		ProductID:  10,
		Code:       " CH-0001 ",
		AcquiredOn: &on,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 55 || got.Code != "CH-0001" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestCreateAsset_Rejections(t *testing.T) {
	t.Run("product of another company", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetProductByID(gomock.Any(), int64(10)).Return(&catalog.Product{ID: 10, CompanyID: 9, Active: true}, nil)
		_, err := f.svc.CreateAsset(context.Background(), auth.SingleCompany(2), assets.CreateAssetRequest{ProductID: 10, Code: "X"})
		if !apierr.IsCode(err, apierr.CodeNotFound) {
			t.Fatalf("want NOT_FOUND, got %v", err)
		}
	})
	t.Run("inactive product", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetProductByID(gomock.Any(), int64(10)).Return(&catalog.Product{ID: 10, CompanyID: 2}, nil)
		_, err := f.svc.CreateAsset(context.Background(), auth.AllCompanies(), assets.CreateAssetRequest{ProductID: 10, Code: "X"})
		if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Fatalf("want INVALID_ARGUMENT, got %v", err)
		}
	})
	t.Run("depreciation above 100", func(t *testing.T) {
		f := newFixture(t)
		rate := decimal.NewFromInt(120)
		_, err := f.svc.CreateAsset(context.Background(), auth.AllCompanies(), assets.CreateAssetRequest{ProductID: 10, Code: "X", DepreciationRate: &rate})
		if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Fatalf("want INVALID_ARGUMENT, got %v", err)
		}
	})
	t.Run("duplicate code", func(t *testing.T) {
		f := newFixture(t)
		f.products.EXPECT().GetProductByID(gomock.Any(), int64(10)).Return(&catalog.Product{ID: 10, CompanyID: 2, Active: true}, nil)
		f.repo.EXPECT().InsertAsset(gomock.Any(), gomock.Any()).Return(&mysql.MySQLError{Number: 1062})
		_, err := f.svc.CreateAsset(context.Background(), auth.AllCompanies(), assets.CreateAssetRequest{ProductID: 10, Code: "X"})
		if !apierr.IsCode(err, apierr.CodeConflict) {
			t.Fatalf("want CONFLICT, got %v", err)
		}
	})
}

func TestChangeAvailability(t *testing.T) {
	f := newFixture(t)
	before := &assets.Asset{ID: 4, CompanyID: 2, Availability: assets.Available, Active: true}
	after := &assets.Asset{ID: 4, CompanyID: 2, Availability: assets.InMaintenance, Active: true}

	gomock.InOrder(
		f.repo.EXPECT().GetAssetByID(gomock.Any(), int64(4)).Return(before, nil),
		f.repo.EXPECT().UpdateAvailability(gomock.Any(), int64(4), assets.Available, assets.InMaintenance).Return(true, nil),
		f.repo.EXPECT().GetAssetByID(gomock.Any(), int64(4)).Return(after, nil),
	)
	f.sink.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e audit.Event) {
		if e.Name != audit.EventAssetStateChanged || e.EntityID != 4 || e.ActorID != "staff-1" {
			t.Fatalf("unexpected event %+v", e)
		}
	})

	got, err := f.svc.ChangeAvailability(context.Background(), staffOf(2), 4, assets.ChangeAvailabilityRequest{Availability: assets.InMaintenance})
	if err != nil {
		t.Fatal(err)
	}
	if got.Availability != assets.InMaintenance {
		t.Fatalf("availability %s", got.Availability)
	}
}

func TestChangeAvailability_Rejections(t *testing.T) {
	t.Run("decommissioned is terminal", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetAssetByID(gomock.Any(), int64(4)).Return(&assets.Asset{ID: 4, CompanyID: 2, Availability: assets.Decommissioned}, nil)
		_, err := f.svc.ChangeAvailability(context.Background(), staffOf(2), 4, assets.ChangeAvailabilityRequest{Availability: assets.Available})
		if !apierr.IsCode(err, apierr.CodeConflict) {
			t.Fatalf("want CONFLICT, got %v", err)
		}
	})
	t.Run("maintenance cannot go straight to rented", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetAssetByID(gomock.Any(), int64(4)).Return(&assets.Asset{ID: 4, CompanyID: 2, Availability: assets.InMaintenance}, nil)
		_, err := f.svc.ChangeAvailability(context.Background(), staffOf(2), 4, assets.ChangeAvailabilityRequest{Availability: assets.Rented})
		if !apierr.IsCode(err, apierr.CodeConflict) {
			t.Fatalf("want CONFLICT, got %v", err)
		}
	})
	t.Run("concurrent change", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetAssetByID(gomock.Any(), int64(4)).Return(&assets.Asset{ID: 4, CompanyID: 2, Availability: assets.Available}, nil)
		f.repo.EXPECT().UpdateAvailability(gomock.Any(), int64(4), assets.Available, assets.Rented).Return(false, nil)
		_, err := f.svc.ChangeAvailability(context.Background(), staffOf(2), 4, assets.ChangeAvailabilityRequest{Availability: assets.Rented})
		if !apierr.IsCode(err, apierr.CodeConflict) {
			t.Fatalf("want CONFLICT, got %v", err)
		}
	})
	t.Run("unknown state", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ChangeAvailability(context.Background(), staffOf(2), 4, assets.ChangeAvailabilityRequest{Availability: "Lost"})
		if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Fatalf("want INVALID_ARGUMENT, got %v", err)
		}
	})
}

func TestExportLabels_ShiftJIS(t *testing.T) {
	f := newFixture(t)
	rows := []assets.LabelRow{
		{Code: "CH-0001", ProductName: "折りたたみ椅子", SKU: "CHAIR", WarehouseID: sql.NullInt64{Int64: 3, Valid: true}},
	}
	f.repo.EXPECT().ListLabelRows(gomock.Any(), gomock.Any(), (*int64)(nil)).Return(rows, nil)

	out, err := f.svc.ExportLabels(context.Background(), auth.SingleCompany(2), assets.ExportLabelsRequest{Encoding: "SJIS"})
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "code,product,sku,warehouse\nCH-0001,折りたたみ椅子,CHAIR,3\n"
	if string(decoded) != want {
		t.Fatalf("got %q, want %q", decoded, want)
	}
	if bytes.Equal(out, decoded) {
		t.Fatal("output was not re-encoded")
	}
}

func TestExportLabels_Rejections(t *testing.T) {
	t.Run("bad encoding", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ExportLabels(context.Background(), auth.AllCompanies(), assets.ExportLabelsRequest{Encoding: "latin1"})
		if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Fatalf("want INVALID_ARGUMENT, got %v", err)
		}
	})
	t.Run("nothing to label", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().ListLabelRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		_, err := f.svc.ExportLabels(context.Background(), auth.AllCompanies(), assets.ExportLabelsRequest{})
		if !apierr.IsCode(err, apierr.CodeNotFound) {
			t.Fatalf("want NOT_FOUND, got %v", err)
		}
	})
}

func TestBookValue(t *testing.T) {
	acquired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &assets.Asset{
		AcquiredOn:       sql.NullTime{Time: acquired, Valid: true},
		AcquisitionCost:  decimal.NewNullDecimal(decimal.NewFromInt(1000)),
		DepreciationRate: decimal.NewNullDecimal(decimal.NewFromInt(20)),
	}
	v, ok := a.BookValue(acquired.AddDate(10, 0, 0))
	if !ok || !v.IsZero() {
		t.Fatalf("fully depreciated asset: %s %v", v, ok)
	}
	v, ok = a.BookValue(acquired.AddDate(0, 0, -1))
	if !ok || !v.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("before acquisition: %s", v)
	}
	if _, ok := (&assets.Asset{}).BookValue(acquired); ok {
		t.Fatal("book value without cost")
	}
}
