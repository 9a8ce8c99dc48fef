package reservations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/audit"
	auditmocks "eventrent-backend/internal/platform/audit/mocks"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/directory"
	"eventrent-backend/internal/rental/integrity"
	"eventrent-backend/internal/rental/reservations"
	"eventrent-backend/internal/rental/reservations/mocks"
)

type fixture struct {
	repo *mocks.MockRepository
	dir  *mocks.MockDirectory
	norm *mocks.MockNormalizer
	sink *auditmocks.MockSink
	svc  *reservations.Service
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		repo: mocks.NewMockRepository(ctrl),
		dir:  mocks.NewMockDirectory(ctrl),
		norm: mocks.NewMockNormalizer(ctrl),
		sink: auditmocks.NewMockSink(ctrl),
	}
	f.svc = reservations.NewService(f.repo, f.dir, f.norm, f.sink, zap.NewNop())
	return f
}

func ptr[T any](v T) *T { return &v }

func activeClient(id int64) *directory.Client {
	return &directory.Client{ID: id, Name: "Ana", Status: directory.StatusActive}
}

func activeCompany(id int64) *directory.Company {
	return &directory.Company{ID: id, Name: "Vendor", Status: directory.StatusActive}
}

func line(companyID int64) integrity.LineItem {
	return integrity.LineItem{
		CompanyID:  companyID,
		ProductID:  ptr(int64(10)),
		Quantity:   2,
		UnitPrice:  decimal.NewFromInt(10),
		RentalDays: 3,
		Subtotal:   decimal.NewFromInt(60),
	}
}

func staff(companyID int64) auth.Identity {
	return auth.Identity{UserID: "staff-1", CompanyID: &companyID, Role: auth.RoleStaff, AccessLevel: 2}
}

func TestCreateReservation_ClientChecks(t *testing.T) {
	f := newFixture(t)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(nil, nil)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(2)).Return(&directory.Client{ID: 2, Status: "blocked"}, nil)

	_, err := f.svc.CreateReservation(context.Background(), reservations.CreateReservationInput{ClientID: 1, Lines: []integrity.LineItem{line(1)}})
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("missing client: got %v", err)
	}
	_, err = f.svc.CreateReservation(context.Background(), reservations.CreateReservationInput{ClientID: 2, Lines: []integrity.LineItem{line(1)}})
	if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("inactive client: got %v", err)
	}
}

func TestCreateReservation_RequiresLines(t *testing.T) {
	f := newFixture(t)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(activeClient(1), nil)

	_, err := f.svc.CreateReservation(context.Background(), reservations.CreateReservationInput{ClientID: 1})
	if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("got %v", err)
	}
}

func TestCreateReservation_InactiveCompanyAbortsEverything(t *testing.T) {
	f := newFixture(t)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(activeClient(1), nil)
	f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)
	f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(2)).Return(&directory.Company{ID: 2, Name: "Closed", Status: "suspended"}, nil)
	// no CreateReservation expectation: the store must not be touched

	_, err := f.svc.CreateReservation(context.Background(), reservations.CreateReservationInput{
		ClientID: 1,
		Lines:    []integrity.LineItem{line(1), line(2)},
	})
	if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("got %v", err)
	}
}

func TestCreateReservation_MultiVendor(t *testing.T) {
	f := newFixture(t)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(activeClient(1), nil)
	f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)
	f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(2)).Return(activeCompany(2), nil)
	f.repo.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in reservations.NewReservation) (*reservations.Reservation, error) {
			if len(in.CompanyIDs) != 2 || in.CompanyIDs[0] != 1 || in.CompanyIDs[1] != 2 {
				t.Errorf("companies = %v, want [1 2]", in.CompanyIDs)
			}
			if in.QuotationExpiry == nil || in.QuotationExpiry.Sub(in.Now) != 15*24*time.Hour {
				t.Errorf("quotation expiry = %v (now %v)", in.QuotationExpiry, in.Now)
			}
			return &reservations.Reservation{ID: 7, Code: reservations.FormatCode(in.Now.Year(), 1), Status: reservations.StatusRequested}, nil
		})
	f.sink.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev audit.Event) {
		if ev.Name != audit.EventReservationCreated || ev.EntityID != 7 {
			t.Errorf("unexpected event %+v", ev)
		}
	})

	r, err := f.svc.CreateReservation(context.Background(), reservations.CreateReservationInput{
		ClientID:      1,
		Lines:         []integrity.LineItem{line(1), line(2), line(1)},
		QuotationDays: ptr(15),
		CreatedBy:     "staff-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID != 7 || r.Status != reservations.StatusRequested {
		t.Errorf("unexpected header %+v", r)
	}
}

func TestCreateReservation_QuotationDaysOutOfRange(t *testing.T) {
	for _, days := range []int{0, 91} {
		f := newFixture(t)
		f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(activeClient(1), nil)
		f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)

		_, err := f.svc.CreateReservation(context.Background(), reservations.CreateReservationInput{
			ClientID: 1, Lines: []integrity.LineItem{line(1)}, QuotationDays: ptr(days),
		})
		if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Errorf("days=%d: got %v", days, err)
		}
	}
}

func TestCreateReservation_CompanyDeactivatedConcurrently(t *testing.T) {
	f := newFixture(t)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(activeClient(1), nil)
	f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)
	f.repo.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).Return(nil, reservations.ErrCompanyUnavailable)

	_, err := f.svc.CreateReservation(context.Background(), reservations.CreateReservationInput{ClientID: 1, Lines: []integrity.LineItem{line(1)}})
	if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("got %v", err)
	}
}

func TestSubmitReservation_InvalidLinePersistsNothing(t *testing.T) {
	f := newFixture(t)
	f.dir.EXPECT().GetClientByUserID(gomock.Any(), "client-user").Return(activeClient(1), nil)
	gomock.InOrder(
		f.norm.EXPECT().NormalizeLineItem(gomock.Any(), gomock.Any()).
			Return(integrity.NormalizeResult{Valid: true, Item: line(1)}, nil),
		f.norm.EXPECT().NormalizeLineItem(gomock.Any(), gomock.Any()).
			Return(integrity.NormalizeResult{Message: "asset A-001 is not available"}, nil),
	)

	id := auth.Identity{UserID: "client-user", Role: auth.RoleClient, AccessLevel: 3}
	_, err := f.svc.SubmitReservation(context.Background(), id, reservations.CreateReservationRequest{
		Items: []integrity.LineItem{line(1), line(1)},
	})
	if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("got %v", err)
	}
}

func TestSubmitReservation_AttachesNormalizedLines(t *testing.T) {
	f := newFixture(t)
	submitted := line(1)
	submitted.Subtotal = decimal.NewFromInt(999)
	normalized := line(1)

	f.dir.EXPECT().GetClientByUserID(gomock.Any(), "client-user").Return(activeClient(1), nil)
	f.norm.EXPECT().NormalizeLineItem(gomock.Any(), submitted).
		Return(integrity.NormalizeResult{Valid: true, Item: normalized}, nil)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(activeClient(1), nil)
	f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)
	f.repo.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
		Return(&reservations.Reservation{ID: 3, Status: reservations.StatusRequested}, nil)
	f.sink.EXPECT().Record(gomock.Any(), gomock.Any())
	f.repo.EXPECT().InsertLineItems(gomock.Any(), int64(3), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, items []reservations.LineItem, _ time.Time) error {
			if len(items) != 1 || !items[0].Subtotal.Equal(decimal.NewFromInt(60)) || items[0].ItemULID == "" {
				t.Errorf("unexpected items %+v", items)
			}
			if items[0].State != reservations.ItemPending {
				t.Errorf("state = %s", items[0].State)
			}
			return nil
		})
	f.repo.EXPECT().GetReservation(gomock.Any(), int64(3)).
		Return(&reservations.Reservation{ID: 3, Total: decimal.NewFromInt(60)}, nil)
	f.repo.EXPECT().ListLineItems(gomock.Any(), int64(3)).Return([]reservations.LineItem{{ID: 1}}, nil)

	id := auth.Identity{UserID: "client-user", Role: auth.RoleClient, AccessLevel: 3}
	d, err := f.svc.SubmitReservation(context.Background(), id, reservations.CreateReservationRequest{
		Items: []integrity.LineItem{submitted},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 3 || len(d.Items) != 1 {
		t.Errorf("unexpected detail %+v", d)
	}
}

func TestSubmitReservation_RemovesHeaderWhenLinesFail(t *testing.T) {
	f := newFixture(t)
	f.norm.EXPECT().NormalizeLineItem(gomock.Any(), gomock.Any()).
		Return(integrity.NormalizeResult{Valid: true, Item: line(1)}, nil)
	f.dir.EXPECT().GetClientByID(gomock.Any(), int64(1)).Return(activeClient(1), nil)
	f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)
	f.repo.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
		Return(&reservations.Reservation{ID: 4}, nil)
	f.sink.EXPECT().Record(gomock.Any(), gomock.Any())
	f.repo.EXPECT().InsertLineItems(gomock.Any(), int64(4), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))
	f.repo.EXPECT().DeleteReservation(gomock.Any(), int64(4)).Return(nil)

	_, err := f.svc.SubmitReservation(context.Background(), staff(1), reservations.CreateReservationRequest{
		ClientID: ptr(int64(1)),
		Items:    []integrity.LineItem{line(1)},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestAddLineItem(t *testing.T) {
	t.Run("other company", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.AddLineItem(context.Background(), staff(1), 5, line(2))
		if !apierr.IsCode(err, apierr.CodeForbidden) {
			t.Fatalf("got %v", err)
		}
	})
	t.Run("not requested", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetReservation(gomock.Any(), int64(5)).
			Return(&reservations.Reservation{ID: 5, Status: reservations.StatusConfirmed}, nil)
		_, err := f.svc.AddLineItem(context.Background(), staff(1), 5, line(1))
		if !apierr.IsCode(err, apierr.CodeConflict) {
			t.Fatalf("got %v", err)
		}
	})
	t.Run("invalid line", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetReservation(gomock.Any(), int64(5)).
			Return(&reservations.Reservation{ID: 5, Status: reservations.StatusRequested}, nil)
		f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)
		f.norm.EXPECT().NormalizeLineItem(gomock.Any(), gomock.Any()).
			Return(integrity.NormalizeResult{Message: "quantity must be >= 1"}, nil)
		_, err := f.svc.AddLineItem(context.Background(), staff(1), 5, line(1))
		if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Fatalf("got %v", err)
		}
	})
	t.Run("company defaults to caller", func(t *testing.T) {
		f := newFixture(t)
		li := line(0)
		f.repo.EXPECT().GetReservation(gomock.Any(), int64(5)).
			Return(&reservations.Reservation{ID: 5, Status: reservations.StatusRequested}, nil)
		f.dir.EXPECT().GetCompanyByID(gomock.Any(), int64(1)).Return(activeCompany(1), nil)
		f.norm.EXPECT().NormalizeLineItem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in integrity.LineItem) (integrity.NormalizeResult, error) {
				return integrity.NormalizeResult{Valid: true, Item: in}, nil
			})
		f.repo.EXPECT().InsertLineItems(gomock.Any(), int64(5), gomock.Len(1), gomock.Any()).Return(nil)
		f.sink.EXPECT().Record(gomock.Any(), gomock.Any())

		got, err := f.svc.AddLineItem(context.Background(), staff(1), 5, li)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CompanyID != 1 {
			t.Errorf("company = %d, want 1", got.CompanyID)
		}
	})
}

func TestUpdateReservationStatus(t *testing.T) {
	t.Run("rejects unknown and approval", func(t *testing.T) {
		f := newFixture(t)
		for _, s := range []reservations.Status{"Shipped", reservations.StatusApproved} {
			ok, err := f.svc.UpdateReservationStatus(context.Background(), 1, s, "u", nil)
			if ok || !apierr.IsCode(err, apierr.CodeInvalidArgument) {
				t.Errorf("%s: ok=%v err=%v", s, ok, err)
			}
		}
	})
	t.Run("cancel defaults the reason", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u reservations.StatusUpdate) (bool, error) {
				if u.Reason != reservations.DefaultCancellationReason || u.UserID != "u" || u.At.IsZero() {
					t.Errorf("unexpected update %+v", u)
				}
				return true, nil
			})
		f.sink.EXPECT().Record(gomock.Any(), gomock.Any())

		ok, err := f.svc.UpdateReservationStatus(context.Background(), 1, reservations.StatusCancelled, "u", ptr("  "))
		if !ok || err != nil {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
	})
	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Return(false, nil)

		ok, err := f.svc.UpdateReservationStatus(context.Background(), 99, reservations.StatusConfirmed, "u", nil)
		if ok || err != nil {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
	})
}

func TestCheckAvailabilityAlwaysAllows(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	f.repo.EXPECT().CountOnDate(gomock.Any(), int64(1), day).Return(500, nil)

	ok, err := f.svc.CheckAvailability(context.Background(), 1, day)
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestCanManage(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().CompanyIDs(gomock.Any(), int64(9)).Return([]int64{2, 3}, nil).Times(2)

	admin := auth.Identity{UserID: "root", AccessLevel: auth.AccessLevelSuperAdmin, Role: auth.RoleAdmin}
	if ok, _ := f.svc.CanManage(context.Background(), 9, admin); !ok {
		t.Errorf("super-admin must always manage")
	}
	if ok, _ := f.svc.CanManage(context.Background(), 9, staff(3)); !ok {
		t.Errorf("company 3 has a line on the reservation")
	}
	if ok, _ := f.svc.CanManage(context.Background(), 9, staff(4)); ok {
		t.Errorf("company 4 has no line on the reservation")
	}
	client := auth.Identity{UserID: "c", Role: auth.RoleClient, AccessLevel: 3}
	if ok, _ := f.svc.CanManage(context.Background(), 9, client); ok {
		t.Errorf("clients never manage")
	}
}

func TestGetReservationVisibility(t *testing.T) {
	hdr := &reservations.Reservation{ID: 9, ClientID: 1}
	items := []reservations.LineItem{{CompanyID: 2}}

	f := newFixture(t)
	f.repo.EXPECT().GetReservation(gomock.Any(), int64(9)).Return(hdr, nil).Times(3)
	f.repo.EXPECT().ListLineItems(gomock.Any(), int64(9)).Return(items, nil).Times(3)
	f.dir.EXPECT().GetClientByUserID(gomock.Any(), "staff-1").Return(nil, nil)
	f.dir.EXPECT().GetClientByUserID(gomock.Any(), "owner").Return(activeClient(1), nil)

	if _, err := f.svc.GetReservation(context.Background(), staff(2), 9); err != nil {
		t.Errorf("vendor on the reservation: %v", err)
	}
	if _, err := f.svc.GetReservation(context.Background(), staff(5), 9); !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Errorf("foreign vendor: %v", err)
	}
	owner := auth.Identity{UserID: "owner", Role: auth.RoleClient, AccessLevel: 3}
	if _, err := f.svc.GetReservation(context.Background(), owner, 9); err != nil {
		t.Errorf("owning client: %v", err)
	}
}

func TestGetReservationsForClient(t *testing.T) {
	f := newFixture(t)
	f.dir.EXPECT().GetClientByUserID(gomock.Any(), "nobody").Return(nil, nil)
	f.dir.EXPECT().GetClientByUserID(gomock.Any(), "owner").Return(activeClient(1), nil)
	f.repo.EXPECT().ListByClient(gomock.Any(), int64(1)).Return([]reservations.Summary{{CompanyCount: 2}}, nil)

	if _, err := f.svc.GetReservationsForClient(context.Background(), "nobody"); !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Errorf("got %v", err)
	}
	rows, err := f.svc.GetReservationsForClient(context.Background(), "owner")
	if err != nil || len(rows) != 1 || rows[0].CompanyCount != 2 {
		t.Errorf("rows=%+v err=%v", rows, err)
	}
}

func TestGetReservationStats_PassesScope(t *testing.T) {
	f := newFixture(t)
	want := reservations.Stats{Total: 4, Confirmed: 2, Revenue: decimal.NewFromInt(300), PendingPayment: decimal.NewFromInt(120)}
	f.repo.EXPECT().Stats(gomock.Any(), auth.SingleCompany(5)).Return(want, nil)

	got, err := f.svc.GetReservationStats(context.Background(), auth.SingleCompany(5))
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 4 || !got.PendingPayment.Equal(decimal.NewFromInt(120)) {
		t.Errorf("stats = %+v", got)
	}
}
