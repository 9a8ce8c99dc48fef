package quotations_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/audit"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/quotations"
	"eventrent-backend/internal/rental/quotations/mocks"
	"eventrent-backend/internal/rental/reservations"
)

func newService(t *testing.T) (*quotations.Service, *mocks.MockRepository) {
	repo := mocks.NewMockRepository(gomock.NewController(t))
	return quotations.NewService(repo, audit.Nop{}, zap.NewNop()), repo
}

func quotation(status reservations.Status, expiry time.Time) *reservations.Reservation {
	return &reservations.Reservation{
		ID:              1,
		Status:          status,
		QuotationExpiry: sql.NullTime{Time: expiry, Valid: true},
	}
}

func TestExtendExpiry_DayRange(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().Extend(gomock.Any(), int64(1), 90, gomock.Any()).Return(true, nil)

	for _, days := range []int{0, 91, -1} {
		res, err := svc.ExtendExpiry(context.Background(), 1, days, "u")
		if err != nil || res.OK {
			t.Errorf("days=%d: res=%+v err=%v", days, res, err)
		}
	}
	res, err := svc.ExtendExpiry(context.Background(), 1, 90, "u")
	if err != nil || !res.OK {
		t.Fatalf("days=90: res=%+v err=%v", res, err)
	}
}

func TestExtendExpiry_NotAQuotation(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().Extend(gomock.Any(), int64(1), 5, gomock.Any()).Return(false, nil)
	repo.EXPECT().GetReservation(gomock.Any(), int64(1)).
		Return(quotation(reservations.StatusApproved, time.Now().Add(time.Hour)), nil)

	res, err := svc.ExtendExpiry(context.Background(), 1, 5, "u")
	if err != nil || res.OK || res.Message != quotations.MsgNotOpen {
		t.Fatalf("res=%+v err=%v", res, err)
	}
}

func TestExtendExpiry_Missing(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().Extend(gomock.Any(), int64(1), 5, gomock.Any()).Return(false, nil)
	repo.EXPECT().GetReservation(gomock.Any(), int64(1)).Return(nil, nil)

	_, err := svc.ExtendExpiry(context.Background(), 1, 5, "u")
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestConvert_ExpiredQuotation(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().Convert(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().GetReservation(gomock.Any(), int64(1)).
		Return(quotation(reservations.StatusRequested, time.Now().Add(-time.Hour)), nil)

	res, err := svc.Convert(context.Background(), 1, quotations.ConvertInput{PaymentMethod: "cash", ApproverID: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK || res.Message != quotations.MsgExpired {
		t.Fatalf("expected expiry rejection, got %+v", res.Result)
	}
}

func TestConvert_ReopenedAfterConversion(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().Convert(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(false, nil)
	reopened := quotation(reservations.StatusRequested, time.Now().Add(time.Hour))
	reopened.ConvertedAt = sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}
	repo.EXPECT().GetReservation(gomock.Any(), int64(1)).Return(reopened, nil)

	res, err := svc.Convert(context.Background(), 1, quotations.ConvertInput{PaymentMethod: "cash", ApproverID: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK || res.Message != quotations.MsgNotOpen {
		t.Fatalf("converted header must not convert again, got %+v", res.Result)
	}
}

func TestConvert_Success(t *testing.T) {
	svc, repo := newService(t)
	note := "deposit received"
	repo.EXPECT().Convert(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, in quotations.ConvertInput, at time.Time) (bool, error) {
			if in.PaymentMethod != "card" || in.ApproverID != "u" || in.Note == nil || *in.Note != note {
				t.Errorf("unexpected input %+v", in)
			}
			if at.IsZero() {
				t.Errorf("conversion time not set")
			}
			return true, nil
		})
	converted := quotation(reservations.StatusApproved, time.Now().Add(time.Hour))
	converted.ConvertedAt = sql.NullTime{Time: time.Now(), Valid: true}
	repo.EXPECT().GetReservation(gomock.Any(), int64(1)).Return(converted, nil)

	res, err := svc.Convert(context.Background(), 1, quotations.ConvertInput{PaymentMethod: " Card ", Note: &note, ApproverID: "u"})
	if err != nil || !res.OK {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	if res.Reservation.Status != reservations.StatusApproved {
		t.Errorf("status = %s", res.Reservation.Status)
	}
}

func TestConvert_RequiresPaymentMethod(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.Convert(context.Background(), 1, quotations.ConvertInput{PaymentMethod: "barter"})
	if err != nil || res.OK || res.Message != quotations.MsgNeedsPayment {
		t.Fatalf("res=%+v err=%v", res, err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newService(t)
	gomock.InOrder(
		repo.EXPECT().Delete(gomock.Any(), int64(1)).Return(true, nil),
		repo.EXPECT().Delete(gomock.Any(), int64(2)).Return(false, nil),
	)
	repo.EXPECT().GetReservation(gomock.Any(), int64(2)).
		Return(quotation(reservations.StatusConfirmed, time.Now()), nil)

	if res, err := svc.Delete(context.Background(), 1, "u"); err != nil || !res.OK {
		t.Errorf("open quotation: res=%+v err=%v", res, err)
	}
	if res, err := svc.Delete(context.Background(), 2, "u"); err != nil || res.OK {
		t.Errorf("confirmed reservation: res=%+v err=%v", res, err)
	}
}

func TestList_RejectsUnknownState(t *testing.T) {
	svc, _ := newService(t)
	bad := quotations.State("archived")

	_, err := svc.List(context.Background(), auth.AllCompanies(), &bad, reservations.Page{})
	if !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("got %v", err)
	}
}

func TestCanManage(t *testing.T) {
	svc, repo := newService(t)
	repo.EXPECT().CompanyIDs(gomock.Any(), int64(1)).Return([]int64{5, 6}, nil).Times(2)

	in, out := int64(6), int64(7)
	if ok, _ := svc.CanManage(context.Background(), 1, auth.Identity{CompanyID: &in, Role: auth.RoleStaff, AccessLevel: 2}); !ok {
		t.Errorf("company 6 owns a line")
	}
	if ok, _ := svc.CanManage(context.Background(), 1, auth.Identity{CompanyID: &out, Role: auth.RoleStaff, AccessLevel: 2}); ok {
		t.Errorf("company 7 owns no line")
	}
	if ok, _ := svc.CanManage(context.Background(), 1, auth.Identity{Role: auth.RoleAdmin, AccessLevel: auth.AccessLevelSuperAdmin}); !ok {
		t.Errorf("super-admin overrides")
	}
}
