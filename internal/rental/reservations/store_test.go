package reservations_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/reservations"
)

func newMockStore(t *testing.T) (*reservations.Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		conn.Close()
	})
	return reservations.NewStore(sqlx.NewDb(conn, "mysql")), mock
}

func TestStore_UpdateStatusStampsOnlyOnce(t *testing.T) {
	at := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)

	t.Run("confirm keeps the first approver", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(
			`UPDATE reservations SET status = ?, approved_by = IF(approved_at IS NULL, ?, approved_by), approved_at = COALESCE(approved_at, ?), updated_at = ? WHERE id = ?`)).
			WithArgs("Confirmed", "staff-2", at, at, int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := s.UpdateStatus(context.Background(), reservations.StatusUpdate{ID: 9, Status: reservations.StatusConfirmed, UserID: "staff-2", At: at})
		if err != nil || !ok {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
	})

	t.Run("complete keeps the first return date", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(
			`UPDATE reservations SET status = ?, actual_return_date = COALESCE(actual_return_date, ?), updated_at = ? WHERE id = ?`)).
			WithArgs("Completed", at, at, int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if ok, err := s.UpdateStatus(context.Background(), reservations.StatusUpdate{ID: 9, Status: reservations.StatusCompleted, At: at}); err != nil || !ok {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
	})

	t.Run("missing reservation", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`)).
			WithArgs("InProgress", at, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if ok, err := s.UpdateStatus(context.Background(), reservations.StatusUpdate{ID: 404, Status: reservations.StatusInProgress, At: at}); err != nil || ok {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
	})
}

func TestStore_CreateReservationTakesNextCode(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for seq := int64(1); seq <= 2; seq++ {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM companies WHERE id IN (?, ?) AND status = 'active' LOCK IN SHARE MODE`)).
			WithArgs(int64(3), int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
		mock.ExpectExec(regexp.QuoteMeta(`ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)`)).
			WithArgs(int64(2026)).
			WillReturnResult(sqlmock.NewResult(seq, 1))
		mock.ExpectExec(`INSERT INTO reservations`).
			WillReturnResult(sqlmock.NewResult(100+seq, 1))
		mock.ExpectCommit()
	}

	in := reservations.NewReservation{ClientID: 1, CompanyIDs: []int64{3, 4}, CreatedBy: "staff-1", Now: now}
	first, err := s.CreateReservation(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.CreateReservation(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if first.Code != "RES-26-000001" || second.Code != "RES-26-000002" {
		t.Fatalf("codes = %s, %s", first.Code, second.Code)
	}
	if second.ID != 102 || second.Status != reservations.StatusRequested {
		t.Fatalf("unexpected header %+v", second)
	}
}

func TestStore_CreateReservationInactiveCompany(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM companies`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	_, err := s.CreateReservation(context.Background(), reservations.NewReservation{ClientID: 1, CompanyIDs: []int64{3, 4}, Now: time.Now()})
	if !errors.Is(err, reservations.ErrCompanyUnavailable) {
		t.Fatalf("want ErrCompanyUnavailable, got %v", err)
	}
}

func TestStore_Stats(t *testing.T) {
	s, mock := newMockStore(t)
	cols := []string{"total", "pending", "confirmed", "cancelled", "completed", "revenue", "pending_payment"}

	// company 5 owns 100 of a 200 total with 60 paid: its outstanding share is 70
	mock.ExpectQuery(
		regexp.QuoteMeta(`COALESCE(SUM(r.status IN ('Approved', 'Confirmed')), 0) AS confirmed`) +
			`(.|\n)*` + regexp.QuoteMeta(`GREATEST(x.amount - CASE WHEN r.total > 0 THEN ROUND(r.amount_paid * x.amount / r.total, 2) ELSE 0 END, 0)`) +
			`(.|\n)*` + regexp.QuoteMeta(`FROM reservations r`) + `\s+JOIN \(` +
			`(.|\n)*` + regexp.QuoteMeta(`WHERE state <> 'Cancelled' AND company_id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, 1, 1, 1, 0, "100.00", "70.00"))

	st, err := s.Stats(context.Background(), auth.SingleCompany(5))
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 3 || st.Confirmed != 1 || !st.Revenue.Equal(decimal.NewFromInt(100)) || !st.PendingPayment.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("stats = %+v", st)
	}
}

func TestStore_StatsAllCompaniesKeepsEmptyReservations(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations r`) + `\s+LEFT JOIN \(`).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "confirmed", "cancelled", "completed", "revenue", "pending_payment"}).
			AddRow(4, 4, 0, 0, 0, "0", "0"))

	st, err := s.Stats(context.Background(), auth.AllCompanies())
	if err != nil || st.Pending != 4 {
		t.Fatalf("stats=%+v err=%v", st, err)
	}
}
