package payments

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"eventrent-backend/internal/platform/db"
	"eventrent-backend/internal/rental/reservations"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotPayable          = errors.New("reservation does not accept payments")
	ErrOverpayment         = errors.New("payment exceeds outstanding balance")
)

type Repository interface {
	Record(ctx context.Context, t *Transaction) (Balance, error)
	ListTransactions(ctx context.Context, reservationID int64) ([]Transaction, error)
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Record inserts t and recomputes amount_paid and payment_status while holding the
// header row lock, so concurrent payments serialize on the reservation.
func (s *Store) Record(ctx context.Context, t *Transaction) (Balance, error) {
	var bal Balance
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		var hdr struct {
			Status     reservations.Status `db:"status"`
			Total      decimal.Decimal     `db:"total"`
			AmountPaid decimal.Decimal     `db:"amount_paid"`
		}
		err := tx.GetContext(ctx, &hdr, `SELECT status, total, amount_paid FROM reservations WHERE id = ? FOR UPDATE`, t.ReservationID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		if err != nil {
			return err
		}
		if hdr.Status == reservations.StatusCancelled {
			return ErrNotPayable
		}
		if hdr.AmountPaid.Add(t.Amount).GreaterThan(hdr.Total) {
			return ErrOverpayment
		}

		const ins = `
		INSERT INTO payment_transactions (payment_ulid, reservation_id, amount, method, reference, recorded_by, paid_at, created_at)
		VALUES (:payment_ulid, :reservation_id, :amount, :method, :reference, :recorded_by, :paid_at, :created_at)`
		res, err := tx.NamedExecContext(ctx, ins, t)
		if err != nil {
			return err
		}
		if t.ID, err = res.LastInsertId(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
		UPDATE reservations SET
			amount_paid = (SELECT COALESCE(SUM(amount), 0) FROM payment_transactions WHERE reservation_id = ?),
			payment_status = CASE
				WHEN amount_paid <= 0 THEN 'Pending'
				WHEN amount_paid >= total THEN 'Paid'
				ELSE 'Partial' END,
			updated_at = ?
		WHERE id = ?`, t.ReservationID, t.CreatedAt, t.ReservationID)
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, &bal, `SELECT total, amount_paid, payment_status FROM reservations WHERE id = ?`, t.ReservationID)
	})
	return bal, err
}

func (s *Store) ListTransactions(ctx context.Context, reservationID int64) ([]Transaction, error) {
	out := []Transaction{}
	q := `
	SELECT id, payment_ulid, reservation_id, amount, method, reference, recorded_by, paid_at, created_at
	FROM payment_transactions WHERE reservation_id = ? ORDER BY paid_at, id`
	if err := s.db.SelectContext(ctx, &out, q, reservationID); err != nil {
		return nil, err
	}
	return out, nil
}
