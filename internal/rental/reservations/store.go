package reservations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/platform/db"
)

var (
	ErrNotFound           = errors.New("reservation not found")
	ErrNotEditable        = errors.New("reservation no longer accepts line items")
	ErrCompanyUnavailable = errors.New("company missing or inactive")
)

// Repository is the persistence contract of the assembler.
type Repository interface {
	CreateReservation(ctx context.Context, in NewReservation) (*Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
	GetReservation(ctx context.Context, id int64) (*Reservation, error)
	ListLineItems(ctx context.Context, reservationID int64) ([]LineItem, error)
	CompanyIDs(ctx context.Context, reservationID int64) ([]int64, error)
	InsertLineItems(ctx context.Context, reservationID int64, items []LineItem, at time.Time) error
	ListByClient(ctx context.Context, clientID int64) ([]Summary, error)
	ListByCompany(ctx context.Context, scope auth.Scope, status *Status, p Page) ([]Reservation, error)
	UpdateStatus(ctx context.Context, u StatusUpdate) (bool, error)
	Stats(ctx context.Context, scope auth.Scope) (Stats, error)
	CountOnDate(ctx context.Context, companyID int64, day time.Time) (int, error)
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

var reservationFields = []string{
	"id", "code", "client_id", "status", "event_date", "delivery_date", "return_date",
	"actual_return_date", "total", "amount_paid", "payment_status", "payment_method",
	"quotation_expiry", "converted_at", "approved_by", "approved_at", "cancelled_by",
	"cancellation_reason", "observations", "created_by", "created_at", "updated_at",
}

const itemColumns = `id, item_ulid, reservation_id, company_id, product_id, asset_id, quantity,
	unit_price, rental_days, subtotal, state, created_at`

// Columns lists the header columns, qualified by alias when given.
func Columns(alias string) string {
	if alias == "" {
		return strings.Join(reservationFields, ", ")
	}
	out := make([]string, len(reservationFields))
	for i, f := range reservationFields {
		out[i] = alias + "." + f
	}
	return strings.Join(out, ", ")
}

// CreateReservation checks the companies under a shared lock, takes the next code of
// the year and inserts the header in one transaction.
func (s *Store) CreateReservation(ctx context.Context, in NewReservation) (*Reservation, error) {
	r := &Reservation{
		ClientID:      in.ClientID,
		Status:        StatusRequested,
		EventDate:     nullTime(in.EventDate),
		DeliveryDate:  nullTime(in.DeliveryDate),
		ReturnDate:    nullTime(in.ReturnDate),
		PaymentStatus: PaymentPending,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     in.Now,
		UpdatedAt:     in.Now,
	}
	r.QuotationExpiry = nullTime(in.QuotationExpiry)
	if in.Observations != nil {
		r.Observations = sql.NullString{String: *in.Observations, Valid: true}
	}

	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		q, args, err := sqlx.In(`SELECT COUNT(*) FROM companies WHERE id IN (?) AND status = 'active' LOCK IN SHARE MODE`, in.CompanyIDs)
		if err != nil {
			return err
		}
		var n int
		if err := tx.GetContext(ctx, &n, tx.Rebind(q), args...); err != nil {
			return err
		}
		if n != len(in.CompanyIDs) {
			return ErrCompanyUnavailable
		}

		year := in.Now.Year()
		seq, err := nextSequence(ctx, tx, year)
		if err != nil {
			return err
		}
		r.Code = FormatCode(year, seq)

		const ins = `
		INSERT INTO reservations (code, client_id, status, event_date, delivery_date, return_date,
			total, amount_paid, payment_status, quotation_expiry, observations, created_by, created_at, updated_at)
		VALUES (:code, :client_id, :status, :event_date, :delivery_date, :return_date,
			0, 0, :payment_status, :quotation_expiry, :observations, :created_by, :created_at, :updated_at)`
		res, err := tx.NamedExecContext(ctx, ins, r)
		if err != nil {
			return err
		}
		r.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// nextSequence bumps the per-year counter; the row lock is held until the caller's tx ends.
func nextSequence(ctx context.Context, tx *sqlx.Tx, year int) (int64, error) {
	res, err := tx.ExecContext(ctx, `
	INSERT INTO reservation_sequences (year, last_value) VALUES (?, LAST_INSERT_ID(1))
	ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)`, year)
	if err != nil {
		return 0, fmt.Errorf("next reservation sequence: %w", err)
	}
	return res.LastInsertId()
}

// DeleteReservation removes a header that is still Requested. Line items cascade.
func (s *Store) DeleteReservation(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ? AND status = 'Requested'`, id)
	return err
}

// GetReservation returns nil when absent.
func (s *Store) GetReservation(ctx context.Context, id int64) (*Reservation, error) {
	var r Reservation
	err := s.db.GetContext(ctx, &r, `SELECT `+Columns("")+` FROM reservations WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListLineItems(ctx context.Context, reservationID int64) ([]LineItem, error) {
	items := []LineItem{}
	q := `SELECT ` + itemColumns + ` FROM reservation_items WHERE reservation_id = ? ORDER BY id`
	if err := s.db.SelectContext(ctx, &items, q, reservationID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CompanyIDs(ctx context.Context, reservationID int64) ([]int64, error) {
	ids := []int64{}
	q := `SELECT DISTINCT company_id FROM reservation_items WHERE reservation_id = ? ORDER BY company_id`
	if err := s.db.SelectContext(ctx, &ids, q, reservationID); err != nil {
		return nil, err
	}
	return ids, nil
}

// InsertLineItems attaches items to a Requested reservation and recomputes its total
// and payment status in the same transaction.
func (s *Store) InsertLineItems(ctx context.Context, reservationID int64, items []LineItem, at time.Time) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		var status Status
		err := tx.GetContext(ctx, &status, `SELECT status FROM reservations WHERE id = ? FOR UPDATE`, reservationID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if status != StatusRequested {
			return ErrNotEditable
		}

		const ins = `
		INSERT INTO reservation_items (item_ulid, reservation_id, company_id, product_id, asset_id,
			quantity, unit_price, rental_days, subtotal, state, created_at)
		VALUES (:item_ulid, :reservation_id, :company_id, :product_id, :asset_id,
			:quantity, :unit_price, :rental_days, :subtotal, :state, :created_at)`
		for i := range items {
			items[i].ReservationID = reservationID
			res, err := tx.NamedExecContext(ctx, ins, &items[i])
			if err != nil {
				return err
			}
			if items[i].ID, err = res.LastInsertId(); err != nil {
				return err
			}
		}

		// MySQL evaluates single-table SET clauses left to right, so payment_status sees the new total.
		_, err = tx.ExecContext(ctx, `
		UPDATE reservations SET
			total = (SELECT COALESCE(SUM(subtotal), 0) FROM reservation_items
			         WHERE reservation_id = ? AND state <> 'Cancelled'),
			payment_status = CASE
				WHEN amount_paid <= 0 THEN 'Pending'
				WHEN amount_paid >= total THEN 'Paid'
				ELSE 'Partial' END,
			updated_at = ?
		WHERE id = ?`, reservationID, at, reservationID)
		return err
	})
}

func (s *Store) ListByClient(ctx context.Context, clientID int64) ([]Summary, error) {
	q := `
	SELECT ` + Columns("r") + `, COUNT(DISTINCT i.company_id) AS company_count
	FROM reservations r
	LEFT JOIN reservation_items i ON i.reservation_id = r.id
	WHERE r.client_id = ?
	GROUP BY r.id
	ORDER BY r.created_at DESC, r.id DESC`
	out := []Summary{}
	if err := s.db.SelectContext(ctx, &out, q, clientID); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCompany returns each header once, however many of its lines the company fulfils.
func (s *Store) ListByCompany(ctx context.Context, scope auth.Scope, status *Status, p Page) ([]Reservation, error) {
	p = p.Normalized()

	var where strings.Builder
	args := []any{}
	where.WriteString(` WHERE 1=1`)
	if id, ok := scope.CompanyID(); ok {
		where.WriteString(` AND EXISTS (SELECT 1 FROM reservation_items i WHERE i.reservation_id = r.id AND i.company_id = ?)`)
		args = append(args, id)
	}
	if status != nil {
		where.WriteString(` AND r.status = ?`)
		args = append(args, *status)
	}

	q := `SELECT ` + Columns("r") + ` FROM reservations r` + where.String() +
		` ORDER BY r.created_at DESC, r.id DESC LIMIT ? OFFSET ?`
	out := []Reservation{}
	if err := s.db.SelectContext(ctx, &out, q, append(args, p.Limit, p.Offset)...); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus applies a transition and its stamps in one statement.
// It reports false when the reservation does not exist.
func (s *Store) UpdateStatus(ctx context.Context, u StatusUpdate) (bool, error) {
	sets := []string{"status = ?"}
	args := []any{u.Status}
	switch u.Status {
	case StatusConfirmed:
		// approved_by first: it must still see the old approved_at
		sets = append(sets,
			"approved_by = IF(approved_at IS NULL, ?, approved_by)",
			"approved_at = COALESCE(approved_at, ?)")
		args = append(args, u.UserID, u.At)
	case StatusCancelled:
		sets = append(sets, "cancelled_by = ?", "cancellation_reason = ?")
		args = append(args, u.UserID, u.Reason)
	case StatusCompleted:
		sets = append(sets, "actual_return_date = COALESCE(actual_return_date, ?)")
		args = append(args, u.At)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, u.At, u.ID)

	res, err := s.db.ExecContext(ctx, `UPDATE reservations SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

// Stats aggregates reservation counts and money for the scope. Money only counts the
// lines of the scoped company. Payments are not split per line, so a company's paid
// share is amount_paid weighted by its part of the reservation total.
func (s *Store) Stats(ctx context.Context, scope auth.Scope) (Stats, error) {
	join := `LEFT JOIN`
	frag, args := db.ScopeClause(scope, "company_id")
	if frag != "" {
		join = `JOIN`
	}
	q := `
	SELECT
		COUNT(*) AS total,
		COALESCE(SUM(r.status = 'Requested'), 0) AS pending,
		COALESCE(SUM(r.status IN ('Approved', 'Confirmed')), 0) AS confirmed,
		COALESCE(SUM(r.status = 'Cancelled'), 0) AS cancelled,
		COALESCE(SUM(r.status = 'Completed'), 0) AS completed,
		COALESCE(SUM(CASE WHEN r.status <> 'Cancelled' THEN x.amount ELSE 0 END), 0) AS revenue,
		COALESCE(SUM(CASE WHEN r.status <> 'Cancelled' THEN
			GREATEST(x.amount - CASE WHEN r.total > 0 THEN ROUND(r.amount_paid * x.amount / r.total, 2) ELSE 0 END, 0)
			ELSE 0 END), 0) AS pending_payment
	FROM reservations r
	` + join + ` (
		SELECT reservation_id, SUM(subtotal) AS amount
		FROM reservation_items
		WHERE state <> 'Cancelled'` + frag + `
		GROUP BY reservation_id
	) x ON x.reservation_id = r.id`

	var st Stats
	if err := s.db.GetContext(ctx, &st, q, args...); err != nil {
		return Stats{}, err
	}
	return st, nil
}

// CountOnDate counts live reservations of the company whose event falls on day.
func (s *Store) CountOnDate(ctx context.Context, companyID int64, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	q := `
	SELECT COUNT(DISTINCT r.id)
	FROM reservations r
	JOIN reservation_items i ON i.reservation_id = r.id
	WHERE i.company_id = ? AND r.event_date >= ? AND r.event_date < ? AND r.status <> 'Cancelled'`
	var n int
	if err := s.db.GetContext(ctx, &n, q, companyID, start, start.AddDate(0, 0, 1)); err != nil {
		return 0, err
	}
	return n, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
