package quotations

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/platform/db"
	"eventrent-backend/internal/rental/reservations"
)

type Repository interface {
	GetReservation(ctx context.Context, id int64) (*reservations.Reservation, error)
	CompanyIDs(ctx context.Context, id int64) ([]int64, error)
	Extend(ctx context.Context, id int64, days int, at time.Time) (bool, error)
	Convert(ctx context.Context, id int64, in ConvertInput, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context, scope auth.Scope, now time.Time) (Stats, error)
	List(ctx context.Context, scope auth.Scope, state *State, now time.Time, p reservations.Page) ([]reservations.Reservation, error)
}

// Store shares the reservations tables; headers and line items are read through the
// reservations store.
type Store struct {
	db   *sqlx.DB
	hdrs *reservations.Store
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, hdrs: reservations.NewStore(db)}
}

func (s *Store) GetReservation(ctx context.Context, id int64) (*reservations.Reservation, error) {
	return s.hdrs.GetReservation(ctx, id)
}

func (s *Store) CompanyIDs(ctx context.Context, id int64) ([]int64, error) {
	return s.hdrs.CompanyIDs(ctx, id)
}

// openQuotation matches a quotation that was never converted. A converted header moved
// back to Requested stays converted.
const openQuotation = `status = 'Requested' AND quotation_expiry IS NOT NULL AND converted_at IS NULL`

// Extend pushes the expiry of an open quotation by days in one statement.
func (s *Store) Extend(ctx context.Context, id int64, days int, at time.Time) (bool, error) {
	q := `UPDATE reservations
	SET quotation_expiry = DATE_ADD(quotation_expiry, INTERVAL ? DAY), updated_at = ?
	WHERE id = ? AND ` + openQuotation
	return affected(s.db.ExecContext(ctx, q, days, at, id))
}

// Convert approves an open, unexpired quotation. The expiry check lives in the WHERE
// clause so a concurrent extension or conversion cannot be lost.
func (s *Store) Convert(ctx context.Context, id int64, in ConvertInput, at time.Time) (bool, error) {
	sets := []string{
		"status = 'Approved'",
		"approved_by = ?",
		"approved_at = ?",
		"payment_method = ?",
		"converted_at = ?",
		"updated_at = ?",
	}
	args := []any{in.ApproverID, at, in.PaymentMethod, at, at}
	if in.Note != nil && strings.TrimSpace(*in.Note) != "" {
		sets = append(sets, "observations = CONCAT_WS('\\n', NULLIF(observations, ''), ?)")
		args = append(args, strings.TrimSpace(*in.Note))
	}
	args = append(args, id, at)

	q := `UPDATE reservations SET ` + strings.Join(sets, ", ") +
		` WHERE id = ? AND ` + openQuotation + ` AND quotation_expiry > ?`
	return affected(s.db.ExecContext(ctx, q, args...))
}

// Delete hard-deletes an open quotation. Line items cascade.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	return affected(s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ? AND `+openQuotation, id))
}

func (s *Store) Stats(ctx context.Context, scope auth.Scope, now time.Time) (Stats, error) {
	join := `LEFT JOIN`
	frag, sargs := db.ScopeClause(scope, "company_id")
	if frag != "" {
		join = `JOIN`
	}
	q := `
	SELECT
		COUNT(*) AS total,
		COALESCE(SUM(r.status = 'Requested' AND r.converted_at IS NULL AND r.quotation_expiry > ?), 0) AS active,
		COALESCE(SUM(r.status = 'Requested' AND r.converted_at IS NULL AND r.quotation_expiry <= ?), 0) AS expired,
		COALESCE(SUM(r.converted_at IS NOT NULL), 0) AS converted,
		COALESCE(SUM(x.amount), 0) AS quoted_value,
		COALESCE(SUM(CASE WHEN r.converted_at IS NOT NULL THEN x.amount ELSE 0 END), 0) AS converted_value
	FROM reservations r
	` + join + ` (
		SELECT reservation_id, SUM(subtotal) AS amount
		FROM reservation_items
		WHERE state <> 'Cancelled'` + frag + `
		GROUP BY reservation_id
	) x ON x.reservation_id = r.id
	WHERE r.quotation_expiry IS NOT NULL`

	args := append([]any{now, now}, sargs...)
	var st Stats
	if err := s.db.GetContext(ctx, &st, q, args...); err != nil {
		return Stats{}, err
	}
	st.ConversionRate = conversionRate(st.Converted, st.Total)
	return st, nil
}

func (s *Store) List(ctx context.Context, scope auth.Scope, state *State, now time.Time, p reservations.Page) ([]reservations.Reservation, error) {
	p = p.Normalized()

	var where strings.Builder
	args := []any{}
	where.WriteString(` WHERE r.quotation_expiry IS NOT NULL`)
	if id, ok := scope.CompanyID(); ok {
		where.WriteString(` AND EXISTS (SELECT 1 FROM reservation_items i WHERE i.reservation_id = r.id AND i.company_id = ?)`)
		args = append(args, id)
	}
	if state != nil {
		switch *state {
		case StateActive:
			where.WriteString(` AND r.status = 'Requested' AND r.converted_at IS NULL AND r.quotation_expiry > ?`)
			args = append(args, now)
		case StateExpired:
			where.WriteString(` AND r.status = 'Requested' AND r.converted_at IS NULL AND r.quotation_expiry <= ?`)
			args = append(args, now)
		case StateConverted:
			where.WriteString(` AND r.converted_at IS NOT NULL`)
		}
	}

	q := `SELECT ` + reservations.Columns("r") + ` FROM reservations r` + where.String() +
		` ORDER BY r.quotation_expiry ASC, r.id ASC LIMIT ? OFFSET ?`
	out := []reservations.Reservation{}
	if err := s.db.SelectContext(ctx, &out, q, append(args, p.Limit, p.Offset)...); err != nil {
		return nil, err
	}
	return out, nil
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
