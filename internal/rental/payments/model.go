// Package payments records payment transactions against reservations and keeps the
// header's paid amount and payment status in line with them.
package payments

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID            int64           `db:"id"`
	PaymentULID   string          `db:"payment_ulid"`
	ReservationID int64           `db:"reservation_id"`
	Amount        decimal.Decimal `db:"amount"`
	Method        string          `db:"method"`
	Reference     sql.NullString  `db:"reference"`
	RecordedBy    string          `db:"recorded_by"`
	PaidAt        time.Time       `db:"paid_at"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Balance is the header payment state after a recompute.
type Balance struct {
	Total         decimal.Decimal `db:"total" json:"total"`
	AmountPaid    decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	PaymentStatus string          `db:"payment_status" json:"payment_status"`
}

func (b Balance) Outstanding() decimal.Decimal {
	d := b.Total.Sub(b.AmountPaid)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference *string         `json:"reference,omitempty"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

type TransactionResponse struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  *string         `json:"reference,omitempty"`
	RecordedBy string          `json:"recorded_by"`
	PaidAt     time.Time       `json:"paid_at"`
}

type ReceiptResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     Balance             `json:"balance"`
	Outstanding decimal.Decimal     `json:"outstanding"`
}

func toResponse(t *Transaction) TransactionResponse {
	out := TransactionResponse{
		ID:         t.PaymentULID,
		Amount:     t.Amount,
		Method:     t.Method,
		RecordedBy: t.RecordedBy,
		PaidAt:     t.PaidAt,
	}
	if t.Reference.Valid {
		v := t.Reference.String
		out.Reference = &v
	}
	return out
}
