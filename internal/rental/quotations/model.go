// Package quotations manages reservations that are still offers: a Requested header
// with an expiry deadline.
package quotations

import (
	"github.com/shopspring/decimal"

	"eventrent-backend/internal/rental/reservations"
)

type State string

const (
	StateActive    State = "active"
	StateExpired   State = "expired"
	StateConverted State = "converted"
)

func (s State) Valid() bool {
	return s == StateActive || s == StateExpired || s == StateConverted
}

const (
	MsgExpired      = "quotation expired, extend it first"
	MsgNotOpen      = "reservation is not an open quotation"
	MsgExtendRange  = "days must be between 1 and 90"
	MsgNeedsPayment = "payment_method must be one of cash, card, transfer"
	MsgConcurrent   = "quotation changed concurrently, reload and retry"
)

// Result is the outcome of a lifecycle step. Rule violations are OK=false, never errors.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func accepted() Result           { return Result{OK: true} }
func rejected(msg string) Result { return Result{Message: msg} }

type ConvertInput struct {
	PaymentMethod string
	Note          *string
	ApproverID    string
}

type ConvertResult struct {
	Result
	Reservation *reservations.Reservation
}

type Stats struct {
	Total          int64           `json:"total" db:"total"`
	Active         int64           `json:"active" db:"active"`
	Expired        int64           `json:"expired" db:"expired"`
	Converted      int64           `json:"converted" db:"converted"`
	QuotedValue    decimal.Decimal `json:"quoted_value" db:"quoted_value"`
	ConvertedValue decimal.Decimal `json:"converted_value" db:"converted_value"`
	ConversionRate float64         `json:"conversion_rate" db:"-"`
}

// conversionRate is converted/total*100 rounded to two places, 0 without quotations.
func conversionRate(converted, total int64) float64 {
	if total == 0 {
		return 0
	}
	r, _ := decimal.NewFromInt(converted).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 2).
		Float64()
	return r
}
