package reservations

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusRequested  Status = "Requested"
	StatusApproved   Status = "Approved"
	StatusConfirmed  Status = "Confirmed"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// settable are the targets accepted by UpdateReservationStatus.
// Approved is only reachable through quotation conversion.
var settable = map[Status]bool{
	StatusRequested:  true,
	StatusConfirmed:  true,
	StatusCancelled:  true,
	StatusCompleted:  true,
	StatusInProgress: true,
}

func (s Status) Settable() bool { return settable[s] }

func (s Status) Known() bool { return s == StatusApproved || settable[s] }

const (
	PaymentPending = "Pending"
	PaymentPartial = "Partial"
	PaymentPaid    = "Paid"
)

const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

const (
	ItemPending   = "Pending"
	ItemDelivered = "Delivered"
	ItemReturned  = "Returned"
	ItemCancelled = "Cancelled"
)

const DefaultCancellationReason = "unspecified"

// Reservation is the header row. Ownership comes from the companies of its line items.
type Reservation struct {
	ID                 int64           `db:"id"`
	Code               string          `db:"code"`
	ClientID           int64           `db:"client_id"`
	Status             Status          `db:"status"`
	EventDate          sql.NullTime    `db:"event_date"`
	DeliveryDate       sql.NullTime    `db:"delivery_date"`
	ReturnDate         sql.NullTime    `db:"return_date"`
	ActualReturnDate   sql.NullTime    `db:"actual_return_date"`
	Total              decimal.Decimal `db:"total"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	PaymentStatus      string          `db:"payment_status"`
	PaymentMethod      sql.NullString  `db:"payment_method"`
	QuotationExpiry    sql.NullTime    `db:"quotation_expiry"`
	ConvertedAt        sql.NullTime    `db:"converted_at"`
	ApprovedBy         sql.NullString  `db:"approved_by"`
	ApprovedAt         sql.NullTime    `db:"approved_at"`
	CancelledBy        sql.NullString  `db:"cancelled_by"`
	CancellationReason sql.NullString  `db:"cancellation_reason"`
	Observations       sql.NullString  `db:"observations"`
	CreatedBy          string          `db:"created_by"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

// LineItem is a persisted reservation line, fulfilled by CompanyID.
type LineItem struct {
	ID            int64           `db:"id"`
	ItemULID      string          `db:"item_ulid"`
	ReservationID int64           `db:"reservation_id"`
	CompanyID     int64           `db:"company_id"`
	ProductID     sql.NullInt64   `db:"product_id"`
	AssetID       sql.NullInt64   `db:"asset_id"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	RentalDays    int             `db:"rental_days"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	State         string          `db:"state"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Summary is a header annotated with the number of vendors involved.
type Summary struct {
	Reservation
	CompanyCount int `db:"company_count"`
}

type Stats struct {
	Total          int64           `json:"total" db:"total"`
	Pending        int64           `json:"pending" db:"pending"`
	Confirmed      int64           `json:"confirmed" db:"confirmed"`
	Cancelled      int64           `json:"cancelled" db:"cancelled"`
	Completed      int64           `json:"completed" db:"completed"`
	Revenue        decimal.Decimal `json:"revenue" db:"revenue"`
	PendingPayment decimal.Decimal `json:"pending_payment" db:"pending_payment"`
}

// NewReservation carries what the store needs to insert a header.
type NewReservation struct {
	ClientID        int64
	CompanyIDs      []int64
	EventDate       *time.Time
	DeliveryDate    *time.Time
	ReturnDate      *time.Time
	QuotationExpiry *time.Time
	Observations    *string
	CreatedBy       string
	Now             time.Time
}

// StatusUpdate is one status transition with its stamps.
type StatusUpdate struct {
	ID     int64
	Status Status
	UserID string
	Reason string
	At     time.Time
}

type Page struct {
	Limit  int
	Offset int
}

func (p Page) Normalized() Page {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// FormatCode renders the persisted reservation code RES-YY-NNNNNN.
func FormatCode(year int, seq int64) string {
	return fmt.Sprintf("RES-%02d-%06d", year%100, seq)
}
