package reservations

import (
	"time"

	"github.com/shopspring/decimal"

	"eventrent-backend/internal/rental/integrity"
)

type CreateReservationRequest struct {
	// ClientID is taken from the caller's client profile when omitted.
	ClientID      *int64               `json:"client_id,omitempty"`
	EventDate     *time.Time           `json:"event_date,omitempty"`
	DeliveryDate  *time.Time           `json:"delivery_date,omitempty"`
	ReturnDate    *time.Time           `json:"return_date,omitempty"`
	QuotationDays *int                 `json:"quotation_days,omitempty"`
	Observations  *string              `json:"observations,omitempty"`
	Items         []integrity.LineItem `json:"items"`
}

type UpdateStatusRequest struct {
	Status Status  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

type ReservationResponse struct {
	ID                 int64           `json:"id"`
	Code               string          `json:"code"`
	ClientID           int64           `json:"client_id"`
	Status             Status          `json:"status"`
	EventDate          *time.Time      `json:"event_date,omitempty"`
	DeliveryDate       *time.Time      `json:"delivery_date,omitempty"`
	ReturnDate         *time.Time      `json:"return_date,omitempty"`
	ActualReturnDate   *time.Time      `json:"actual_return_date,omitempty"`
	Total              decimal.Decimal `json:"total"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
	PaymentStatus      string          `json:"payment_status"`
	PaymentMethod      *string         `json:"payment_method,omitempty"`
	QuotationExpiry    *time.Time      `json:"quotation_expiry,omitempty"`
	ConvertedAt        *time.Time      `json:"converted_at,omitempty"`
	ApprovedBy         *string         `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time      `json:"approved_at,omitempty"`
	CancelledBy        *string         `json:"cancelled_by,omitempty"`
	CancellationReason *string         `json:"cancellation_reason,omitempty"`
	Observations       *string         `json:"observations,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type LineItemResponse struct {
	ID         string          `json:"id"`
	CompanyID  int64           `json:"company_id"`
	ProductID  *int64          `json:"product_id,omitempty"`
	AssetID    *int64          `json:"asset_id,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	RentalDays int             `json:"rental_days"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	State      string          `json:"state"`
}

type DetailResponse struct {
	ReservationResponse
	Items []LineItemResponse `json:"items"`
}

type SummaryResponse struct {
	ReservationResponse
	CompanyCount int `json:"company_count"`
}

// ToResponse is shared with the quotation endpoints.
func ToResponse(r *Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                 r.ID,
		Code:               r.Code,
		ClientID:           r.ClientID,
		Status:             r.Status,
		EventDate:          timePtr(r.EventDate.Time, r.EventDate.Valid),
		DeliveryDate:       timePtr(r.DeliveryDate.Time, r.DeliveryDate.Valid),
		ReturnDate:         timePtr(r.ReturnDate.Time, r.ReturnDate.Valid),
		ActualReturnDate:   timePtr(r.ActualReturnDate.Time, r.ActualReturnDate.Valid),
		Total:              r.Total,
		AmountPaid:         r.AmountPaid,
		PaymentStatus:      r.PaymentStatus,
		PaymentMethod:      strPtr(r.PaymentMethod.String, r.PaymentMethod.Valid),
		QuotationExpiry:    timePtr(r.QuotationExpiry.Time, r.QuotationExpiry.Valid),
		ConvertedAt:        timePtr(r.ConvertedAt.Time, r.ConvertedAt.Valid),
		ApprovedBy:         strPtr(r.ApprovedBy.String, r.ApprovedBy.Valid),
		ApprovedAt:         timePtr(r.ApprovedAt.Time, r.ApprovedAt.Valid),
		CancelledBy:        strPtr(r.CancelledBy.String, r.CancelledBy.Valid),
		CancellationReason: strPtr(r.CancellationReason.String, r.CancellationReason.Valid),
		Observations:       strPtr(r.Observations.String, r.Observations.Valid),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toLineItemResponse(li LineItem) LineItemResponse {
	out := LineItemResponse{
		ID:         li.ItemULID,
		CompanyID:  li.CompanyID,
		Quantity:   li.Quantity,
		UnitPrice:  li.UnitPrice,
		RentalDays: li.RentalDays,
		Subtotal:   li.Subtotal,
		State:      li.State,
	}
	if li.ProductID.Valid {
		v := li.ProductID.Int64
		out.ProductID = &v
	}
	if li.AssetID.Valid {
		v := li.AssetID.Int64
		out.AssetID = &v
	}
	return out
}

func toDetailResponse(d *Detail) DetailResponse {
	out := DetailResponse{ReservationResponse: ToResponse(&d.Reservation), Items: make([]LineItemResponse, 0, len(d.Items))}
	for _, li := range d.Items {
		out.Items = append(out.Items, toLineItemResponse(li))
	}
	return out
}

func timePtr(t time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	return &t
}

func strPtr(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
