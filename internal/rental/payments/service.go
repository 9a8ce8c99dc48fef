package payments

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/audit"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/reservations"
)

// Access decides whether the caller may touch a reservation's money.
type Access interface {
	CanManage(ctx context.Context, id int64, identity auth.Identity) (bool, error)
}

type Service struct {
	repo   Repository
	access Access
	audit  audit.Sink
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, access Access, sink audit.Sink, log *zap.Logger) *Service {
	return &Service{repo: repo, access: access, audit: sink, log: log, now: time.Now}
}

func (s *Service) RecordPayment(ctx context.Context, identity auth.Identity, reservationID int64, in RecordPaymentRequest) (ReceiptResponse, error) {
	if !in.Amount.IsPositive() {
		return ReceiptResponse{}, apierr.Invalid("amount must be > 0")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return ReceiptResponse{}, apierr.Invalid("amount has more than two decimals")
	}
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if !reservations.ValidPaymentMethod(method) {
		return ReceiptResponse{}, apierr.Invalid("method must be one of cash, card, transfer")
	}
	if err := s.authorize(ctx, identity, reservationID); err != nil {
		return ReceiptResponse{}, err
	}

	now := s.now().UTC()
	t := &Transaction{
		PaymentULID:   ulid.Make().String(),
		ReservationID: reservationID,
		Amount:        in.Amount,
		Method:        method,
		RecordedBy:    identity.UserID,
		PaidAt:        now,
		CreatedAt:     now,
	}
	if in.PaidAt != nil {
		t.PaidAt = in.PaidAt.UTC()
	}
	if in.Reference != nil && strings.TrimSpace(*in.Reference) != "" {
		t.Reference = sql.NullString{String: strings.TrimSpace(*in.Reference), Valid: true}
	}

	bal, err := s.repo.Record(ctx, t)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			return ReceiptResponse{}, apierr.NotFound("reservation not found")
		case errors.Is(err, ErrNotPayable):
			return ReceiptResponse{}, apierr.Conflict("cancelled reservations do not accept payments")
		case errors.Is(err, ErrOverpayment):
			return ReceiptResponse{}, apierr.Invalid("payment exceeds outstanding balance")
		}
		return ReceiptResponse{}, err
	}

	s.log.Info("payment recorded",
		zap.Int64("reservation_id", reservationID),
		zap.String("payment_id", t.PaymentULID),
		zap.String("payment_status", bal.PaymentStatus))
	s.audit.Record(ctx, audit.Event{
		Name:     audit.EventPaymentRecorded,
		Entity:   "reservation",
		EntityID: reservationID,
		ActorID:  identity.UserID,
		Attributes: map[string]any{
			"payment": t.PaymentULID,
			"amount":  t.Amount.StringFixed(2),
			"method":  method,
		},
	})
	return ReceiptResponse{Transaction: toResponse(t), Balance: bal, Outstanding: bal.Outstanding()}, nil
}

func (s *Service) ListTransactions(ctx context.Context, identity auth.Identity, reservationID int64) ([]TransactionResponse, error) {
	if err := s.authorize(ctx, identity, reservationID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListTransactions(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}

func (s *Service) authorize(ctx context.Context, identity auth.Identity, reservationID int64) error {
	ok, err := s.access.CanManage(ctx, reservationID, identity)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.Forbidden("no line of this reservation belongs to your company")
	}
	return nil
}
