package quotations

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/audit"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/platform/db"
	"eventrent-backend/internal/rental/reservations"
)

type Service struct {
	repo  Repository
	audit audit.Sink
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, sink audit.Sink, log *zap.Logger) *Service {
	return &Service{repo: repo, audit: sink, log: log, now: time.Now}
}

// ExtendExpiry adds days to the expiry of an open quotation, expired or not.
func (s *Service) ExtendExpiry(ctx context.Context, id int64, days int, actorID string) (Result, error) {
	if days < reservations.QuotationMinDays || days > reservations.QuotationMaxDays {
		return rejected(MsgExtendRange), nil
	}
	changed, err := s.repo.Extend(ctx, id, days, s.now().UTC())
	if err != nil {
		return Result{}, err
	}
	if !changed {
		return s.rejectUnchanged(ctx, id)
	}

	s.audit.Record(ctx, audit.Event{
		Name:       audit.EventQuotationExtended,
		Entity:     "reservation",
		EntityID:   id,
		ActorID:    actorID,
		Attributes: map[string]any{"days": days},
	})
	return accepted(), nil
}

// Convert turns an unexpired quotation into an Approved reservation.
func (s *Service) Convert(ctx context.Context, id int64, in ConvertInput) (ConvertResult, error) {
	in.PaymentMethod = strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if !reservations.ValidPaymentMethod(in.PaymentMethod) {
		return ConvertResult{Result: rejected(MsgNeedsPayment)}, nil
	}

	now := s.now().UTC()
	changed, err := s.repo.Convert(ctx, id, in, now)
	if err != nil {
		return ConvertResult{}, err
	}
	if !changed {
		r, err := s.explainUnchanged(ctx, id)
		if err != nil || !r.OK {
			return ConvertResult{Result: r}, err
		}
		// still open, so the expiry guard is what stopped it
		return ConvertResult{Result: rejected(MsgExpired)}, nil
	}

	res, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return ConvertResult{}, err
	}
	if res == nil {
		return ConvertResult{}, apierr.NotFound("quotation not found")
	}

	s.log.Info("quotation converted",
		zap.Int64("reservation_id", id),
		zap.String("payment_method", in.PaymentMethod))
	s.audit.Record(ctx, audit.Event{
		Name:       audit.EventQuotationConverted,
		Entity:     "reservation",
		EntityID:   id,
		ActorID:    in.ApproverID,
		Attributes: map[string]any{"payment_method": in.PaymentMethod},
	})
	return ConvertResult{Result: accepted(), Reservation: res}, nil
}

// Delete hard-deletes a quotation that is still Requested.
func (s *Service) Delete(ctx context.Context, id int64, actorID string) (Result, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if db.IsMySQLError(err, db.ErrNumRowReferenced) {
			return rejected("quotation has recorded payments"), nil
		}
		return Result{}, err
	}
	if !deleted {
		return s.rejectUnchanged(ctx, id)
	}
	s.audit.Record(ctx, audit.Event{
		Name:     audit.EventQuotationDeleted,
		Entity:   "reservation",
		EntityID: id,
		ActorID:  actorID,
	})
	return accepted(), nil
}

// explainUnchanged tells apart a missing reservation, a header that is no open
// quotation and one that still is (OK=true).
func (s *Service) explainUnchanged(ctx context.Context, id int64) (Result, error) {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if r == nil {
		return Result{}, apierr.NotFound("quotation not found")
	}
	if r.Status != reservations.StatusRequested || !r.QuotationExpiry.Valid || r.ConvertedAt.Valid {
		return rejected(MsgNotOpen), nil
	}
	return accepted(), nil
}

func (s *Service) rejectUnchanged(ctx context.Context, id int64) (Result, error) {
	r, err := s.explainUnchanged(ctx, id)
	if err != nil || !r.OK {
		return r, err
	}
	return rejected(MsgConcurrent), nil
}

func (s *Service) Stats(ctx context.Context, scope auth.Scope) (Stats, error) {
	return s.repo.Stats(ctx, scope, s.now().UTC())
}

func (s *Service) List(ctx context.Context, scope auth.Scope, state *State, p reservations.Page) ([]reservations.Reservation, error) {
	if state != nil && !state.Valid() {
		return nil, apierr.Invalidf("unknown state %q", *state)
	}
	return s.repo.List(ctx, scope, state, s.now().UTC(), p)
}

// CanManage requires a company on one of the quotation's lines unless identity has override.
func (s *Service) CanManage(ctx context.Context, id int64, identity auth.Identity) (bool, error) {
	if identity.CanOverride() {
		return true, nil
	}
	cid, ok := identity.Scope().CompanyID()
	if !ok {
		return false, nil
	}
	ids, err := s.repo.CompanyIDs(ctx, id)
	if err != nil {
		return false, err
	}
	for _, v := range ids {
		if v == cid {
			return true, nil
		}
	}
	return false, nil
}
