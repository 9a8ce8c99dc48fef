package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/audit"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/directory"
	"eventrent-backend/internal/rental/integrity"
)

// Quotation validity window in days, shared by creation and extension.
const (
	QuotationMinDays = 1
	QuotationMaxDays = 90
)

type Directory interface {
	GetCompanyByID(ctx context.Context, id int64) (*directory.Company, error)
	GetClientByID(ctx context.Context, id int64) (*directory.Client, error)
	GetClientByUserID(ctx context.Context, userID string) (*directory.Client, error)
}

type Normalizer interface {
	NormalizeLineItem(ctx context.Context, item integrity.LineItem) (integrity.NormalizeResult, error)
}

type Service struct {
	repo  Repository
	dir   Directory
	norm  Normalizer
	audit audit.Sink
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, dir Directory, norm Normalizer, sink audit.Sink, log *zap.Logger) *Service {
	return &Service{repo: repo, dir: dir, norm: norm, audit: sink, log: log, now: time.Now}
}

type CreateReservationInput struct {
	ClientID      int64
	Lines         []integrity.LineItem
	EventDate     *time.Time
	DeliveryDate  *time.Time
	ReturnDate    *time.Time
	QuotationDays *int
	Observations  *string
	CreatedBy     string
}

// Detail is a header with its line items.
type Detail struct {
	Reservation
	Items []LineItem
}

// CreateReservation persists a Requested header for the client. Lines only supply the
// companies involved; attaching them is AddLineItem's job.
func (s *Service) CreateReservation(ctx context.Context, in CreateReservationInput) (*Reservation, error) {
	client, err := s.dir.GetClientByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apierr.NotFound("client not found")
	}
	if !client.IsActive() {
		return nil, apierr.Invalid("client is not active")
	}

	if len(in.Lines) == 0 {
		return nil, apierr.Invalid("at least one line item is required")
	}
	companyIDs, err := s.checkCompanies(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	nr := NewReservation{
		ClientID:     client.ID,
		CompanyIDs:   companyIDs,
		EventDate:    in.EventDate,
		DeliveryDate: in.DeliveryDate,
		ReturnDate:   in.ReturnDate,
		Observations: in.Observations,
		CreatedBy:    in.CreatedBy,
		Now:          now,
	}
	if in.QuotationDays != nil {
		d := *in.QuotationDays
		if d < QuotationMinDays || d > QuotationMaxDays {
			return nil, apierr.Invalidf("quotation_days must be between %d and %d", QuotationMinDays, QuotationMaxDays)
		}
		exp := now.AddDate(0, 0, d)
		nr.QuotationExpiry = &exp
	}

	r, err := s.repo.CreateReservation(ctx, nr)
	if err != nil {
		if errors.Is(err, ErrCompanyUnavailable) {
			return nil, apierr.Invalid("a company of this reservation is no longer active")
		}
		return nil, err
	}

	s.log.Info("reservation created",
		zap.Int64("reservation_id", r.ID),
		zap.String("code", r.Code),
		zap.Int64s("company_ids", companyIDs))
	s.audit.Record(ctx, audit.Event{
		Name:       audit.EventReservationCreated,
		Entity:     "reservation",
		EntityID:   r.ID,
		ActorID:    in.CreatedBy,
		Attributes: map[string]any{"code": r.Code, "companies": companyIDs},
	})
	return r, nil
}

// checkCompanies returns the distinct company ids of lines, each existing and active.
func (s *Service) checkCompanies(ctx context.Context, lines []integrity.LineItem) ([]int64, error) {
	seen := map[int64]bool{}
	ids := []int64{}
	for i, li := range lines {
		if li.CompanyID <= 0 {
			return nil, apierr.Invalidf("line %d: company_id is required", i+1)
		}
		if seen[li.CompanyID] {
			continue
		}
		seen[li.CompanyID] = true

		c, err := s.dir.GetCompanyByID(ctx, li.CompanyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apierr.Invalidf("company %d not found", li.CompanyID)
		}
		if !c.IsActive() {
			return nil, apierr.Invalidf("company %q is not active", c.Name)
		}
		ids = append(ids, li.CompanyID)
	}
	return ids, nil
}

// SubmitReservation normalizes every line before anything is written, then creates the
// header and attaches the normalized lines.
func (s *Service) SubmitReservation(ctx context.Context, identity auth.Identity, req CreateReservationRequest) (*Detail, error) {
	clientID, err := s.resolveClient(ctx, identity, req.ClientID)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, apierr.Invalid("at least one line item is required")
	}

	normalized := make([]integrity.LineItem, 0, len(req.Items))
	for i, li := range req.Items {
		res, err := s.norm.NormalizeLineItem(ctx, li)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, apierr.Invalidf("line %d: %s", i+1, res.Message)
		}
		normalized = append(normalized, res.Item)
	}

	r, err := s.CreateReservation(ctx, CreateReservationInput{
		ClientID:      clientID,
		Lines:         normalized,
		EventDate:     req.EventDate,
		DeliveryDate:  req.DeliveryDate,
		ReturnDate:    req.ReturnDate,
		QuotationDays: req.QuotationDays,
		Observations:  req.Observations,
		CreatedBy:     identity.UserID,
	})
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(normalized))
	for _, li := range normalized {
		items = append(items, s.newLineItem(li))
	}
	if err := s.repo.InsertLineItems(ctx, r.ID, items, s.now().UTC()); err != nil {
		// the header alone is useless to the client
		if derr := s.repo.DeleteReservation(ctx, r.ID); derr != nil {
			s.log.Error("orphan reservation header left behind", zap.Int64("reservation_id", r.ID), zap.Error(derr))
		}
		return nil, err
	}
	return s.detail(ctx, r.ID)
}

// AddLineItem normalizes item and attaches it to a Requested reservation. Company staff
// may only add lines their own company fulfils.
func (s *Service) AddLineItem(ctx context.Context, identity auth.Identity, reservationID int64, item integrity.LineItem) (*LineItem, error) {
	scope := identity.Scope()
	if item.CompanyID <= 0 {
		if id, ok := scope.CompanyID(); ok {
			item.CompanyID = id
		} else {
			return nil, apierr.Invalid("company_id is required")
		}
	}
	if !scope.Includes(item.CompanyID) {
		return nil, apierr.Forbidden("cannot add lines for another company")
	}

	r, err := s.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apierr.NotFound("reservation not found")
	}
	if r.Status != StatusRequested {
		return nil, apierr.Conflict("line items can only be added while the reservation is Requested")
	}
	if _, err := s.checkCompanies(ctx, []integrity.LineItem{item}); err != nil {
		return nil, err
	}

	res, err := s.norm.NormalizeLineItem(ctx, item)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, apierr.Invalid(res.Message)
	}

	li := s.newLineItem(res.Item)
	items := []LineItem{li}
	if err := s.repo.InsertLineItems(ctx, reservationID, items, s.now().UTC()); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apierr.NotFound("reservation not found")
		case errors.Is(err, ErrNotEditable):
			return nil, apierr.Conflict("line items can only be added while the reservation is Requested")
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		Name:     audit.EventReservationItemAdded,
		Entity:   "reservation",
		EntityID: reservationID,
		ActorID:  identity.UserID,
		Attributes: map[string]any{
			"item":     items[0].ItemULID,
			"company":  items[0].CompanyID,
			"subtotal": items[0].Subtotal.StringFixed(2),
		},
	})
	return &items[0], nil
}

func (s *Service) newLineItem(li integrity.LineItem) LineItem {
	out := LineItem{
		ItemULID:   ulid.Make().String(),
		CompanyID:  li.CompanyID,
		Quantity:   li.Quantity,
		UnitPrice:  li.UnitPrice,
		RentalDays: li.RentalDays,
		Subtotal:   li.Subtotal,
		State:      ItemPending,
		CreatedAt:  s.now().UTC(),
	}
	if li.ProductID != nil {
		out.ProductID.Int64, out.ProductID.Valid = *li.ProductID, true
	}
	if li.AssetID != nil {
		out.AssetID.Int64, out.AssetID.Valid = *li.AssetID, true
	}
	return out
}

// GetReservation is visible to platform staff, to companies with a line on it and to
// the client that owns it.
func (s *Service) GetReservation(ctx context.Context, identity auth.Identity, id int64) (*Detail, error) {
	d, err := s.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.CanOverride() {
		return d, nil
	}
	if cid, ok := identity.Scope().CompanyID(); ok {
		for _, li := range d.Items {
			if li.CompanyID == cid {
				return d, nil
			}
		}
	}
	client, err := s.dir.GetClientByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if client != nil && client.ID == d.ClientID {
		return d, nil
	}
	return nil, apierr.NotFound("reservation not found")
}

func (s *Service) detail(ctx context.Context, id int64) (*Detail, error) {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apierr.NotFound("reservation not found")
	}
	items, err := s.repo.ListLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Reservation: *r, Items: items}, nil
}

// GetReservationsForClient lists the reservations of the client profile behind userID.
func (s *Service) GetReservationsForClient(ctx context.Context, userID string) ([]Summary, error) {
	client, err := s.dir.GetClientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apierr.NotFound("no client profile for this user")
	}
	return s.repo.ListByClient(ctx, client.ID)
}

// GetReservationsForCompany lists the reservations with at least one line of the scoped company.
func (s *Service) GetReservationsForCompany(ctx context.Context, scope auth.Scope, status *Status, p Page) ([]Reservation, error) {
	if status != nil && !status.Known() {
		return nil, apierr.Invalidf("unknown status %q", *status)
	}
	return s.repo.ListByCompany(ctx, scope, status, p)
}

// UpdateReservationStatus reports false when the reservation does not exist.
func (s *Service) UpdateReservationStatus(ctx context.Context, id int64, status Status, userID string, reason *string) (bool, error) {
	if !status.Settable() {
		return false, apierr.Invalidf("status %q cannot be set", status)
	}
	u := StatusUpdate{ID: id, Status: status, UserID: userID, At: s.now().UTC()}
	if status == StatusCancelled {
		u.Reason = DefaultCancellationReason
		if reason != nil && strings.TrimSpace(*reason) != "" {
			u.Reason = strings.TrimSpace(*reason)
		}
	}

	ok, err := s.repo.UpdateStatus(ctx, u)
	if err != nil || !ok {
		return ok, err
	}

	attrs := map[string]any{"status": status}
	if u.Reason != "" {
		attrs["reason"] = u.Reason
	}
	s.audit.Record(ctx, audit.Event{
		Name:       audit.EventReservationStatusChanged,
		Entity:     "reservation",
		EntityID:   id,
		ActorID:    userID,
		Attributes: attrs,
	})
	return true, nil
}

func (s *Service) GetReservationStats(ctx context.Context, scope auth.Scope) (Stats, error) {
	return s.repo.Stats(ctx, scope)
}

// CheckAvailability always allows the booking. The same-day count is logged so a
// capacity policy can be designed from real numbers.
func (s *Service) CheckAvailability(ctx context.Context, companyID int64, eventDate time.Time) (bool, error) {
	n, err := s.repo.CountOnDate(ctx, companyID, eventDate)
	if err != nil {
		return false, fmt.Errorf("count reservations on %s: %w", eventDate.Format(time.DateOnly), err)
	}
	s.log.Debug("availability check",
		zap.Int64("company_id", companyID),
		zap.String("event_date", eventDate.Format(time.DateOnly)),
		zap.Int("same_day_reservations", n))
	return true, nil
}

// CanManage reports whether identity may act on the reservation as a vendor.
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

func (s *Service) resolveClient(ctx context.Context, identity auth.Identity, requested *int64) (int64, error) {
	if requested != nil {
		// clients book for themselves, staff may book on behalf of any client
		if identity.Role == auth.RoleClient {
			c, err := s.dir.GetClientByUserID(ctx, identity.UserID)
			if err != nil {
				return 0, err
			}
			if c == nil || c.ID != *requested {
				return 0, apierr.Forbidden("cannot book for another client")
			}
		}
		return *requested, nil
	}
	c, err := s.dir.GetClientByUserID(ctx, identity.UserID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, apierr.Invalid("client_id is required")
	}
	return c.ID, nil
}
