// Package audit records domain events without ever failing the operation that emitted them.
package audit

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReservationItemAdded     = "reservation.item_added"
	EventQuotationExtended        = "quotation.extended"
	EventQuotationConverted       = "quotation.converted"
	EventQuotationDeleted         = "quotation.deleted"
	EventPaymentRecorded          = "payment.recorded"
	EventAssetStateChanged        = "asset.state_changed"
)

type Event struct {
	Name       string
	Entity     string
	EntityID   int64
	ActorID    string
	Attributes map[string]any
}

// Sink accepts events fire-and-forget.
type Sink interface {
	Record(ctx context.Context, ev Event)
}

// Writer is the persistence side of DBSink.
type Writer interface {
	Write(ctx context.Context, row Row) error
}

type Row struct {
	EventULID  string    `db:"event_ulid"`
	Name       string    `db:"name"`
	Entity     string    `db:"entity"`
	EntityID   int64     `db:"entity_id"`
	ActorID    string    `db:"actor_id"`
	Attributes []byte    `db:"attributes"`
	OccurredAt time.Time `db:"occurred_at"`
}

type DBSink struct {
	w       Writer
	log     *zap.Logger
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

func NewDBSink(w Writer, log *zap.Logger) *DBSink {
	return &DBSink{w: w, log: log, timeout: 3 * time.Second, now: time.Now}
}

// Record writes asynchronously on a context detached from the request.
func (s *DBSink) Record(ctx context.Context, ev Event) {
	row, err := s.toRow(ev)
	if err != nil {
		s.log.Warn("audit event dropped", zap.String("event", ev.Name), zap.Error(err))
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn("audit event dropped after close", zap.String("event", ev.Name))
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		if err := s.w.Write(wctx, row); err != nil {
			s.log.Warn("audit write failed",
				zap.String("event", ev.Name),
				zap.String("entity", ev.Entity),
				zap.Int64("entity_id", ev.EntityID),
				zap.Error(err),
			)
		}
	}()
}

// Close stops accepting events and waits for pending writes until ctx is done.
func (s *DBSink) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DBSink) toRow(ev Event) (Row, error) {
	now := s.now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return Row{}, err
	}
	attrs := []byte("{}")
	if len(ev.Attributes) > 0 {
		if attrs, err = json.Marshal(ev.Attributes); err != nil {
			return Row{}, err
		}
	}
	return Row{
		EventULID:  id.String(),
		Name:       ev.Name,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		ActorID:    ev.ActorID,
		Attributes: attrs,
		OccurredAt: now,
	}, nil
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

func (s *Store) Write(ctx context.Context, row Row) error {
	const q = `
	INSERT INTO audit_events (event_ulid, name, entity, entity_id, actor_id, attributes, occurred_at)
	VALUES (:event_ulid, :name, :entity, :entity_id, :actor_id, :attributes, :occurred_at)`
	_, err := s.db.NamedExecContext(ctx, q, row)
	return err
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, Event) {}
