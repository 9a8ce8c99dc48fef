package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type chanWriter struct {
	rows chan Row
	err  error
}

func (w *chanWriter) Write(_ context.Context, row Row) error {
	w.rows <- row
	return w.err
}

func TestDBSinkRecord(t *testing.T) {
	w := &chanWriter{rows: make(chan Row, 1)}
	s := NewDBSink(w, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Record(ctx, Event{
		Name:       EventQuotationExtended,
		Entity:     "reservation",
		EntityID:   12,
		ActorID:    "alice",
		Attributes: map[string]any{"days": 5},
	})
	// cancelling the request context must not abort the write
	cancel()

	select {
	case row := <-w.rows:
		if row.Name != EventQuotationExtended || row.EntityID != 12 || row.EventULID == "" {
			t.Fatalf("unexpected row: %+v", row)
		}
		var attrs map[string]any
		if err := json.Unmarshal(row.Attributes, &attrs); err != nil || attrs["days"] != float64(5) {
			t.Fatalf("unexpected attributes: %s", row.Attributes)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("audit row was not written")
	}
}

func TestDBSinkWriteFailureIsSwallowed(t *testing.T) {
	w := &chanWriter{rows: make(chan Row, 1), err: errors.New("db down")}
	s := NewDBSink(w, zap.NewNop())

	s.Record(context.Background(), Event{Name: EventPaymentRecorded})

	select {
	case <-w.rows:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected write attempt")
	}
}

type gateWriter struct {
	release chan struct{}
	written chan Row
}

func (w *gateWriter) Write(_ context.Context, row Row) error {
	<-w.release
	w.written <- row
	return nil
}

func TestDBSinkCloseDrainsPendingWrites(t *testing.T) {
	w := &gateWriter{release: make(chan struct{}), written: make(chan Row, 2)}
	s := NewDBSink(w, zap.NewNop())

	s.Record(context.Background(), Event{Name: EventReservationCreated, EntityID: 1})

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.Close(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Close returned %v while a write was blocked", err)
	}

	close(w.release)
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(w.written) != 1 {
		t.Fatalf("pending write lost, got %d rows", len(w.written))
	}

	s.Record(context.Background(), Event{Name: EventPaymentRecorded})
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(w.written) != 1 {
		t.Fatal("event recorded after Close was written")
	}
}
