// Package audit retains a trail of every booking-state change. Reservations
// themselves are deleted destructively on cancel and check-out; the trail is
// what remains of them afterwards.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avstrong/hotel/internal/clock"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

type Event struct {
	ID            uuid.UUID
	Kind          string
	ReservationID string
	RoomNumber    int
	Actor         string
	At            time.Time
}

type Trail struct {
	mu     sync.Mutex
	l      *logger.Logger
	clock  clock.Clock
	events []Event
}

func NewTrail(l *logger.Logger, clk clock.Clock) *Trail {
	return &Trail{
		l:      l,
		clock:  clk,
		events: []Event{},
	}
}

// Record notes a state change. The actor is taken from the context when the
// front-end has tagged one.
func (t *Trail) Record(ctx context.Context, kind, reservationID string, roomNumber int) {
	actor, _ := hotel.ActorFromContext(ctx)

	event := Event{
		ID:            uuid.New(),
		Kind:          kind,
		ReservationID: reservationID,
		RoomNumber:    roomNumber,
		Actor:         actor,
		At:            t.clock.Now(),
	}

	t.mu.Lock()
	t.events = append(t.events, event)
	t.mu.Unlock()

	t.l.LogInfo(
		"type: audit, event: %s, kind: %s, reservation: %s, room: %v, actor: %s",
		event.ID,
		event.Kind,
		event.ReservationID,
		event.RoomNumber,
		event.Actor,
	)
}

func (t *Trail) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Event, len(t.events))
	copy(out, t.events)

	return out
}
