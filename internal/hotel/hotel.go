package hotel

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avstrong/hotel/internal/clock"
	"github.com/avstrong/hotel/internal/logger"
)

type idGenerator interface {
	ReservationID(checkIn time.Time, roomNumber int) string
}

type logReader interface {
	Load(ctx context.Context) ([]*Reservation, error)
}

type logWriter interface {
	Append(ctx context.Context, res *Reservation) error
	RewriteAll(ctx context.Context, reservations []*Reservation) error
}

type reservationLog interface {
	logReader
	logWriter
}

type journal interface {
	Record(ctx context.Context, kind, reservationID string, roomNumber int)
}

// Manager is the authoritative reservation store: it owns the id map, keeps
// each room's blocked intervals in step with it, and drives the persistence
// log. One mutex covers the whole store; the derived id doubles as the guard
// against a search and a booking racing onto the same room and check-in day.
type Manager struct {
	mu           sync.Mutex
	l            *logger.Logger
	catalog      *Catalog
	log          reservationLog
	idGenerator  idGenerator
	clock        clock.Clock
	journal      journal
	reservations map[string]*Reservation
}

func New(
	l *logger.Logger,
	catalog *Catalog,
	log reservationLog,
	idGenerator idGenerator,
	clk clock.Clock,
	journal journal,
) *Manager {
	return &Manager{
		l:            l,
		catalog:      catalog,
		log:          log,
		idGenerator:  idGenerator,
		clock:        clk,
		journal:      journal,
		reservations: make(map[string]*Reservation),
	}
}

// Restore replays the persistence log into the store. Every readable record
// becomes a reservation again; only stays whose check-out is still ahead
// re-block their room, past stays are kept for lookup only.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.log.Load(ctx)
	if err != nil {
		return fmt.Errorf("load reservation log: %w", err)
	}

	now := m.clock.Now()

	for _, res := range records {
		room, ok := m.catalog.Room(res.RoomNumber)
		if !ok {
			m.l.LogWarnf("Skipping reservation %v: room %v is not in the catalog", res.ID, res.RoomNumber)

			continue
		}

		if now.Before(res.Range.CheckOut) {
			room.Reserve(res.Range)
		}

		m.reservations[res.ID] = res
	}

	m.l.LogInfo("Restored %v reservations", len(m.reservations))

	return nil
}

// CountAvailable reports how many rooms across the whole catalog are free for
// rng. Pure query, nothing is held.
func (m *Manager) CountAvailable(_ context.Context, rng DateRange) (int, error) {
	if !rng.Valid() {
		return 0, ErrInvalidRange
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var count int

	for _, room := range m.catalog.Rooms() {
		if room.IsAvailable(rng) {
			count++
		}
	}

	return count, nil
}

// FindRoom returns the first free room of the requested variant, in catalog
// registration order. It does not hold the room; call Book to commit.
func (m *Manager) FindRoom(_ context.Context, variantName string, rng DateRange) (*Room, error) {
	if !rng.Valid() {
		return nil, ErrInvalidRange
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, room := range m.catalog.Rooms() {
		if room.Variant.Name == variantName && room.IsAvailable(rng) {
			return room, nil
		}
	}

	return nil, fmt.Errorf("variant %v from %v to %v: %w", variantName, rng.CheckIn, rng.CheckOut, ErrNoAvailability)
}

// Book confirms a reservation on room for rng. The id is derived from the
// check-in day and the room number, so the same room and check-in day can
// never carry two live reservations: the id collision is checked before
// anything is mutated, independent of whether the date ranges overlap.
//
// A failed log append does not roll the booking back. The reservation is
// returned together with a *PersistenceError so the caller can warn that the
// record is not yet durable.
func (m *Manager) Book(ctx context.Context, room *Room, rng DateRange, password string) (*Reservation, error) {
	if !rng.Valid() {
		return nil, ErrInvalidRange
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.idGenerator.ReservationID(rng.CheckIn, room.Number)

	if _, exists := m.reservations[id]; exists {
		return nil, fmt.Errorf("reservation %v: %w", id, ErrDuplicateReservationID)
	}

	room.Reserve(rng)

	res := &Reservation{
		ID:          id,
		RoomNumber:  room.Number,
		VariantName: room.Variant.Name,
		Range:       rng,
		Password:    password,
	}
	m.reservations[id] = res

	m.record(ctx, "booked", res)

	if err := m.log.Append(ctx, res); err != nil {
		m.l.LogWarnf("Reservation %v is held in memory but not yet on disk: %v", id, err.Error())

		return res, newPersistenceError("append reservation", err)
	}

	return res, nil
}

func (m *Manager) Lookup(_ context.Context, id string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lookup(id)
}

// ActiveReservationByRoom resolves the reservation a check-out refers to when
// the operator only knows the room number: the room must be occupied. No date
// window applies — check-out normally happens on the check-out day itself,
// after the stay's last night. With several stays booked on the room, the
// earliest check-in is the one currently in it; the later ones have not
// started yet.
func (m *Manager) ActiveReservationByRoom(_ context.Context, roomNumber int) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.catalog.Room(roomNumber)
	if !ok {
		return nil, fmt.Errorf("room %v: %w", roomNumber, ErrRoomNotFound)
	}

	if !room.Occupied() {
		return nil, fmt.Errorf("room %v: %w", roomNumber, ErrNotOccupied)
	}

	var active *Reservation

	for _, res := range m.reservations {
		if res.RoomNumber != roomNumber {
			continue
		}

		if active == nil || res.Range.CheckIn.Before(active.Range.CheckIn) {
			active = res
		}
	}

	if active == nil {
		return nil, fmt.Errorf("no stay found for room %v: %w", roomNumber, ErrNotFound)
	}

	return active, nil
}

// CheckIn marks the reservation's room occupied. Occupancy is transient
// operational state: neither the blocked intervals nor the log are touched.
func (m *Manager) CheckIn(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.lookup(id)
	if err != nil {
		return err
	}

	room, ok := m.catalog.Room(res.RoomNumber)
	if !ok {
		return fmt.Errorf("room %v: %w", res.RoomNumber, ErrRoomNotFound)
	}

	if room.Occupied() {
		return fmt.Errorf("room %v: %w", room.Number, ErrAlreadyOccupied)
	}

	room.setOccupied(true)

	m.record(ctx, "checked_in", res)

	return nil
}

// CheckOut settles an occupied stay: it returns the charge, frees the room's
// interval, removes the reservation without a password (the operator vouches
// for the guest standing at the desk), and rewrites the log.
func (m *Manager) CheckOut(ctx context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.lookup(id)
	if err != nil {
		return 0, err
	}

	room, ok := m.catalog.Room(res.RoomNumber)
	if !ok {
		return 0, fmt.Errorf("room %v: %w", res.RoomNumber, ErrRoomNotFound)
	}

	if !room.Occupied() {
		return 0, fmt.Errorf("room %v: %w", room.Number, ErrNotOccupied)
	}

	charge := room.Charge(res.Range)

	room.setOccupied(false)
	room.Release(res.Range)
	delete(m.reservations, res.ID)

	m.record(ctx, "checked_out", res)

	if err := m.rewrite(ctx); err != nil {
		m.l.LogWarnf("Reservation %v is removed in memory but still on disk: %v", res.ID, err.Error())

		return charge, newPersistenceError("rewrite after check-out", err)
	}

	return charge, nil
}

// Cancel removes a reservation before the stay. The password is a plain
// equality check, a light deterrent rather than a credential; records
// persisted without one (older format) cancel freely. A guest who has
// checked in can only leave through check-out: cancelling an occupied room
// would delete the reservation while the occupancy flag stays set, and
// nothing could ever clear it again.
func (m *Manager) Cancel(ctx context.Context, id, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.lookup(id)
	if err != nil {
		return err
	}

	if res.Password != "" && res.Password != password {
		return fmt.Errorf("reservation %v: %w", id, ErrPasswordMismatch)
	}

	room, ok := m.catalog.Room(res.RoomNumber)
	if !ok {
		return fmt.Errorf("room %v: %w", res.RoomNumber, ErrRoomNotFound)
	}

	if room.Occupied() {
		return fmt.Errorf("room %v: %w", room.Number, ErrAlreadyOccupied)
	}

	room.Release(res.Range)
	delete(m.reservations, res.ID)

	m.record(ctx, "cancelled", res)

	if err := m.rewrite(ctx); err != nil {
		m.l.LogWarnf("Reservation %v is removed in memory but still on disk: %v", res.ID, err.Error())

		return newPersistenceError("rewrite after cancel", err)
	}

	return nil
}

func (m *Manager) lookup(id string) (*Reservation, error) {
	res, exists := m.reservations[id]
	if !exists {
		return nil, fmt.Errorf("reservation %v: %w", id, ErrNotFound)
	}

	return res, nil
}

// rewrite re-serialises every live reservation. The flat format has no
// in-place delete, so removal always costs a full pass. Sorted by id to keep
// the file stable across runs.
func (m *Manager) rewrite(ctx context.Context) error {
	all := make([]*Reservation, 0, len(m.reservations))

	for _, res := range m.reservations {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return m.log.RewriteAll(ctx, all)
}

func (m *Manager) record(ctx context.Context, kind string, res *Reservation) {
	if m.journal == nil {
		return
	}

	m.journal.Record(ctx, kind, res.ID, res.RoomNumber)
}
