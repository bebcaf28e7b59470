package console_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/hotel/internal/clock"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/idgen/staykey"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/storage/flatfile"
	"github.com/avstrong/hotel/internal/transport/console"
)

type desk struct {
	manager *hotel.Manager
	catalog *hotel.Catalog
	path    string
}

func newDesk(t *testing.T, clk clock.Clock) *desk {
	t.Helper()

	l := logger.New(log.New(io.Discard, "", 0))
	path := filepath.Join(t.TempDir(), "reservations.txt")

	catalog := hotel.NewCatalog()
	catalog.Add(hotel.NewRoom(101, hotel.Standard))
	catalog.Add(hotel.NewRoom(102, hotel.Standard))
	catalog.Add(hotel.NewRoom(201, hotel.Suite))

	store := flatfile.New(flatfile.Config{L: l, Path: path})
	manager := hotel.New(l, catalog, store, staykey.New(), clk, nil)

	return &desk{manager: manager, catalog: catalog, path: path}
}

func runScript(t *testing.T, d *desk, operatorPassword string, script ...string) string {
	t.Helper()

	var out bytes.Buffer

	ui := console.New(console.Conf{
		L:                logger.New(log.New(io.Discard, "", 0)),
		In:               strings.NewReader(strings.Join(script, "\n") + "\n"),
		Out:              &out,
		OperatorPassword: operatorPassword,
		DateFormat:       "2006/01/02",
	}, d.manager)

	require.NoError(t, ui.Run(context.Background()))

	return out.String()
}

func TestReserveFlow(t *testing.T) {
	d := newDesk(t, clock.NewMockClock(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)))

	out := runScript(t, d, "",
		"1",
		"2025/08/01",
		"2025/08/03",
		"1", // Standard
		"secret",
		"0",
	)

	assert.Contains(t, out, "Rooms free for a 2-night stay: 3")
	assert.Contains(t, out, "Holding room 101 (Standard).")
	assert.Contains(t, out, "Reservation ID: 20250801-101")
	assert.Contains(t, out, "Charge: 18000")

	// The booking reached the engine and the log.
	_, err := d.manager.Lookup(context.Background(), "20250801-101")
	assert.NoError(t, err)
}

func TestReserveRejectsBackwardsDates(t *testing.T) {
	d := newDesk(t, clock.NewMockClock(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)))

	out := runScript(t, d, "",
		"1",
		"2025/08/03",
		"2025/08/01",
		"0",
	)

	assert.Contains(t, out, "Check-out must be after check-in.")
}

func TestReserveRejectsCommaInPassword(t *testing.T) {
	d := newDesk(t, clock.NewMockClock(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)))

	out := runScript(t, d, "",
		"1",
		"2025/08/01",
		"2025/08/03",
		"1",
		"a,b",
		"0",
	)

	assert.Contains(t, out, "must not contain commas")

	_, err := d.manager.Lookup(context.Background(), "20250801-101")
	assert.Error(t, err)
}

func TestCheckInAndOutFlow(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC))
	d := newDesk(t, clk)

	ctx := context.Background()
	rng := hotel.DateRange{
		CheckIn:  time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC),
	}

	room, err := d.manager.FindRoom(ctx, hotel.Standard.Name, rng)
	require.NoError(t, err)

	res, err := d.manager.Book(ctx, room, rng, "secret")
	require.NoError(t, err)

	out := runScript(t, d, "op",
		"2",
		"op",
		res.ID,
		"3",
		"op",
		"101",
		"0",
	)

	assert.Contains(t, out, "Check-in complete.")
	assert.Contains(t, out, "Charge due: 18000")
	assert.Contains(t, out, "Check-out complete.")

	_, err = d.manager.Lookup(ctx, res.ID)
	assert.ErrorIs(t, err, hotel.ErrNotFound)
}

func TestOperatorGateRejectsWrongPassword(t *testing.T) {
	d := newDesk(t, clock.NewMockClock(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)))

	out := runScript(t, d, "op",
		"2",
		"wrong",
		"0",
	)

	assert.Contains(t, out, "Operator password rejected.")
}

func TestCancelFlow(t *testing.T) {
	d := newDesk(t, clock.NewMockClock(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)))

	ctx := context.Background()
	rng := hotel.DateRange{
		CheckIn:  time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC),
	}

	room, err := d.manager.FindRoom(ctx, hotel.Standard.Name, rng)
	require.NoError(t, err)

	res, err := d.manager.Book(ctx, room, rng, "secret")
	require.NoError(t, err)

	out := runScript(t, d, "",
		"4",
		res.ID,
		"wrong",
		"4",
		res.ID,
		"secret",
		"0",
	)

	assert.Contains(t, out, "The password does not match; the reservation stands.")
	assert.Contains(t, out, "Reservation "+res.ID+" cancelled.")

	_, err = d.manager.Lookup(ctx, res.ID)
	assert.ErrorIs(t, err, hotel.ErrNotFound)
}
