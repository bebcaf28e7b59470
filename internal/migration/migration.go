// Package migration registers the fixed room catalog. Rooms live for the
// whole process, so this runs once at startup, before any reservations are
// restored from the log.
package migration

import (
	"context"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

func Up(_ context.Context, l *logger.Logger, catalog *hotel.Catalog) error {
	rooms := []*hotel.Room{
		hotel.NewRoom(101, hotel.Standard),
		hotel.NewRoom(102, hotel.Standard),
		hotel.NewRoom(201, hotel.Suite),
	}

	for _, room := range rooms {
		catalog.Add(room)
	}

	l.LogInfo("Registered %v rooms in the catalog", catalog.Len())

	return nil
}
