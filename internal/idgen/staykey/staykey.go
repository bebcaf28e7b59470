// Package staykey derives reservation ids from the stay itself: the check-in
// day plus the room number. The same room and check-in day always map to the
// same id, so a repeated booking collides in the store instead of silently
// double-booking the night.
package staykey

import (
	"fmt"
	"time"
)

const dayLayout = "20060102"

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) ReservationID(checkIn time.Time, roomNumber int) string {
	return fmt.Sprintf("%s-%d", checkIn.UTC().Format(dayLayout), roomNumber)
}
