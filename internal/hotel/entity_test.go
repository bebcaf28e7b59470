package hotel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avstrong/hotel/internal/hotel"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func stay(checkInDay, checkOutDay int) hotel.DateRange {
	return hotel.DateRange{
		CheckIn:  date(2025, 8, checkInDay),
		CheckOut: date(2025, 8, checkOutDay),
	}
}

func TestDateRangeNights(t *testing.T) {
	tests := []struct {
		name string
		rng  hotel.DateRange
		want int
	}{
		{name: "two nights", rng: stay(1, 3), want: 2},
		{name: "one night", rng: stay(1, 2), want: 1},
		{name: "week", rng: stay(1, 8), want: 7},
		{name: "same day", rng: stay(1, 1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rng.Nights())
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b hotel.DateRange
		want bool
	}{
		{name: "identical", a: stay(1, 3), b: stay(1, 3), want: true},
		{name: "contained", a: stay(1, 10), b: stay(3, 5), want: true},
		{name: "partial", a: stay(1, 4), b: stay(3, 6), want: true},
		{name: "disjoint", a: stay(1, 3), b: stay(10, 12), want: false},
		{name: "touching endpoints do not overlap", a: stay(1, 3), b: stay(3, 5), want: false},
		{name: "touching endpoints reversed", a: stay(3, 5), b: stay(1, 3), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestDateRangeValid(t *testing.T) {
	assert.True(t, stay(1, 3).Valid())
	assert.False(t, stay(3, 1).Valid())
	assert.False(t, stay(1, 1).Valid())
}

func TestRoomAvailability(t *testing.T) {
	room := hotel.NewRoom(101, hotel.Standard)

	assert.True(t, room.IsAvailable(stay(1, 3)))

	room.Reserve(stay(1, 3))

	assert.False(t, room.IsAvailable(stay(1, 3)))
	assert.False(t, room.IsAvailable(stay(2, 4)))
	assert.True(t, room.IsAvailable(stay(3, 5)), "check-out day must not block the next stay")

	room.Reserve(stay(3, 5))

	assert.False(t, room.IsAvailable(stay(4, 6)))
	assert.True(t, room.IsAvailable(stay(5, 7)))
}

func TestRoomReleaseIsIdempotent(t *testing.T) {
	room := hotel.NewRoom(101, hotel.Standard)

	room.Reserve(stay(1, 3))
	room.Reserve(stay(5, 7))

	room.Release(stay(1, 3))
	assert.Len(t, room.ReservedRanges(), 1)

	room.Release(stay(1, 3))
	assert.Len(t, room.ReservedRanges(), 1)

	// Releasing an interval that only matches on one endpoint is a no-op.
	room.Release(stay(5, 8))
	assert.Len(t, room.ReservedRanges(), 1)
}

func TestRoomCharge(t *testing.T) {
	standard := hotel.NewRoom(101, hotel.Standard)
	suite := hotel.NewRoom(201, hotel.Suite)

	assert.Equal(t, 18000, standard.Charge(stay(1, 3)))
	assert.Equal(t, 60000, suite.Charge(stay(1, 3)))
	assert.Equal(t, 9000, standard.Charge(stay(1, 2)))
}

func TestCatalog(t *testing.T) {
	catalog := hotel.NewCatalog()
	catalog.Add(hotel.NewRoom(101, hotel.Standard))
	catalog.Add(hotel.NewRoom(102, hotel.Standard))
	catalog.Add(hotel.NewRoom(201, hotel.Suite))

	// Duplicate numbers are ignored, the first registration wins.
	catalog.Add(hotel.NewRoom(101, hotel.Suite))

	assert.Equal(t, 3, catalog.Len())

	room, ok := catalog.Room(101)
	assert.True(t, ok)
	assert.Equal(t, hotel.Standard, room.Variant)

	_, ok = catalog.Room(999)
	assert.False(t, ok)

	var numbers []int
	for _, r := range catalog.Rooms() {
		numbers = append(numbers, r.Number)
	}

	assert.Equal(t, []int{101, 102, 201}, numbers, "iteration order is registration order")
}
