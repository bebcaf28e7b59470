package hotel

import "time"

// DateRange is a half-open stay interval: the guest sleeps every night from
// CheckIn up to, but not including, CheckOut.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour)) //nolint:gomnd
}

// Overlaps reports whether two stays compete for at least one night. Touching
// endpoints do not overlap: a guest may check in on another's check-out day.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r DateRange) Valid() bool {
	return r.CheckIn.Before(r.CheckOut)
}

// Variant is a room category. There is no behaviour behind a variant, only a
// name and a rate, so it is a plain value and not a hierarchy.
type Variant struct {
	Name        string `json:"name"`
	NightlyRate int    `json:"nightly_rate"`
}

var (
	Standard = Variant{Name: "Standard", NightlyRate: 9000}
	Suite    = Variant{Name: "Suite", NightlyRate: 30000}
)

// Room is a physical room. Its reserved intervals are a projection of the
// live reservations, maintained by the Manager; the Manager's id map stays
// authoritative.
type Room struct {
	Number   int
	Variant  Variant
	reserved []DateRange
	occupied bool
}

func NewRoom(number int, variant Variant) *Room {
	return &Room{
		Number:   number,
		Variant:  variant,
		reserved: []DateRange{},
		occupied: false,
	}
}

func (r *Room) IsAvailable(rng DateRange) bool {
	for _, d := range r.reserved {
		if d.Overlaps(rng) {
			return false
		}
	}

	return true
}

// Reserve blocks rng unconditionally. Callers confirm availability first;
// keeping this unchecked lets log replay reuse the same path.
func (r *Room) Reserve(rng DateRange) {
	r.reserved = append(r.reserved, rng)
}

// Release removes the interval matching rng on both endpoints. Releasing an
// interval that is not blocked is a no-op, so a double release is harmless.
func (r *Room) Release(rng DateRange) {
	for i, d := range r.reserved {
		if d.CheckIn.Equal(rng.CheckIn) && d.CheckOut.Equal(rng.CheckOut) {
			r.reserved = append(r.reserved[:i], r.reserved[i+1:]...)

			return
		}
	}
}

func (r *Room) ReservedRanges() []DateRange {
	out := make([]DateRange, len(r.reserved))
	copy(out, r.reserved)

	return out
}

func (r *Room) Occupied() bool {
	return r.occupied
}

func (r *Room) setOccupied(v bool) {
	r.occupied = v
}

func (r *Room) Charge(rng DateRange) int {
	return r.Variant.NightlyRate * rng.Nights()
}

// Reservation is a confirmed booking. VariantName duplicates what the catalog
// already knows about the room; it is carried so the persisted record stays
// readable on its own.
type Reservation struct {
	ID          string    `json:"id"`
	RoomNumber  int       `json:"room_number"`
	VariantName string    `json:"variant_name"`
	Range       DateRange `json:"range"`
	Password    string    `json:"-"`
}
