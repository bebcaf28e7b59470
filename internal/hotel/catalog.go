package hotel

// Catalog owns every physical room for the life of the process. Rooms are
// registered once at startup and never removed; iteration order is
// registration order, which is what room assignment relies on.
type Catalog struct {
	rooms    []*Room
	byNumber map[int]*Room
}

func NewCatalog() *Catalog {
	return &Catalog{
		rooms:    []*Room{},
		byNumber: make(map[int]*Room),
	}
}

// Add registers a room. A second room under an already taken number is
// ignored: the number is the identity and the first registration wins.
func (c *Catalog) Add(room *Room) {
	if _, exists := c.byNumber[room.Number]; exists {
		return
	}

	c.rooms = append(c.rooms, room)
	c.byNumber[room.Number] = room
}

func (c *Catalog) Room(number int) (*Room, bool) {
	room, ok := c.byNumber[number]

	return room, ok
}

func (c *Catalog) Rooms() []*Room {
	return c.rooms
}

func (c *Catalog) Len() int {
	return len(c.rooms)
}
