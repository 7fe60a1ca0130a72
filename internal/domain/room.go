package domain

import "time"

type RoomType string

const (
	RoomTypeSingle RoomType = "SINGLE"
	RoomTypeDouble RoomType = "DOUBLE"
	RoomTypeTriple RoomType = "TRIPLE"
	RoomTypeSuite  RoomType = "SUITE"
)

type Room struct {
	Code        string
	Floor       int
	SurfaceArea float64
	Type        RoomType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Occupancy splits the room inventory for a single date. A room is
// occupied when some booking interval contains the date under
// start <= date < end.
type Occupancy struct {
	Date     time.Time
	Occupied []Room
	Free     []Room
}
