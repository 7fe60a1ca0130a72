package domain

import "time"

// Booking is a stay record for one room over a half-open date interval
// [StartDate, EndDate). Bookings carry no surrogate id: a booking is
// identified by its (room, start date) natural key.
type Booking struct {
	RoomCode   string
	StartDate  time.Time
	EndDate    time.Time
	Cost       float64
	AgencyCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookingKey is the natural key used to address an existing booking.
type BookingKey struct {
	RoomCode  string
	StartDate time.Time
}

func (b Booking) Key() BookingKey {
	return BookingKey{RoomCode: b.RoomCode, StartDate: b.StartDate}
}

// Nights returns the stay length in nights.
func (b Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Same-day checkout and checkin on adjacent
// bookings do not count as an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Covers reports whether date falls inside the booking interval under
// start <= date < end.
func (b Booking) Covers(date time.Time) bool {
	return !date.Before(b.StartDate) && date.Before(b.EndDate)
}
