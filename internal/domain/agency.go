package domain

import "time"

type City struct {
	ID      int64
	Name    string
	Region  string
	Country string
}

// Agency is a partner travel agency. Reference data for the booking
// engine: created and maintained by partner management, never mutated
// here.
type Agency struct {
	Code         string
	Phone        string
	Website      string
	StreetNumber string
	Street       string
	PostalCode   string
	Country      string
	City         City
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
