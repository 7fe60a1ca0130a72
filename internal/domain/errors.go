// Error values shared by the repositories and services. Sentinels let
// the HTTP layer translate failures without inspecting message text:
// ErrRoomConflict becomes a 409, ErrNotFound a 404, and so on.
package domain

import "errors"

// ErrInvalidRange is returned when a requested stay interval does not
// satisfy start < end. The caller must correct its input.
var ErrInvalidRange = errors.New("start date must be before end date")

// ErrRoomConflict is returned when a requested interval overlaps an
// existing booking for the same room, whether detected up front or by
// the commit-time re-check inside the transaction.
var ErrRoomConflict = errors.New("room already booked for an overlapping interval")

// ErrInvalidCost is returned when a booking cost is negative.
var ErrInvalidCost = errors.New("cost must not be negative")

// ErrNotFound is returned when the target of an update or delete does
// not exist, or when a referenced room or agency is unknown.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable is returned when the underlying store cannot be
// reached. The engine does not retry; that policy belongs to callers.
var ErrStoreUnavailable = errors.New("booking store unavailable")
