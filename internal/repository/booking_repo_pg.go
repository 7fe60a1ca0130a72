package repository

import (
	"context"
	"time"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListByRoom(ctx context.Context, roomCode string) ([]domain.Booking, error)
	Get(ctx context.Context, key domain.BookingKey) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, key domain.BookingKey, booking *domain.Booking) error
	Delete(ctx context.Context, key domain.BookingKey) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `room_code, start_date, end_date, cost, agency_code, created_at, updated_at`

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY start_date DESC, room_code`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *PGBookingRepository) ListByRoom(ctx context.Context, roomCode string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE room_code=$1 ORDER BY start_date`, roomCode)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *PGBookingRepository) Get(ctx context.Context, key domain.BookingKey) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE room_code=$1 AND start_date=$2`, key.RoomCode, key.StartDate)
	var b domain.Booking
	if err := row.Scan(&b.RoomCode, &b.StartDate, &b.EndDate, &b.Cost, &b.AgencyCode, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}

// Create inserts a booking after re-checking the no-overlap invariant
// inside a single transaction. The room row is locked first so that two
// concurrent bookings for the same room serialize here; bookings for
// different rooms touch different rows and never block each other.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	if err := lockRoom(ctx, tx, booking.RoomCode); err != nil {
		return err
	}

	conflict, err := overlapExists(ctx, tx, booking.RoomCode, booking.StartDate, booking.EndDate, nil)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrRoomConflict
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO bookings (room_code, start_date, end_date, cost, agency_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		booking.RoomCode, booking.StartDate, booking.EndDate, booking.Cost, booking.AgencyCode).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return mapError(err)
	}

	return mapError(tx.Commit(ctx))
}

// Update rewrites the booking identified by key. The overlap re-check
// excludes the booking's own row, so shrinking or shifting a stay over
// its previous interval is not a self-conflict.
func (r *PGBookingRepository) Update(ctx context.Context, key domain.BookingKey, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	if err := lockRoom(ctx, tx, key.RoomCode); err != nil {
		return err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE room_code=$1 AND start_date=$2)`,
		key.RoomCode, key.StartDate).Scan(&exists); err != nil {
		return mapError(err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	conflict, err := overlapExists(ctx, tx, key.RoomCode, booking.StartDate, booking.EndDate, &key.StartDate)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrRoomConflict
	}

	if err := tx.QueryRow(ctx, `
		UPDATE bookings
		SET start_date=$1, end_date=$2, cost=$3, agency_code=$4, updated_at=now()
		WHERE room_code=$5 AND start_date=$6
		RETURNING created_at, updated_at`,
		booking.StartDate, booking.EndDate, booking.Cost, booking.AgencyCode,
		key.RoomCode, key.StartDate).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return mapError(err)
	}
	booking.RoomCode = key.RoomCode

	return mapError(tx.Commit(ctx))
}

// Delete removes the booking identified by key. Deleting a key that no
// longer exists is an error, not a no-op: callers should learn whether
// the delete had effect.
func (r *PGBookingRepository) Delete(ctx context.Context, key domain.BookingKey) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE room_code=$1 AND start_date=$2`, key.RoomCode, key.StartDate)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func lockRoom(ctx context.Context, tx pgx.Tx, roomCode string) error {
	var code string
	if err := tx.QueryRow(ctx, `SELECT code FROM rooms WHERE code=$1 FOR UPDATE`, roomCode).Scan(&code); err != nil {
		return mapError(err)
	}
	return nil
}

// overlapExists runs the half-open interval check inside the caller's
// transaction. excludeStart, when set, leaves out the booking currently
// being updated.
func overlapExists(ctx context.Context, tx pgx.Tx, roomCode string, start, end time.Time, excludeStart *time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_code=$1
			  AND NOT (end_date <= $2 OR start_date >= $3)`
	args := []any{roomCode, start, end}
	if excludeStart != nil {
		query += ` AND start_date <> $4`
		args = append(args, *excludeStart)
	}
	query += `)`

	var exists bool
	if err := tx.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.RoomCode, &b.StartDate, &b.EndDate, &b.Cost, &b.AgencyCode, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		bookings = append(bookings, b)
	}
	return bookings, mapError(rows.Err())
}

var _ BookingRepository = (*PGBookingRepository)(nil)
