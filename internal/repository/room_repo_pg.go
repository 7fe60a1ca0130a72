package repository

import (
	"context"
	"time"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByCode(ctx context.Context, code string) (*domain.Room, error)
	FreeBetween(ctx context.Context, start, end time.Time) ([]domain.Room, error)
	OccupiedOn(ctx context.Context, date time.Time) ([]domain.Room, error)
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

const roomColumns = `code, floor, surface_area, room_type, created_at, updated_at`

func (r *PGRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY room_type, floor, code`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func (r *PGRoomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE code=$1`, code)
	var rm domain.Room
	if err := row.Scan(&rm.Code, &rm.Floor, &rm.SurfaceArea, &rm.Type, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &rm, nil
}

// FreeBetween returns every room with no booking overlapping the
// half-open interval [start, end). The result is advisory: the room may
// be taken between this read and a later Create, which is what the
// commit-time re-check in the booking repository is for.
func (r *PGRoomRepository) FreeBetween(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+roomColumns+`
		FROM rooms r
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_code = r.code
			  AND NOT (b.end_date <= $1 OR b.start_date >= $2)
		)
		ORDER BY room_type, floor, code`, start, end)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func (r *PGRoomRepository) OccupiedOn(ctx context.Context, date time.Time) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+roomColumns+`
		FROM rooms r
		WHERE EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_code = r.code
			  AND b.start_date <= $1 AND b.end_date > $1
		)
		ORDER BY room_type, floor, code`, date)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func scanRooms(rows pgx.Rows) ([]domain.Room, error) {
	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.Code, &rm.Floor, &rm.SurfaceArea, &rm.Type, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		rooms = append(rooms, rm)
	}
	return rooms, mapError(rows.Err())
}

var _ RoomRepository = (*PGRoomRepository)(nil)
