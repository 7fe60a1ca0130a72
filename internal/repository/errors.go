package repository

import (
	"errors"
	"fmt"
	"net"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeExclusionViolation  = "23P01"
)

// mapError translates driver errors into the domain taxonomy. The
// bookings table carries an exclusion constraint over
// (room_code, daterange) so a conflict that slips past the in-tx
// re-check still surfaces as ErrRoomConflict, never as a raw pg error.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeExclusionViolation, codeUniqueViolation:
			return domain.ErrRoomConflict
		case codeForeignKeyViolation:
			return domain.ErrNotFound
		case codeCheckViolation:
			return domain.ErrInvalidRange
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}
