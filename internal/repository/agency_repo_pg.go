package repository

import (
	"context"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AgencyRepository interface {
	List(ctx context.Context) ([]domain.Agency, error)
	GetByCode(ctx context.Context, code string) (*domain.Agency, error)
}

type PGAgencyRepository struct {
	db *pgxpool.Pool
}

func NewAgencyRepository(db *pgxpool.Pool) AgencyRepository {
	return &PGAgencyRepository{db: db}
}

const agencyQuery = `
	SELECT a.code, a.phone, a.website, a.street_number, a.street, a.postal_code, a.country,
	       c.id, c.name, c.region, c.country,
	       a.created_at, a.updated_at
	FROM agencies a
	JOIN cities c ON c.id = a.city_id`

func (r *PGAgencyRepository) List(ctx context.Context) ([]domain.Agency, error) {
	rows, err := r.db.Query(ctx, agencyQuery+` ORDER BY a.code`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	agencies := make([]domain.Agency, 0)
	for rows.Next() {
		var a domain.Agency
		if err := rows.Scan(&a.Code, &a.Phone, &a.Website, &a.StreetNumber, &a.Street, &a.PostalCode, &a.Country,
			&a.City.ID, &a.City.Name, &a.City.Region, &a.City.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		agencies = append(agencies, a)
	}
	return agencies, mapError(rows.Err())
}

func (r *PGAgencyRepository) GetByCode(ctx context.Context, code string) (*domain.Agency, error) {
	row := r.db.QueryRow(ctx, agencyQuery+` WHERE a.code=$1`, code)
	var a domain.Agency
	if err := row.Scan(&a.Code, &a.Phone, &a.Website, &a.StreetNumber, &a.Street, &a.PostalCode, &a.Country,
		&a.City.ID, &a.City.Name, &a.City.Region, &a.City.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

var _ AgencyRepository = (*PGAgencyRepository)(nil)
