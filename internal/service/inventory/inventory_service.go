package inventory

import (
	"context"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/chainhotel/pms/internal/repository"
)

type InventoryUseCase interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, code string) (*domain.Room, error)
	ListAgencies(ctx context.Context) ([]domain.Agency, error)
}

// Cache holds the reference data read-through cache. Rooms and agencies
// are managed outside the booking engine and change rarely, so entries
// simply expire by TTL.
type Cache interface {
	GetRooms(ctx context.Context) ([]domain.Room, error)
	SetRooms(ctx context.Context, rooms []domain.Room) error
	GetAgencies(ctx context.Context) ([]domain.Agency, error)
	SetAgencies(ctx context.Context, agencies []domain.Agency) error
}

type InventoryService struct {
	rooms    repository.RoomRepository
	agencies repository.AgencyRepository
	cache    Cache
}

func NewInventoryService(rooms repository.RoomRepository, agencies repository.AgencyRepository, cache Cache) *InventoryService {
	return &InventoryService{rooms: rooms, agencies: agencies, cache: cache}
}

func (s *InventoryService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRooms(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRooms(ctx, rooms)
	}
	return rooms, nil
}

func (s *InventoryService) GetRoom(ctx context.Context, code string) (*domain.Room, error) {
	return s.rooms.GetByCode(ctx, code)
}

func (s *InventoryService) ListAgencies(ctx context.Context) ([]domain.Agency, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAgencies(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAgencies(ctx, agencies)
	}
	return agencies, nil
}

var _ InventoryUseCase = (*InventoryService)(nil)
