package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chainhotel/pms/config"
	"github.com/chainhotel/pms/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches the room and agency reference data. Both sets are
// immutable as far as the booking engine is concerned, so entries only
// ever age out by TTL. Booking state is never cached here: the store
// transaction is the single source of truth for availability.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetRooms(ctx context.Context) ([]domain.Room, error) {
	data, err := c.client.Get(ctx, roomsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rooms []domain.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RedisCache) SetRooms(ctx context.Context, rooms []domain.Room) error {
	payload, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roomsKey(), payload, c.ttl).Err()
}

func (c *RedisCache) GetAgencies(ctx context.Context) ([]domain.Agency, error) {
	data, err := c.client.Get(ctx, agenciesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var agencies []domain.Agency
	if err := json.Unmarshal(data, &agencies); err != nil {
		return nil, err
	}
	return agencies, nil
}

func (c *RedisCache) SetAgencies(ctx context.Context, agencies []domain.Agency) error {
	payload, err := json.Marshal(agencies)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, agenciesKey(), payload, c.ttl).Err()
}

func roomsKey() string {
	return "cache:rooms"
}

func agenciesKey() string {
	return "cache:agencies"
}
