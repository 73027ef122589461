package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Cup-Trail/cup-trail-sub000/pkg/places"
)

// PlaceCache backs the place details cache with Redis so lookups survive
// restarts and are shared across instances.
type PlaceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPlaceCache(client *redis.Client, ttl time.Duration) *PlaceCache {
	return &PlaceCache{client: client, ttl: ttl}
}

func placeKey(placeID string) string {
	return fmt.Sprintf("place:%s", placeID)
}

func (c *PlaceCache) Get(ctx context.Context, placeID string) (*places.Details, error) {
	val, err := c.client.Get(ctx, placeKey(placeID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var details places.Details
	if err := json.Unmarshal([]byte(val), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *PlaceCache) Set(ctx context.Context, placeID string, details *places.Details) error {
	if details == nil {
		return nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, placeKey(placeID), data, c.ttl).Err()
}
