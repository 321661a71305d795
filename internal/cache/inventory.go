package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix = "user:%s"
)

const (
	UserTTL = 5 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}

// Aside implements the cache-aside pattern: return the cached value for
// key if present, otherwise load it, store it with the given TTL, and
// return it. Cache failures fall through to the loader.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var zero T
	if client != nil {
		if raw, err := client.Get(ctx, key).Bytes(); err == nil {
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	val, err := load()
	if err != nil {
		return zero, err
	}

	if client != nil {
		if raw, err := json.Marshal(val); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}
	return val, nil
}
