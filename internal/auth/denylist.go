package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Denylist stores tokens invalidated by logout until they would have expired
// anyway. Backed by redis so every API instance sees the same set.
type Denylist struct {
	Client *redis.Client
}

func NewDenylist(addr string) *Denylist {
	return &Denylist{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

func denyKey(token string) string {
	return fmt.Sprintf("auth:denied:%s", token)
}

func (d *Denylist) Deny(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return d.Client.Set(ctx, denyKey(token), "1", ttl).Err()
}

func (d *Denylist) IsDenied(ctx context.Context, token string) (bool, error) {
	n, err := d.Client.Exists(ctx, denyKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
