// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/musicbookkr/server/internal/platform/apperr"
	"github.com/musicbookkr/server/internal/platform/constants"
)

// Gate is the Redis-backed issuance cooldown.
//
// # Key shape
//
// cooldown:<resource_class>:<actor_id> holds a request counter that expires
// with the window. Because the counter lives in Redis, the cap holds across
// every instance of the service.
//
// # Policy
//
// The counter is incremented before the protected operation runs. An attempt
// that later fails upstream stays consumed: the cap bounds attempts, not
// successes.
type Gate struct {
	client *redis.Client
}

// NewGate creates a cooldown gate over the shared Redis client.
func NewGate(client *redis.Client) *Gate {
	return &Gate{client: client}
}

// Check consumes one attempt for (resourceClass, actorID) and fails with
// apperr.RateLimited once more than maxCount attempts land inside window.
func (gate *Gate) Check(ctx context.Context, resourceClass, actorID string, maxCount int, window time.Duration) error {
	key := constants.RedisPrefixCooldown + resourceClass + ":" + actorID

	count, err := gate.client.Incr(ctx, key).Result()
	if err != nil {
		return apperr.Internal(fmt.Errorf("cooldown: incr failed: %w", err))
	}

	// First attempt in a fresh window starts the expiry clock.
	if count == 1 {
		if err := gate.client.Expire(ctx, key, window).Err(); err != nil {
			return apperr.Internal(fmt.Errorf("cooldown: expire failed: %w", err))
		}
	}

	if count > int64(maxCount) {
		retryAfter := int(window.Seconds())
		if ttl, err := gate.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
			retryAfter = int(ttl.Seconds())
		}
		return apperr.RateLimited(retryAfter)
	}

	return nil
}
