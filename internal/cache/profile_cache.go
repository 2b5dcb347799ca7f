// Package cache provides read-through redis caching for profile counters.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/instalite/internal/repository"
	"github.com/d60-Lab/instalite/pkg/logger"
)

// ProfileCounterCache serves follower/following counts for profile pages.
// Implementations must be safe for concurrent use.
type ProfileCounterCache interface {
	Counts(ctx context.Context, userID uint) (followers, following int64, err error)
	Invalidate(ctx context.Context, userIDs ...uint)
}

// NewProfileCounterCache returns a redis-backed cache, or a passthrough that
// always hits the store when client is nil.
func NewProfileCounterCache(client *redis.Client, followRepo repository.FollowRepository, ttl time.Duration) ProfileCounterCache {
	if client == nil {
		return &passthroughCounters{followRepo: followRepo}
	}
	return &redisCounters{client: client, followRepo: followRepo, ttl: ttl}
}

type passthroughCounters struct {
	followRepo repository.FollowRepository
}

func (p *passthroughCounters) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	followers, err := p.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err := p.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (p *passthroughCounters) Invalidate(context.Context, ...uint) {}

type redisCounters struct {
	client     *redis.Client
	followRepo repository.FollowRepository
	ttl        time.Duration
}

func key(userID uint) string { return fmt.Sprintf("profile:counts:%d", userID) }

// Counts reads the cached pair, falling back to the store on miss.
// Cache errors degrade to a direct store read rather than failing the request.
func (r *redisCounters) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	var followers, following int64
	vals, err := r.client.HMGet(ctx, key(userID), "followers", "following").Result()
	if err == nil && len(vals) == 2 && vals[0] != nil && vals[1] != nil {
		if _, e1 := fmt.Sscan(vals[0].(string), &followers); e1 == nil {
			if _, e2 := fmt.Sscan(vals[1].(string), &following); e2 == nil {
				return followers, following, nil
			}
		}
	}

	followers, err = r.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = r.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key(userID), "followers", followers, "following", following)
	pipe.Expire(ctx, key(userID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("profile counter cache write", zap.Uint("user", userID), zap.Error(err))
	}
	return followers, following, nil
}

// Invalidate drops cached counters after follow/unfollow mutations.
func (r *redisCounters) Invalidate(ctx context.Context, userIDs ...uint) {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = key(id)
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("profile counter cache invalidate", zap.Error(err))
	}
}
