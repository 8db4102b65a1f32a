package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyTTL = 7 * 24 * time.Hour

// RedisRepository keeps a short-lived history of applied interpreter
// actions per workspace, so the frontend can show what the AI actually did.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) PushApplied(ctx context.Context, workspaceID string, payload []byte) error {
	key := "actions:" + workspaceID
	if err := r.rdb.RPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return r.rdb.Expire(ctx, key, historyTTL).Err()
}

// RecentApplied returns up to n most recent applied-action batches, oldest
// first.
func (r *RedisRepository) RecentApplied(ctx context.Context, workspaceID string, n int64) ([]string, error) {
	key := "actions:" + workspaceID
	return r.rdb.LRange(ctx, key, -n, -1).Result()
}
