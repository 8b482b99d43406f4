package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

const redisIndexKey = "designs:index"

// RedisStore keeps each design as a JSON string and orders ids in a sorted
// set scored by update time.
type RedisStore struct {
	client redis.UniversalClient
	stamp
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, stamp: defaultStamp()}
}

func designKey(id string) string {
	return fmt.Sprintf("designs:%s", id)
}

func (r *RedisStore) Save(ctx context.Context, name string, blocks []page.Block) (string, error) {
	d, err := r.design(name, blocks)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to encode design: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, designKey(d.ID), data, 0)
		p.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(d.UpdatedAt.UnixNano()), Member: d.ID})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to save design: %w", err)
	}
	return d.ID, nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Design, error) {
	val, err := r.client.Get(ctx, designKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load design %s: %w", id, err)
	}
	var d Design
	if err := json.Unmarshal(val, &d); err != nil {
		return nil, fmt.Errorf("failed to decode design %s: %w", id, err)
	}
	return &d, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, designKey(id))
		p.ZRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete design %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Duplicate(ctx context.Context, id string) (string, error) {
	d, err := r.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return r.Save(ctx, d.Name+copySuffix, d.Blocks)
}

func (r *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := r.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		d, err := r.Load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(d))
	}
	return out, nil
}
