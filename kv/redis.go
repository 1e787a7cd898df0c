package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores each key as a JSON string under prefix+key, without expiry.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps client. An empty prefix defaults to "emoji-panel:".
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "emoji-panel:"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]string, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv: redis get %q: %w", key, err)
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("kv: decode %q: %w", key, err)
	}
	return items, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, items []string) error {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("kv: redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
