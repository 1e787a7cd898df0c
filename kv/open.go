// Package kv provides durable key-value backends for the recent list.
package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"emoji-panel/config"
	"emoji-panel/recent"
)

// Backend is a recent.Backend holding an external resource.
type Backend interface {
	recent.Backend
	Close() error
}

// Open returns the backend named by cfg.Backend. For the memory backend it
// returns a nil Backend, which recent.NewStore treats as "no persistent
// store".
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return nil, nil
	case config.BackendFile:
		f, err := NewFile(cfg.File.Path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.BackendSQLite:
		db, err := NewSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("kv: redis ping %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedis(client, cfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", cfg.Backend)
	}
}
