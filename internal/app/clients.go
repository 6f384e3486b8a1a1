package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/photoshare-backend/internal/clients/redis"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type Clients struct {
	Redis *goredis.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis backs the session store only.
	if cfg.SessionStore != SessionStoreRedis {
		return Clients{}, nil
	}
	rdb, err := redis.NewClient(ctx, log, cfg.RedisAddr)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis client: %w", err)
	}
	return Clients{Redis: rdb}, nil
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
