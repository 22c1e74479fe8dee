package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/packtrack/stock-api/internal/config"
)

// OpenRedis returns nil without error when Redis is not configured.
func OpenRedis(conf *config.RedisConfig) (redis.UniversalClient, error) {
	if conf == nil || (conf.URL == "" && len(conf.Sentinels) == 0) {
		return nil, nil
	}

	var client redis.UniversalClient
	if addrs := splitAddrs(conf.Sentinels); len(addrs) > 0 && conf.MasterName != "" {
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    conf.MasterName,
			SentinelAddrs: addrs,
			MaxRetries:    3,
			DialTimeout:   5 * time.Second,
			ReadTimeout:   3 * time.Second,
			WriteTimeout:  3 * time.Second,
		})
	} else {
		opt, err := redis.ParseURL(conf.URL)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL -> %w", err)
		}
		opt.MaxRetries = 3
		client = redis.NewClient(opt)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	zap.L().Info("connected to redis")

	return client, nil
}

// splitAddrs accepts both a list and a single comma separated entry.
func splitAddrs(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, addr := range strings.Split(entry, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				out = append(out, addr)
			}
		}
	}

	return out
}
