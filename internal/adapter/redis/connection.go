package redis

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	goredis "github.com/redis/go-redis/v9"

	"schedsync/internal/config"
)

const connectRetries = 5

func Connect(ctx context.Context, conf *config.Config) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(conf.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	// Managed Redis (ElastiCache and similar) requires TLS even on redis:// URLs.
	if conf.RedisTLS && opts.TLSConfig == nil {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := goredis.NewClient(opts)
	ping := func() error {
		return client.Ping(ctx).Err()
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectRetries), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
