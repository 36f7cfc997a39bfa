package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/frontdeskai/webchat-service/internal/config"
	"github.com/frontdeskai/webchat-service/internal/leads"
	"github.com/frontdeskai/webchat-service/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil. The chat
// transcript store treats a nil client as a no-op, so the service runs
// fine without Redis.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildLeadsRepository picks the lead store for this deployment. Postgres
// when DATABASE_URL is set, the in-memory store otherwise or when
// USE_MEMORY_REPO forces it. The returned cleanup closes the pool and is
// safe to call in every case.
func BuildLeadsRepository(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (leads.Repository, func(), error) {
	noop := func() {}
	if cfg == nil || cfg.UseMemoryRepo || strings.TrimSpace(cfg.DatabaseURL) == "" {
		if logger != nil {
			logger.Info("leads: using in-memory repository")
		}
		return leads.NewInMemoryRepository(), noop, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, noop, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, noop, err
	}
	if logger != nil {
		logger.Info("leads: using postgres repository")
	}
	return leads.NewPostgresRepository(pool), pool.Close, nil
}
