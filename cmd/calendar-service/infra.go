package main

import (
	"stock-event-calendar/internal/calendar/config"
	"stock-event-calendar/pkg/common"
	"stock-event-calendar/pkg/kvstore"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/postgres"
	"stock-event-calendar/pkg/ratelimit"
	"stock-event-calendar/pkg/redis"
)

func openDatabase(cfg *config.Config) (*postgres.DB, error) {
	return postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
}

// openRedis connects only when a storage driver needs it.
func openRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Storage.KVDriver != config.DriverRedis && cfg.Storage.RateLimitDriver != config.DriverRedis {
		return nil, nil
	}
	return redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}

func newKVStore(cfg *config.Config, client *redis.Client, log *logger.Logger) kvstore.Store {
	if cfg.Storage.KVDriver == config.DriverRedis {
		log.Info("Using Redis key-value store", logger.StringField("prefix", cfg.Redis.KeyPrefix))
		return kvstore.NewRedisStore(client.Client, cfg.Redis.KeyPrefix)
	}
	log.Info("Using in-memory key-value store")
	return kvstore.NewMemoryStore()
}

func newSyncLimiter(cfg *config.Config, client *redis.Client) ratelimit.Limiter {
	if cfg.Storage.RateLimitDriver == config.DriverRedis {
		return ratelimit.NewRedisLimiter(client.Client, cfg.Redis.KeyPrefix+common.RedisKeyPortfolioSync, cfg.Portfolio.SyncWindow)
	}
	return ratelimit.NewMemoryLimiter(cfg.Portfolio.SyncWindow)
}
