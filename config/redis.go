package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis connects the shared client used by the rate limiter and the
// dataset cache. An empty URL leaves RedisClient nil and both features fall
// back to in-process behaviour.
func ConnectRedis(redisURL string) error {
	if redisURL == "" {
		log.Warn().Msg("⚠️ REDIS_URL not set, rate limiting and shared dataset cache disabled")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	// test connection
	res, err := client.Ping(Ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	log.Info().Str("ping", res).Msg("✅ Connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis client")
			return
		}
		log.Info().Msg("✅ Redis connection closed")
	}
}
