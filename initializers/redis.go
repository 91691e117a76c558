package initializers

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"hire-backend/config"
)

// InitRedis returns nil when no address is configured, chat rooms then stay process local.
func InitRedis(ctx context.Context) *redis.Client {
	if config.Conf.Redis.Addr == "" {
		log.Info("redis is not configured, chat broadcasts stay in process")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		panic(err.Error())
	}
	log.WithField("addr", config.Conf.Redis.Addr).Info("redis connected")
	return client
}
