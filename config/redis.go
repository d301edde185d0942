package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient 初始化Redis客户端, 未配置 REDIS_HOST 时返回 nil
func NewRedisClient(ctx context.Context, config Config) (*redis.Client, error) {
	if config.RedisHost == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.GetRedisConnString(),
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	// 测试连接
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", config.GetRedisConnString(), err)
	}

	return client, nil
}
