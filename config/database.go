package config

import (
	"fmt"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/utils"
)

// InitGateway opens the persistence gateway selected by GATEWAY_DRIVER. With
// REDIS_ADDR set, changes fan out to every instance through Redis.
func InitGateway(cfg *Config) (gateway.Gateway, error) {
	var feed gateway.ChangeFeed
	if cfg.RedisAddr != "" {
		redisFeed, err := gateway.NewRedisFeed(cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		utils.LogInfo("Change feed connected to redis at %s", cfg.RedisAddr)
		feed = redisFeed
	} else {
		feed = gateway.NewLocalFeed()
	}

	switch cfg.GatewayDriver {
	case "memory":
		utils.LogWarn("Using the in-memory gateway; data is lost on restart")
		return gateway.NewMemoryGateway(feed), nil
	default:
		gw, err := gateway.OpenPostgres(cfg.DSN(), feed)
		if err != nil {
			_ = feed.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		utils.LogInfo("Connected to postgres at %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gw, nil
	}
}
