package di

import (
	"context"
	"fmt"
	"time"

	"user-directory/cmd/api/infrastructure"
	"user-directory/internal/adapter/cache"
	"user-directory/internal/adapter/db/relational"
	ginhandler "user-directory/internal/adapter/gin/handler"
	"user-directory/internal/adapter/gin/middleware"
	"user-directory/internal/adapter/ratelimit"
	"user-directory/internal/adapter/repository/cached"
	"user-directory/internal/config"
	"user-directory/internal/usecase/user"
	redisclient "user-directory/pkg/redis"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client // nil unless REDIS_ENABLED
	UserUC      user.Service
	RateLimiter middleware.Limiter // nil unless RATE_LIMIT_ENABLED
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	// Initialize repository
	var repo user.Repository = relational.NewUserRepo(db, l)

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("failed to initialize Redis: %w", err), c.Close())
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(repo, userCache, l)

		if cfg.RateLimit.Enabled {
			c.RateLimiter = ratelimit.New(rdb.Client, ratelimit.Config{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
			})
		}
	}

	// Initialize use case
	c.UserUC = user.New(repo, l)

	// Initialize Gin handler
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var err error

	// Close Redis connection
	if c.RedisClient != nil {
		if cerr := c.RedisClient.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close Redis: %w", cerr))
		}
	}

	// Close database connection
	if c.DB != nil {
		if cerr := infrastructure.CloseDatabase(c.DB); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close database: %w", cerr))
		}
	}

	return err
}
