// Package bootstrap wires up runtime dependencies shared by the binaries.
package bootstrap

import (
	"fmt"

	"typehero/internal/cache"
	"typehero/internal/config"
	"typehero/internal/database"
	"typehero/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty development database with demo content.
	SeedDemoData bool
	SeedOptions  seed.Options
}

// InitRuntime connects to the database and Redis and optionally seeds demo
// data. The Redis client may be nil when Redis is unreachable; callers must
// treat realtime and caching as degraded, not fatal.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.Run(db, opts.SeedOptions); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
