package bootstrap

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/tracker-gateway/config"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/storage/mongo"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/storage/redis"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/repository"
)

// OpenStore connects the configured persistence backend. The returned store
// must be closed by the caller on shutdown.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil

	case config.DriverMongo:
		client, db, err := mongo.NewConnection(ctx, &cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoStore(client, db), nil

	case config.DriverRedis:
		client, err := redis.NewConnection(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStore(client), nil

	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return repository.NewPostgresStore(db), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
