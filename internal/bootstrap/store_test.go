package bootstrap

import (
	"context"
	"testing"

	"github.com/GoSim-25-26J-441/tracker-gateway/config"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
		require.NoError(t, err)
		defer store.Close()
		assert.Equal(t, "memory", store.Driver())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := OpenStore(ctx, &config.Config{
			Store: config.StoreConfig{Driver: config.DriverRedis},
			Redis: config.RedisConfig{Addr: mr.Addr()},
		})
		require.NoError(t, err)
		defer store.Close()

		assert.Equal(t, "redis", store.Driver())
		_, err = store.Clients.Create(ctx, &domain.Client{Name: "Ann", Email: "ann@x.com", Phone: "555-0100"})
		require.NoError(t, err)
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := OpenStore(ctx, &config.Config{
			Store: config.StoreConfig{Driver: config.DriverRedis},
			Redis: config.RedisConfig{Addr: addr},
		})
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, &config.Config{Store: config.StoreConfig{Driver: "sqlite"}})
		assert.Error(t, err)
	})
}
