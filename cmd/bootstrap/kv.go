package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"storefront-cart/internal/infra/kv"
	"storefront-cart/internal/pkg/config"

	"go.uber.org/fx"
)

var KVModule = fx.Module("kv",
	fx.Provide(
		NewKVStore,
	),
)

// NewKVStore backs the local cart store. The memory driver is for local
// development and tests; its data dies with the process.
func NewKVStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (kv.Store, error) {
	switch cfg.Cart.LocalStoreDriver {
	case "memory":
		logger.Warn("Local cart store uses in-memory KV")
		return kv.NewMemoryStore(), nil
	case "redis", "":
		client, err := kv.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		return kv.NewRedisStore(client, cfg.Cart.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown CART_LOCAL_STORE_DRIVER %q", cfg.Cart.LocalStoreDriver)
	}
}
