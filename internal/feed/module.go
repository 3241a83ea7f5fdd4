package feed

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/beatstore/internal/config"
)

// Module provides the realtime hub and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(newHubFromConfig),
	fx.Invoke(registerHubLifecycle),
)

func newHubFromConfig(cfg *config.Config, logger *slog.Logger) *Hub {
	return NewHub(cfg.FeedPollInterval, logger)
}

func registerHubLifecycle(lc fx.Lifecycle, hub *Hub) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			hub.Close()
			return nil
		},
	})
}
