package postgres

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/beatstore/internal/config"
	"github.com/polkiloo/beatstore/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.HealthChecker { return s },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.BeatRepository { return s.Beats() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.CollaborationRepository { return s.Collaborations() },
		func(s *Storage) repository.SubscriberRepository { return s.Subscribers() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, cfg *config.Config, storage *Storage) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.SeedCatalog {
				return nil
			}
			_, err := storage.SeedCatalog(ctx, SeedBeats(time.Now().UTC()))
			return err
		},
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
