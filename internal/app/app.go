package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/beatstore/internal/config"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/feed"
	"github.com/polkiloo/beatstore/internal/server/http/handlers"
	"github.com/polkiloo/beatstore/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		func(f *StoreFacade) handlers.StoreFacade { return f },
		func(f *StoreFacade) worker.FulfillmentFacade { return f },
		func(f *StoreFacade) AdminBootstrapper { return f },
		newHTTPServer,
		newFulfiller,
	),
	fx.Invoke(registerLifecycle),
)

// AdminBootstrapper creates or promotes the configured administrator.
type AdminBootstrapper interface {
	EnsureAdmin(ctx context.Context, email, password string) (*model.User, error)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
	Hub    *feed.Hub `optional:"true"`
}

func newHTTPServer(p serverParams) *http.Server {
	server := &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
	if p.Hub != nil {
		// Open event streams end once the hub is closed.
		server.RegisterOnShutdown(p.Hub.Close)
	}
	return server
}

type workerParams struct {
	fx.In

	Facade worker.FulfillmentFacade
	Config *config.Config
	Logger *slog.Logger
}

func newFulfiller(p workerParams) *worker.Fulfiller {
	return worker.NewFulfiller(
		p.Facade,
		p.Config.FulfillmentPollInterval,
		p.Config.FulfillmentBatch,
		p.Config.FulfillmentWorkers,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.Fulfiller
	Admins     AdminBootstrapper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.AdminEmail != "" {
				admin, err := p.Admins.EnsureAdmin(ctx, p.Config.AdminEmail, p.Config.AdminPassword)
				if err != nil {
					return err
				}
				p.Logger.Info("admin account ready", slog.String("user_id", admin.ID))
			}

			p.Logger.Info("starting beatstore", slog.String("addr", p.Server.Addr))
			// The start context expires once startup completes.
			p.Worker.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("beatstore stopped")
			return nil
		},
	})
}
