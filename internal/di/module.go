package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/beatstore/internal/access"
	"github.com/polkiloo/beatstore/internal/app"
	"github.com/polkiloo/beatstore/internal/config"
	"github.com/polkiloo/beatstore/internal/feed"
	"github.com/polkiloo/beatstore/internal/logger"
	"github.com/polkiloo/beatstore/internal/pkg/auth"
	"github.com/polkiloo/beatstore/internal/pkg/ident"
	"github.com/polkiloo/beatstore/internal/server/http/router"
	"github.com/polkiloo/beatstore/internal/storage/postgres"
	"github.com/polkiloo/beatstore/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		access.Module,
		ident.Module,
		auth.Module,
		feed.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
