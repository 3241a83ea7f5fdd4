package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/beatstore/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newLinkSigner),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL})
}

func newLinkSigner(p strategyParams) *LinkSigner {
	return NewLinkSigner(p.Config.DownloadSecret, p.Config.DownloadBaseURL, Options{TTL: p.Config.DownloadTTL})
}
