package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/beatstore/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newPricing,
	NewCatalogUseCase,
	NewOrderUseCase,
	NewCollaborationUseCase,
	NewStatsUseCase,
	NewAuthUseCase,
	NewNewsletterUseCase,
)

func newPricing(cfg *config.Config) Pricing {
	return Pricing{TaxRateBPS: cfg.TaxRateBPS}
}
