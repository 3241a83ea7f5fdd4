package usecase

import (
	"context"

	"github.com/polkiloo/beatstore/internal/access"
	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
)

// StatsUseCase projects dashboard figures from full ledger scans.
type StatsUseCase struct {
	orders  repository.OrderRepository
	collabs repository.CollaborationRepository
	beats   repository.BeatRepository
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(orders repository.OrderRepository, collabs repository.CollaborationRepository, beats repository.BeatRepository) *StatsUseCase {
	return &StatsUseCase{orders: orders, collabs: collabs, beats: beats}
}

// Dashboard computes the admin dashboard.
func (u *StatsUseCase) Dashboard(ctx context.Context, grant access.AdminGrant) (*model.DashboardStats, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}

	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	collabs, err := u.collabs.List(ctx, model.CollaborationFilter{})
	if err != nil {
		return nil, err
	}
	beats, err := u.beats.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &model.DashboardStats{
		Orders:         model.ComputeOrderStats(orders),
		Collaborations: model.ComputeCollaborationStats(collabs),
		Catalog:        model.ComputeCatalogStats(beats),
	}, nil
}

// CustomerSummary computes the caller's purchase summary.
func (u *StatsUseCase) CustomerSummary(ctx context.Context, p access.Principal) (*model.CustomerSummary, error) {
	if !p.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	orders, err := u.orders.ListByCustomer(ctx, p.Email())
	if err != nil {
		return nil, err
	}
	summary := model.SummarizeCustomer(orders)
	return &summary, nil
}

// ArtistSummary computes the caller's collaboration and purchase summary.
func (u *StatsUseCase) ArtistSummary(ctx context.Context, p access.Principal) (*model.ArtistSummary, error) {
	if !p.Has(access.PermViewOwnCollaborations) {
		return nil, domainErrors.ErrUnauthorized
	}
	collabs, err := u.collabs.ListForParticipant(ctx, p.ID(), p.Email())
	if err != nil {
		return nil, err
	}
	orders, err := u.orders.ListByCustomer(ctx, p.Email())
	if err != nil {
		return nil, err
	}
	summary := model.SummarizeArtist(collabs, orders)
	return &summary, nil
}
