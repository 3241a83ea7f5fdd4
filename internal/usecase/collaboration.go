package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/beatstore/internal/access"
	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
	"github.com/polkiloo/beatstore/internal/feed"
	"github.com/polkiloo/beatstore/internal/pkg/ident"
)

// CollaborationSubscription streams snapshots of matching collaborations.
type CollaborationSubscription = feed.Subscription[model.Collaboration]

// CollaborationUseCase manages the collaboration ledger. Every ledger
// operation requires an AdminGrant.
type CollaborationUseCase struct {
	collabs repository.CollaborationRepository
	ids     ident.Generator
	hub     *feed.Hub
	now     func() time.Time
}

// NewCollaborationUseCase constructs CollaborationUseCase.
func NewCollaborationUseCase(collabs repository.CollaborationRepository, ids ident.Generator, hub *feed.Hub) *CollaborationUseCase {
	return &CollaborationUseCase{collabs: collabs, ids: ids, hub: hub, now: time.Now}
}

// Create records a new unpaid collaboration authored by the grant holder.
func (u *CollaborationUseCase) Create(ctx context.Context, grant access.AdminGrant, draft model.CollaborationDraft) (*model.Collaboration, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}

	id, err := u.ids.New(ident.PrefixCollaboration)
	if err != nil {
		return nil, err
	}

	collab, err := model.NewCollaboration(id, draft, grant.Principal().ID(), u.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := u.collabs.Create(ctx, collab); err != nil {
		return nil, err
	}
	u.notify()
	return collab, nil
}

// Get returns one collaboration.
func (u *CollaborationUseCase) Get(ctx context.Context, grant access.AdminGrant, id string) (*model.Collaboration, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	return u.collabs.GetByID(ctx, id)
}

// List returns collaborations matching filter, newest first.
func (u *CollaborationUseCase) List(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) ([]model.Collaboration, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	return u.collabs.List(ctx, filter)
}

// Active returns collaborations in a running status.
func (u *CollaborationUseCase) Active(ctx context.Context, grant access.AdminGrant) ([]model.Collaboration, error) {
	return u.List(ctx, grant, model.CollaborationFilter{Statuses: model.ActiveCollaborationStatuses})
}

// Update edits the collaboration details.
func (u *CollaborationUseCase) Update(ctx context.Context, grant access.AdminGrant, id string, patch model.CollaborationPatch) (*model.Collaboration, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	return u.mutate(ctx, id, func(c *model.Collaboration) error {
		return c.Apply(patch, u.now().UTC())
	})
}

// UpdateStatus changes the deal status, stamping signedAt/completedAt once.
func (u *CollaborationUseCase) UpdateStatus(ctx context.Context, grant access.AdminGrant, id string, status model.CollaborationStatus) (*model.Collaboration, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	return u.mutate(ctx, id, func(c *model.Collaboration) error {
		return c.SetStatus(status, u.now().UTC())
	})
}

// UpdatePayment records the paid amount; overpayment is accepted.
func (u *CollaborationUseCase) UpdatePayment(ctx context.Context, grant access.AdminGrant, id string, paid model.Money) (*model.Collaboration, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	return u.mutate(ctx, id, func(c *model.Collaboration) error {
		return c.RecordPayment(paid, u.now().UTC())
	})
}

// Delete removes the collaboration.
func (u *CollaborationUseCase) Delete(ctx context.Context, grant access.AdminGrant, id string) error {
	if err := grant.Check(); err != nil {
		return err
	}
	if err := u.collabs.Delete(ctx, id); err != nil {
		return err
	}
	u.notify()
	return nil
}

// Stats scans the whole ledger.
func (u *CollaborationUseCase) Stats(ctx context.Context, grant access.AdminGrant) (model.CollaborationStats, error) {
	if err := grant.Check(); err != nil {
		return model.CollaborationStats{}, err
	}
	collabs, err := u.collabs.List(ctx, model.CollaborationFilter{})
	if err != nil {
		return model.CollaborationStats{}, err
	}
	return model.ComputeCollaborationStats(collabs), nil
}

// Subscribe opens a feed of the collaborations matching filter. The caller must
// Cancel the subscription or cancel ctx when done.
func (u *CollaborationUseCase) Subscribe(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) (*CollaborationSubscription, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	return feed.Subscribe(ctx, u.hub, func(ctx context.Context) ([]model.Collaboration, error) {
		return u.collabs.List(ctx, filter)
	})
}

// ListForParticipant returns the collaborations where the caller is the client or the assignee.
func (u *CollaborationUseCase) ListForParticipant(ctx context.Context, p access.Principal) ([]model.Collaboration, error) {
	if !p.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	return u.collabs.ListForParticipant(ctx, p.ID(), p.Email())
}

func (u *CollaborationUseCase) mutate(ctx context.Context, id string, fn repository.CollaborationMutation) (*model.Collaboration, error) {
	collab, err := u.collabs.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	u.notify()
	return collab, nil
}

func (u *CollaborationUseCase) notify() {
	if u.hub != nil {
		u.hub.Notify()
	}
}
