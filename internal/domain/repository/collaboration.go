package repository

import (
	"context"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// CollaborationMutation changes a locked collaboration; returning an error aborts the update.
type CollaborationMutation func(collab *model.Collaboration) error

// CollaborationRepository describes persistence operations with collaborations.
type CollaborationRepository interface {
	Create(ctx context.Context, collab *model.Collaboration) error
	GetByID(ctx context.Context, id string) (*model.Collaboration, error)
	List(ctx context.Context, filter model.CollaborationFilter) ([]model.Collaboration, error)
	ListForParticipant(ctx context.Context, userID, email string) ([]model.Collaboration, error)
	Update(ctx context.Context, id string, mutate CollaborationMutation) (*model.Collaboration, error)
	Delete(ctx context.Context, id string) error
}
