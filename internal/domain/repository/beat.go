package repository

import (
	"context"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// BeatRepository is the catalog store.
type BeatRepository interface {
	GetAll(ctx context.Context) ([]model.Beat, error)
	GetByID(ctx context.Context, id string) (*model.Beat, error)
	Search(ctx context.Context, query string) ([]model.Beat, error)
	GetByGenre(ctx context.Context, genre string) ([]model.Beat, error)
}
