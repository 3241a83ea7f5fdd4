package repository

import (
	"context"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// SubscriberRepository stores newsletter addresses.
type SubscriberRepository interface {
	Add(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]model.Subscriber, error)
}
