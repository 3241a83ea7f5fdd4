package repository

import (
	"context"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// OrderMutation changes a locked order; returning an error aborts the update.
type OrderMutation func(order *model.Order) error

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListAwaitingFulfillment(ctx context.Context, limit int) ([]model.Order, error)
	Update(ctx context.Context, id string, mutate OrderMutation) (*model.Order, error)
}
