package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/polkiloo/beatstore/internal/access"
	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
	"github.com/polkiloo/beatstore/internal/pkg/ident"
)

// Pricing holds checkout pricing settings.
type Pricing struct {
	TaxRateBPS int64
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	ids     ident.Generator
	pricing Pricing
	now     func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, ids ident.Generator, pricing Pricing) *OrderUseCase {
	return &OrderUseCase{orders: orders, ids: ids, pricing: pricing, now: time.Now}
}

// Checkout turns the cart into a pending order. Cart prices are taken as quoted.
func (u *OrderUseCase) Checkout(ctx context.Context, email string, cart *model.Cart) (*model.Order, error) {
	if cart == nil || cart.Len() == 0 {
		return nil, fmt.Errorf("%w: order has no items", domainErrors.ErrValidation)
	}

	id, err := u.ids.New(ident.PrefixOrder)
	if err != nil {
		return nil, err
	}

	order, err := model.NewOrder(id, email, cart.Items(), u.pricing.TaxRateBPS, u.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByCustomer returns the customer's orders newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, email)
}

// GetForPrincipal returns the order when the caller owns it or manages orders.
// Other callers get ErrNotFound.
func (u *OrderUseCase) GetForPrincipal(ctx context.Context, p access.Principal, id string) (*model.Order, error) {
	if !p.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerEmail != p.Email() && !p.Has(access.PermManageOrders) {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// Recent returns the latest orders for the admin dashboard.
func (u *OrderUseCase) Recent(ctx context.Context, grant access.AdminGrant, limit int) ([]model.Order, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return u.orders.ListRecent(ctx, limit)
}

// UpdateStatus moves the order along the transition table.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, grant access.AdminGrant, id string, status model.OrderStatus) (*model.Order, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domainErrors.ErrValidation, status)
	}
	return u.orders.Update(ctx, id, func(order *model.Order) error {
		return order.TransitionTo(status, u.now().UTC())
	})
}

// AwaitingFulfillment returns completed orders that still lack download links.
func (u *OrderUseCase) AwaitingFulfillment(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListAwaitingFulfillment(ctx, limit)
}

// SetDownloadLinks stores signed links on a completed order.
func (u *OrderUseCase) SetDownloadLinks(ctx context.Context, id string, links map[string]string) (*model.Order, error) {
	return u.orders.Update(ctx, id, func(order *model.Order) error {
		return order.AttachDownloadLinks(links, u.now().UTC())
	})
}

// Get fetches an order without ownership checks; used by download verification.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}
