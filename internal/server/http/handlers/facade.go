package handlers

import (
	"context"

	"github.com/polkiloo/beatstore/internal/access"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/usecase"
)

// AuthFacade describes identity capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg usecase.Registration) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	Principal(token string) (access.Principal, error)
	Profile(ctx context.Context, p access.Principal) (*model.User, error)
	ChangePassword(ctx context.Context, p access.Principal, current, next, confirmation string) error
	ChangeRole(ctx context.Context, grant access.AdminGrant, userID string, role model.Role) (*model.User, error)
}

// CatalogFacade serves the public catalog and cart pricing.
type CatalogFacade interface {
	Browse(ctx context.Context, query, genre string) ([]model.Beat, error)
	Featured(ctx context.Context) ([]model.Beat, error)
	Genres(ctx context.Context) ([]string, error)
	Beat(ctx context.Context, id string) (*model.Beat, error)
	Quote(ctx context.Context, lines []usecase.CartLine) (*model.Cart, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, p access.Principal, lines []usecase.CartLine) (*model.Order, error)
	Orders(ctx context.Context, p access.Principal) ([]model.Order, error)
	Order(ctx context.Context, p access.Principal, id string) (*model.Order, error)
	RecentOrders(ctx context.Context, grant access.AdminGrant, limit int) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, grant access.AdminGrant, id string, status model.OrderStatus) (*model.Order, error)
	ResolveDownload(ctx context.Context, orderID, beatID, token string) (string, error)
}

// CollaborationFacade exposes the collaboration ledger.
type CollaborationFacade interface {
	CreateCollaboration(ctx context.Context, grant access.AdminGrant, draft model.CollaborationDraft) (*model.Collaboration, error)
	Collaboration(ctx context.Context, grant access.AdminGrant, id string) (*model.Collaboration, error)
	Collaborations(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) ([]model.Collaboration, error)
	UpdateCollaboration(ctx context.Context, grant access.AdminGrant, id string, patch model.CollaborationPatch) (*model.Collaboration, error)
	UpdateCollaborationStatus(ctx context.Context, grant access.AdminGrant, id string, status model.CollaborationStatus) (*model.Collaboration, error)
	RecordCollaborationPayment(ctx context.Context, grant access.AdminGrant, id string, paid model.Money) (*model.Collaboration, error)
	DeleteCollaboration(ctx context.Context, grant access.AdminGrant, id string) error
	CollaborationStats(ctx context.Context, grant access.AdminGrant) (model.CollaborationStats, error)
	WatchCollaborations(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) (*usecase.CollaborationSubscription, error)
	MyCollaborations(ctx context.Context, p access.Principal) ([]model.Collaboration, error)
}

// StatsFacade serves dashboards.
type StatsFacade interface {
	Dashboard(ctx context.Context, grant access.AdminGrant) (*model.DashboardStats, error)
	CustomerSummary(ctx context.Context, p access.Principal) (*model.CustomerSummary, error)
	ArtistSummary(ctx context.Context, p access.Principal) (*model.ArtistSummary, error)
}

// NewsletterFacade manages newsletter subscriptions.
type NewsletterFacade interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	Subscribers(ctx context.Context, grant access.AdminGrant) ([]model.Subscriber, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	CollaborationFacade
	StatsFacade
	NewsletterFacade
}
