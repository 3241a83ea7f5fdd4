package app

import (
	"context"
	"fmt"

	"github.com/polkiloo/beatstore/internal/access"
	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	pkgAuth "github.com/polkiloo/beatstore/internal/pkg/auth"
	"github.com/polkiloo/beatstore/internal/pkg/ident"
	"github.com/polkiloo/beatstore/internal/usecase"
)

// StoreFacade is the single entry point used by HTTP handlers and the fulfillment worker.
type StoreFacade struct {
	auth       *usecase.AuthUseCase
	catalog    *usecase.CatalogUseCase
	orders     *usecase.OrderUseCase
	collabs    *usecase.CollaborationUseCase
	stats      *usecase.StatsUseCase
	newsletter *usecase.NewsletterUseCase
	gate       *access.Gate
	linkSigner *pkgAuth.LinkSigner
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	collabs *usecase.CollaborationUseCase,
	stats *usecase.StatsUseCase,
	newsletter *usecase.NewsletterUseCase,
	gate *access.Gate,
	linkSigner *pkgAuth.LinkSigner,
) *StoreFacade {
	return &StoreFacade{
		auth:       auth,
		catalog:    catalog,
		orders:     orders,
		collabs:    collabs,
		stats:      stats,
		newsletter: newsletter,
		gate:       gate,
		linkSigner: linkSigner,
	}
}

func (f *StoreFacade) Register(ctx context.Context, reg usecase.Registration) (*model.User, string, error) {
	return f.auth.Register(ctx, reg)
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StoreFacade) Principal(token string) (access.Principal, error) {
	return f.auth.Principal(token)
}

func (f *StoreFacade) Profile(ctx context.Context, p access.Principal) (*model.User, error) {
	if !p.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	return f.auth.GetByID(ctx, p.ID())
}

func (f *StoreFacade) ChangePassword(ctx context.Context, p access.Principal, current, next, confirmation string) error {
	return f.auth.ChangePassword(ctx, p, current, next, confirmation)
}

func (f *StoreFacade) ChangeRole(ctx context.Context, grant access.AdminGrant, userID string, role model.Role) (*model.User, error) {
	if err := knownID(userID, ident.PrefixUser); err != nil {
		return nil, err
	}
	return f.auth.ChangeRole(ctx, grant, userID, role)
}

// EnsureAdmin bootstraps the first administrator account.
func (f *StoreFacade) EnsureAdmin(ctx context.Context, email, password string) (*model.User, error) {
	return f.auth.EnsureAdmin(ctx, email, password)
}

func (f *StoreFacade) Browse(ctx context.Context, query, genre string) ([]model.Beat, error) {
	return f.catalog.Browse(ctx, query, genre)
}

func (f *StoreFacade) Featured(ctx context.Context) ([]model.Beat, error) {
	return f.catalog.Featured(ctx)
}

func (f *StoreFacade) Genres(ctx context.Context) ([]string, error) {
	return f.catalog.Genres(ctx)
}

func (f *StoreFacade) Beat(ctx context.Context, id string) (*model.Beat, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StoreFacade) Quote(ctx context.Context, lines []usecase.CartLine) (*model.Cart, error) {
	return f.catalog.Quote(ctx, lines)
}

// Checkout prices the lines against the catalog and places the order for the caller.
func (f *StoreFacade) Checkout(ctx context.Context, p access.Principal, lines []usecase.CartLine) (*model.Order, error) {
	if err := f.gate.Require(p, access.PermPurchase); err != nil {
		return nil, err
	}
	cart, err := f.catalog.Quote(ctx, lines)
	if err != nil {
		return nil, err
	}
	return f.orders.Checkout(ctx, p.Email(), cart)
}

func (f *StoreFacade) Orders(ctx context.Context, p access.Principal) ([]model.Order, error) {
	if err := f.gate.Require(p, access.PermViewOwnOrders); err != nil {
		return nil, err
	}
	return f.orders.ListByCustomer(ctx, p.Email())
}

func (f *StoreFacade) Order(ctx context.Context, p access.Principal, id string) (*model.Order, error) {
	if err := knownID(id, ident.PrefixOrder); err != nil {
		return nil, err
	}
	return f.orders.GetForPrincipal(ctx, p, id)
}

func (f *StoreFacade) RecentOrders(ctx context.Context, grant access.AdminGrant, limit int) ([]model.Order, error) {
	return f.orders.Recent(ctx, grant, limit)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, grant access.AdminGrant, id string, status model.OrderStatus) (*model.Order, error) {
	if err := knownID(id, ident.PrefixOrder); err != nil {
		return nil, err
	}
	return f.orders.UpdateStatus(ctx, grant, id, status)
}

// ResolveDownload verifies a signed link and returns the audio location of the purchased beat.
func (f *StoreFacade) ResolveDownload(ctx context.Context, orderID, beatID, token string) (string, error) {
	if err := knownID(orderID, ident.PrefixOrder); err != nil {
		return "", err
	}
	if err := f.linkSigner.Verify(orderID, beatID, token); err != nil {
		return "", err
	}

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Status != model.OrderStatusCompleted {
		return "", fmt.Errorf("%w: order %s is %s", domainErrors.ErrUnauthorized, order.Number, order.Status)
	}
	if _, ok := order.DownloadLinks[beatID]; !ok {
		return "", domainErrors.ErrNotFound
	}

	beat, err := f.catalog.Get(ctx, beatID)
	if err != nil {
		return "", err
	}
	return beat.AudioURL, nil
}

// OrdersAwaitingFulfillment lists completed orders that have no download links yet.
func (f *StoreFacade) OrdersAwaitingFulfillment(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.AwaitingFulfillment(ctx, limit)
}

// IssueDownloadLinks signs one link per purchased beat.
func (f *StoreFacade) IssueDownloadLinks(order model.Order) map[string]string {
	beatIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		beatIDs = append(beatIDs, item.BeatID)
	}
	return f.linkSigner.Links(order.ID, beatIDs)
}

func (f *StoreFacade) AttachDownloadLinks(ctx context.Context, orderID string, links map[string]string) error {
	_, err := f.orders.SetDownloadLinks(ctx, orderID, links)
	return err
}

func (f *StoreFacade) CreateCollaboration(ctx context.Context, grant access.AdminGrant, draft model.CollaborationDraft) (*model.Collaboration, error) {
	return f.collabs.Create(ctx, grant, draft)
}

func (f *StoreFacade) Collaboration(ctx context.Context, grant access.AdminGrant, id string) (*model.Collaboration, error) {
	if err := knownID(id, ident.PrefixCollaboration); err != nil {
		return nil, err
	}
	return f.collabs.Get(ctx, grant, id)
}

func (f *StoreFacade) Collaborations(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) ([]model.Collaboration, error) {
	return f.collabs.List(ctx, grant, filter)
}

func (f *StoreFacade) UpdateCollaboration(ctx context.Context, grant access.AdminGrant, id string, patch model.CollaborationPatch) (*model.Collaboration, error) {
	if err := knownID(id, ident.PrefixCollaboration); err != nil {
		return nil, err
	}
	return f.collabs.Update(ctx, grant, id, patch)
}

func (f *StoreFacade) UpdateCollaborationStatus(ctx context.Context, grant access.AdminGrant, id string, status model.CollaborationStatus) (*model.Collaboration, error) {
	if err := knownID(id, ident.PrefixCollaboration); err != nil {
		return nil, err
	}
	return f.collabs.UpdateStatus(ctx, grant, id, status)
}

func (f *StoreFacade) RecordCollaborationPayment(ctx context.Context, grant access.AdminGrant, id string, paid model.Money) (*model.Collaboration, error) {
	if err := knownID(id, ident.PrefixCollaboration); err != nil {
		return nil, err
	}
	return f.collabs.UpdatePayment(ctx, grant, id, paid)
}

func (f *StoreFacade) DeleteCollaboration(ctx context.Context, grant access.AdminGrant, id string) error {
	if err := knownID(id, ident.PrefixCollaboration); err != nil {
		return err
	}
	return f.collabs.Delete(ctx, grant, id)
}

func (f *StoreFacade) CollaborationStats(ctx context.Context, grant access.AdminGrant) (model.CollaborationStats, error) {
	return f.collabs.Stats(ctx, grant)
}

func (f *StoreFacade) WatchCollaborations(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) (*usecase.CollaborationSubscription, error) {
	return f.collabs.Subscribe(ctx, grant, filter)
}

func (f *StoreFacade) MyCollaborations(ctx context.Context, p access.Principal) ([]model.Collaboration, error) {
	return f.collabs.ListForParticipant(ctx, p)
}

func (f *StoreFacade) Dashboard(ctx context.Context, grant access.AdminGrant) (*model.DashboardStats, error) {
	return f.stats.Dashboard(ctx, grant)
}

func (f *StoreFacade) CustomerSummary(ctx context.Context, p access.Principal) (*model.CustomerSummary, error) {
	return f.stats.CustomerSummary(ctx, p)
}

func (f *StoreFacade) ArtistSummary(ctx context.Context, p access.Principal) (*model.ArtistSummary, error) {
	return f.stats.ArtistSummary(ctx, p)
}

func (f *StoreFacade) Subscribe(ctx context.Context, email string) (bool, error) {
	return f.newsletter.Subscribe(ctx, email)
}

func (f *StoreFacade) Subscribers(ctx context.Context, grant access.AdminGrant) ([]model.Subscriber, error) {
	return f.newsletter.Subscribers(ctx, grant)
}

// knownID rejects identifiers that cannot name a stored record of the given kind.
func knownID(id string, prefix ident.Prefix) error {
	if err := ident.Validate(id, prefix); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrNotFound, err)
	}
	return nil
}
