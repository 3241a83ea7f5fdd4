// Package facadestub provides a controllable HTTP store facade for handler and router tests.
package facadestub

import (
	"context"
	"time"

	"github.com/polkiloo/beatstore/internal/access"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/feed"
	testhelpers "github.com/polkiloo/beatstore/internal/test"
	"github.com/polkiloo/beatstore/internal/usecase"
)

// StoreFacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset functions fall back to small fixtures.
type StoreFacadeStub struct {
	testhelpers.PrincipalResolverStub

	RegisterFn       func(context.Context, usecase.Registration) (*model.User, string, error)
	AuthenticateFn   func(context.Context, string, string) (*model.User, string, error)
	ProfileFn        func(context.Context, access.Principal) (*model.User, error)
	ChangePasswordFn func(context.Context, access.Principal, string, string, string) error
	ChangeRoleFn     func(context.Context, access.AdminGrant, string, model.Role) (*model.User, error)

	BrowseFn   func(context.Context, string, string) ([]model.Beat, error)
	FeaturedFn func(context.Context) ([]model.Beat, error)
	GenresFn   func(context.Context) ([]string, error)
	BeatFn     func(context.Context, string) (*model.Beat, error)
	QuoteFn    func(context.Context, []usecase.CartLine) (*model.Cart, error)

	CheckoutFn          func(context.Context, access.Principal, []usecase.CartLine) (*model.Order, error)
	OrdersFn            func(context.Context, access.Principal) ([]model.Order, error)
	OrderFn             func(context.Context, access.Principal, string) (*model.Order, error)
	RecentOrdersFn      func(context.Context, access.AdminGrant, int) ([]model.Order, error)
	UpdateOrderStatusFn func(context.Context, access.AdminGrant, string, model.OrderStatus) (*model.Order, error)
	ResolveDownloadFn   func(context.Context, string, string, string) (string, error)

	CreateCollaborationFn func(context.Context, access.AdminGrant, model.CollaborationDraft) (*model.Collaboration, error)
	CollaborationFn       func(context.Context, access.AdminGrant, string) (*model.Collaboration, error)
	CollaborationsFn      func(context.Context, access.AdminGrant, model.CollaborationFilter) ([]model.Collaboration, error)
	UpdateCollaborationFn func(context.Context, access.AdminGrant, string, model.CollaborationPatch) (*model.Collaboration, error)
	UpdateCollabStatusFn  func(context.Context, access.AdminGrant, string, model.CollaborationStatus) (*model.Collaboration, error)
	RecordPaymentFn       func(context.Context, access.AdminGrant, string, model.Money) (*model.Collaboration, error)
	DeleteCollaborationFn func(context.Context, access.AdminGrant, string) error
	CollaborationStatsFn  func(context.Context, access.AdminGrant) (model.CollaborationStats, error)
	WatchCollaborationsFn func(context.Context, access.AdminGrant, model.CollaborationFilter) (*usecase.CollaborationSubscription, error)
	MyCollaborationsFn    func(context.Context, access.Principal) ([]model.Collaboration, error)
	DashboardFn           func(context.Context, access.AdminGrant) (*model.DashboardStats, error)
	CustomerSummaryFn     func(context.Context, access.Principal) (*model.CustomerSummary, error)
	ArtistSummaryFn       func(context.Context, access.Principal) (*model.ArtistSummary, error)
	SubscribeFn           func(context.Context, string) (bool, error)
	SubscribersFn         func(context.Context, access.AdminGrant) ([]model.Subscriber, error)
}

var fixtureTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Register delegates to RegisterFn or creates a user account fixture.
func (s StoreFacadeStub) Register(ctx context.Context, reg usecase.Registration) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return &model.User{ID: "usr_1", Email: reg.Email, DisplayName: reg.DisplayName, Role: model.RoleUser}, "token", nil
}

// Authenticate delegates to AuthenticateFn or signs the caller in.
func (s StoreFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: "usr_1", Email: email, Role: model.RoleUser}, "token", nil
}

// Profile returns the account behind the principal.
func (s StoreFacadeStub) Profile(ctx context.Context, p access.Principal) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, p)
	}
	return &model.User{ID: p.ID(), Email: p.Email(), Role: p.Role()}, nil
}

// ChangePassword delegates to ChangePasswordFn.
func (s StoreFacadeStub) ChangePassword(ctx context.Context, p access.Principal, current, next, confirmation string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, p, current, next, confirmation)
	}
	return nil
}

// ChangeRole delegates to ChangeRoleFn.
func (s StoreFacadeStub) ChangeRole(ctx context.Context, grant access.AdminGrant, userID string, role model.Role) (*model.User, error) {
	if s.ChangeRoleFn != nil {
		return s.ChangeRoleFn(ctx, grant, userID, role)
	}
	return &model.User{ID: userID, Role: role}, nil
}

// Browse returns the demo catalog by default.
func (s StoreFacadeStub) Browse(ctx context.Context, query, genre string) ([]model.Beat, error) {
	if s.BrowseFn != nil {
		return s.BrowseFn(ctx, query, genre)
	}
	return testhelpers.DemoCatalog(), nil
}

// Featured returns the featured part of the demo catalog.
func (s StoreFacadeStub) Featured(ctx context.Context) ([]model.Beat, error) {
	if s.FeaturedFn != nil {
		return s.FeaturedFn(ctx)
	}
	var featured []model.Beat
	for _, b := range testhelpers.DemoCatalog() {
		if b.Featured {
			featured = append(featured, b)
		}
	}
	return featured, nil
}

// Genres delegates to GenresFn.
func (s StoreFacadeStub) Genres(ctx context.Context) ([]string, error) {
	if s.GenresFn != nil {
		return s.GenresFn(ctx)
	}
	return []string{model.GenreAll, "Trap"}, nil
}

// Beat returns the first demo beat by default.
func (s StoreFacadeStub) Beat(ctx context.Context, id string) (*model.Beat, error) {
	if s.BeatFn != nil {
		return s.BeatFn(ctx, id)
	}
	beat := testhelpers.DemoCatalog()[0]
	beat.ID = id
	return &beat, nil
}

// Quote prices every line against the first demo beat.
func (s StoreFacadeStub) Quote(ctx context.Context, lines []usecase.CartLine) (*model.Cart, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, lines)
	}
	cart := model.NewCart()
	for _, line := range lines {
		beat := testhelpers.DemoCatalog()[0]
		beat.ID = line.BeatID
		if _, err := cart.Add(beat, line.License); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// Checkout delegates to CheckoutFn or returns a pending order.
func (s StoreFacadeStub) Checkout(ctx context.Context, p access.Principal, lines []usecase.CartLine) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, p, lines)
	}
	return FixtureOrder("ord_1", p.Email()), nil
}

// Orders delegates to OrdersFn.
func (s StoreFacadeStub) Orders(ctx context.Context, p access.Principal) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, p)
	}
	return []model.Order{*FixtureOrder("ord_1", p.Email())}, nil
}

// Order delegates to OrderFn.
func (s StoreFacadeStub) Order(ctx context.Context, p access.Principal, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, p, id)
	}
	return FixtureOrder(id, p.Email()), nil
}

// RecentOrders delegates to RecentOrdersFn.
func (s StoreFacadeStub) RecentOrders(ctx context.Context, grant access.AdminGrant, limit int) ([]model.Order, error) {
	if s.RecentOrdersFn != nil {
		return s.RecentOrdersFn(ctx, grant, limit)
	}
	return []model.Order{*FixtureOrder("ord_1", "buyer@example.com")}, nil
}

// UpdateOrderStatus delegates to UpdateOrderStatusFn.
func (s StoreFacadeStub) UpdateOrderStatus(ctx context.Context, grant access.AdminGrant, id string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateOrderStatusFn != nil {
		return s.UpdateOrderStatusFn(ctx, grant, id, status)
	}
	order := FixtureOrder(id, "buyer@example.com")
	order.Status = status
	return order, nil
}

// ResolveDownload delegates to ResolveDownloadFn.
func (s StoreFacadeStub) ResolveDownload(ctx context.Context, orderID, beatID, token string) (string, error) {
	if s.ResolveDownloadFn != nil {
		return s.ResolveDownloadFn(ctx, orderID, beatID, token)
	}
	return "https://cdn.example.com/" + beatID + ".mp3", nil
}

// CreateCollaboration delegates to CreateCollaborationFn or builds the draft.
func (s StoreFacadeStub) CreateCollaboration(ctx context.Context, grant access.AdminGrant, draft model.CollaborationDraft) (*model.Collaboration, error) {
	if s.CreateCollaborationFn != nil {
		return s.CreateCollaborationFn(ctx, grant, draft)
	}
	return model.NewCollaboration("col_1", draft, grant.Principal().ID(), fixtureTime)
}

// Collaboration delegates to CollaborationFn.
func (s StoreFacadeStub) Collaboration(ctx context.Context, grant access.AdminGrant, id string) (*model.Collaboration, error) {
	if s.CollaborationFn != nil {
		return s.CollaborationFn(ctx, grant, id)
	}
	return FixtureCollaboration(id), nil
}

// Collaborations delegates to CollaborationsFn.
func (s StoreFacadeStub) Collaborations(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) ([]model.Collaboration, error) {
	if s.CollaborationsFn != nil {
		return s.CollaborationsFn(ctx, grant, filter)
	}
	return []model.Collaboration{*FixtureCollaboration("col_1")}, nil
}

// UpdateCollaboration delegates to UpdateCollaborationFn or applies the patch to a fixture.
func (s StoreFacadeStub) UpdateCollaboration(ctx context.Context, grant access.AdminGrant, id string, patch model.CollaborationPatch) (*model.Collaboration, error) {
	if s.UpdateCollaborationFn != nil {
		return s.UpdateCollaborationFn(ctx, grant, id, patch)
	}
	collab := FixtureCollaboration(id)
	if err := collab.Apply(patch, fixtureTime); err != nil {
		return nil, err
	}
	return collab, nil
}

// UpdateCollaborationStatus delegates to UpdateCollabStatusFn.
func (s StoreFacadeStub) UpdateCollaborationStatus(ctx context.Context, grant access.AdminGrant, id string, status model.CollaborationStatus) (*model.Collaboration, error) {
	if s.UpdateCollabStatusFn != nil {
		return s.UpdateCollabStatusFn(ctx, grant, id, status)
	}
	collab := FixtureCollaboration(id)
	if err := collab.SetStatus(status, fixtureTime); err != nil {
		return nil, err
	}
	return collab, nil
}

// RecordCollaborationPayment delegates to RecordPaymentFn.
func (s StoreFacadeStub) RecordCollaborationPayment(ctx context.Context, grant access.AdminGrant, id string, paid model.Money) (*model.Collaboration, error) {
	if s.RecordPaymentFn != nil {
		return s.RecordPaymentFn(ctx, grant, id, paid)
	}
	collab := FixtureCollaboration(id)
	if err := collab.RecordPayment(paid, fixtureTime); err != nil {
		return nil, err
	}
	return collab, nil
}

// DeleteCollaboration delegates to DeleteCollaborationFn.
func (s StoreFacadeStub) DeleteCollaboration(ctx context.Context, grant access.AdminGrant, id string) error {
	if s.DeleteCollaborationFn != nil {
		return s.DeleteCollaborationFn(ctx, grant, id)
	}
	return nil
}

// CollaborationStats delegates to CollaborationStatsFn.
func (s StoreFacadeStub) CollaborationStats(ctx context.Context, grant access.AdminGrant) (model.CollaborationStats, error) {
	if s.CollaborationStatsFn != nil {
		return s.CollaborationStatsFn(ctx, grant)
	}
	return model.CollaborationStats{Total: 1, Active: 1}, nil
}

// WatchCollaborations delegates to WatchCollaborationsFn or opens a feed over one fixture.
func (s StoreFacadeStub) WatchCollaborations(ctx context.Context, grant access.AdminGrant, filter model.CollaborationFilter) (*usecase.CollaborationSubscription, error) {
	if s.WatchCollaborationsFn != nil {
		return s.WatchCollaborationsFn(ctx, grant, filter)
	}
	return feed.Subscribe(ctx, feed.NewHub(0, nil), func(context.Context) ([]model.Collaboration, error) {
		return []model.Collaboration{*FixtureCollaboration("col_1")}, nil
	})
}

// MyCollaborations delegates to MyCollaborationsFn.
func (s StoreFacadeStub) MyCollaborations(ctx context.Context, p access.Principal) ([]model.Collaboration, error) {
	if s.MyCollaborationsFn != nil {
		return s.MyCollaborationsFn(ctx, p)
	}
	return []model.Collaboration{}, nil
}

// Dashboard delegates to DashboardFn.
func (s StoreFacadeStub) Dashboard(ctx context.Context, grant access.AdminGrant) (*model.DashboardStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, grant)
	}
	return &model.DashboardStats{Orders: model.OrderStats{TotalOrders: 1}}, nil
}

// CustomerSummary delegates to CustomerSummaryFn.
func (s StoreFacadeStub) CustomerSummary(ctx context.Context, p access.Principal) (*model.CustomerSummary, error) {
	if s.CustomerSummaryFn != nil {
		return s.CustomerSummaryFn(ctx, p)
	}
	return &model.CustomerSummary{TotalOrders: 1, TotalSpent: 2999}, nil
}

// ArtistSummary delegates to ArtistSummaryFn.
func (s StoreFacadeStub) ArtistSummary(ctx context.Context, p access.Principal) (*model.ArtistSummary, error) {
	if s.ArtistSummaryFn != nil {
		return s.ArtistSummaryFn(ctx, p)
	}
	return &model.ArtistSummary{ActiveCollaborations: 1}, nil
}

// Subscribe delegates to SubscribeFn.
func (s StoreFacadeStub) Subscribe(ctx context.Context, email string) (bool, error) {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(ctx, email)
	}
	return true, nil
}

// Subscribers delegates to SubscribersFn.
func (s StoreFacadeStub) Subscribers(ctx context.Context, grant access.AdminGrant) ([]model.Subscriber, error) {
	if s.SubscribersFn != nil {
		return s.SubscribersFn(ctx, grant)
	}
	return []model.Subscriber{{Email: "fan@example.com", CreatedAt: fixtureTime}}, nil
}

// FixtureOrder returns a pending single item order.
func FixtureOrder(id, email string) *model.Order {
	return &model.Order{
		ID:            id,
		Number:        model.OrderNumber(id, fixtureTime),
		CustomerEmail: email,
		Items:         []model.OrderItem{{BeatID: "beat_1", Title: "Midnight", License: model.LicenseBasic, Price: 2999}},
		Subtotal:      2999,
		Tax:           240,
		Total:         3239,
		Status:        model.OrderStatusPending,
		CreatedAt:     fixtureTime,
		UpdatedAt:     fixtureTime,
	}
}

// FixtureCollaboration returns an unpaid pending collaboration.
func FixtureCollaboration(id string) *model.Collaboration {
	return &model.Collaboration{
		ID:            id,
		Title:         "Album intro",
		Type:          model.CollaborationTypeProduction,
		ClientName:    "Nova",
		ClientEmail:   "nova@example.com",
		Budget:        100000,
		PaymentStatus: model.PaymentStatusUnpaid,
		Status:        model.CollaborationStatusInquiry,
		CreatedBy:     "usr_admin",
		CreatedAt:     fixtureTime,
		UpdatedAt:     fixtureTime,
	}
}
