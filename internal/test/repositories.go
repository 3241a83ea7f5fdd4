package test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
	"github.com/polkiloo/beatstore/internal/pkg/ident"
)

// MemoryStore bundles in-memory repositories behind repository.Factory.
type MemoryStore struct {
	UserRepo          *UserRepositoryStub
	BeatRepo          *BeatRepositoryStub
	OrderRepo         *OrderRepositoryStub
	CollaborationRepo *CollaborationRepositoryStub
	SubscriberRepo    *SubscriberRepositoryStub
}

// NewMemoryStore constructs empty repositories.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		UserRepo:          NewUserRepositoryStub(),
		BeatRepo:          &BeatRepositoryStub{},
		OrderRepo:         NewOrderRepositoryStub(),
		CollaborationRepo: NewCollaborationRepositoryStub(),
		SubscriberRepo:    &SubscriberRepositoryStub{},
	}
}

func (s *MemoryStore) Users() repository.UserRepository                   { return s.UserRepo }
func (s *MemoryStore) Beats() repository.BeatRepository                   { return s.BeatRepo }
func (s *MemoryStore) Orders() repository.OrderRepository                 { return s.OrderRepo }
func (s *MemoryStore) Collaborations() repository.CollaborationRepository { return s.CollaborationRepo }
func (s *MemoryStore) Subscribers() repository.SubscriberRepository       { return s.SubscriberRepo }

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	ByID  map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	key := strings.ToLower(user.Email)
	if _, exists := s.Users[key]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := user
	s.Users[key] = &stored
	s.ByID[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[strings.ToLower(email)]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateRole changes the stored role.
func (s *UserRepositoryStub) UpdateRole(ctx context.Context, id string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	return nil
}

// UpdatePassword replaces the stored hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// BeatRepositoryStub serves a fixed catalog in storage order.
type BeatRepositoryStub struct {
	Beats []model.Beat
	Err   error
	Calls int
}

// GetAll returns a copy of the catalog.
func (s *BeatRepositoryStub) GetAll(ctx context.Context) ([]model.Beat, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Beat(nil), s.Beats...), nil
}

// GetByID returns the beat or not found.
func (s *BeatRepositoryStub) GetByID(ctx context.Context, id string) (*model.Beat, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	for _, b := range s.Beats {
		if b.ID == id {
			beat := b
			return &beat, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Search applies the same predicate as the SQL store.
func (s *BeatRepositoryStub) Search(ctx context.Context, query string) ([]model.Beat, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Beat
	for _, b := range s.Beats {
		if b.MatchesQuery(query) {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetByGenre returns beats with exactly the given genre.
func (s *BeatRepositoryStub) GetByGenre(ctx context.Context, genre string) ([]model.Beat, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Beat
	for _, b := range s.Beats {
		if b.Genre == genre {
			out = append(out, b)
		}
	}
	return out, nil
}

// OrderRepositoryStub keeps orders in memory and applies mutations atomically.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	orders map[string]*model.Order
	Err    error
	Writes int
}

// NewOrderRepositoryStub constructs an empty order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{orders: make(map[string]*model.Order)}
}

// Create stores a copy of the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.orders[order.ID] = CloneOrder(order)
	s.Writes++
	return nil
}

// GetByID returns a copy of the order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return CloneOrder(order), nil
}

// ListByCustomer returns the customer's orders newest first.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	return s.list(func(o *model.Order) bool { return o.CustomerEmail == email }, 0, true)
}

// ListRecent returns up to limit orders newest first.
func (s *OrderRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	return s.list(nil, limit, true)
}

// ListAll returns every order newest first.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.list(nil, 0, true)
}

// ListAwaitingFulfillment returns completed orders without links, oldest first.
func (s *OrderRepositoryStub) ListAwaitingFulfillment(ctx context.Context, limit int) ([]model.Order, error) {
	return s.list(func(o *model.Order) bool {
		return o.Status == model.OrderStatusCompleted && len(o.DownloadLinks) == 0
	}, limit, false)
}

// Update applies mutate to a copy and stores it only when mutate succeeds.
func (s *OrderRepositoryStub) Update(ctx context.Context, id string, mutate repository.OrderMutation) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	current, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	draft := CloneOrder(current)
	if err := mutate(draft); err != nil {
		return nil, err
	}
	s.orders[id] = CloneOrder(draft)
	s.Writes++
	return draft, nil
}

func (s *OrderRepositoryStub) list(keep func(*model.Order) bool, limit int, newestFirst bool) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if keep == nil || keep(o) {
			out = append(out, *CloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID == newestFirst
		}
		return out[i].CreatedAt.After(out[j].CreatedAt) == newestFirst
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CloneOrder deep copies items and links.
func CloneOrder(o *model.Order) *model.Order {
	out := *o
	out.Items = append([]model.OrderItem(nil), o.Items...)
	if o.DownloadLinks != nil {
		out.DownloadLinks = make(map[string]string, len(o.DownloadLinks))
		for k, v := range o.DownloadLinks {
			out.DownloadLinks[k] = v
		}
	}
	return &out
}

// CollaborationRepositoryStub keeps collaborations in memory.
type CollaborationRepositoryStub struct {
	mu      sync.Mutex
	collabs map[string]*model.Collaboration
	Err     error
	Writes  int
}

// NewCollaborationRepositoryStub constructs an empty collaboration store.
func NewCollaborationRepositoryStub() *CollaborationRepositoryStub {
	return &CollaborationRepositoryStub{collabs: make(map[string]*model.Collaboration)}
}

// Create stores a copy of the collaboration.
func (s *CollaborationRepositoryStub) Create(ctx context.Context, collab *model.Collaboration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.collabs[collab.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := *collab
	s.collabs[collab.ID] = &stored
	s.Writes++
	return nil
}

// GetByID returns a copy of the collaboration.
func (s *CollaborationRepositoryStub) GetByID(ctx context.Context, id string) (*model.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.collabs[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *c
	return &out, nil
}

// List returns collaborations matching filter, newest first.
func (s *CollaborationRepositoryStub) List(ctx context.Context, filter model.CollaborationFilter) ([]model.Collaboration, error) {
	out, err := s.list(filter.Matches)
	if err != nil {
		return nil, err
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ListForParticipant returns collaborations involving the user.
func (s *CollaborationRepositoryStub) ListForParticipant(ctx context.Context, userID, email string) ([]model.Collaboration, error) {
	return s.list(func(c model.Collaboration) bool { return c.InvolvesParticipant(userID, email) })
}

// Update applies mutate to a copy and stores it only when mutate succeeds.
func (s *CollaborationRepositoryStub) Update(ctx context.Context, id string, mutate repository.CollaborationMutation) (*model.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	current, ok := s.collabs[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	draft := *current
	if err := mutate(&draft); err != nil {
		return nil, err
	}
	stored := draft
	s.collabs[id] = &stored
	s.Writes++
	return &draft, nil
}

// Delete removes the collaboration.
func (s *CollaborationRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.collabs[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.collabs, id)
	s.Writes++
	return nil
}

// Len returns the number of stored collaborations.
func (s *CollaborationRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collabs)
}

func (s *CollaborationRepositoryStub) list(keep func(model.Collaboration) bool) ([]model.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Collaboration, 0, len(s.collabs))
	for _, c := range s.collabs {
		if keep(*c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// SubscriberRepositoryStub stores newsletter addresses in memory.
type SubscriberRepositoryStub struct {
	mu    sync.Mutex
	Items []model.Subscriber
	Err   error
}

// Add stores email unless already present.
func (s *SubscriberRepositoryStub) Add(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, sub := range s.Items {
		if strings.EqualFold(sub.Email, email) {
			return false, nil
		}
	}
	s.Items = append(s.Items, model.Subscriber{Email: email})
	return true, nil
}

// List returns stored subscribers.
func (s *SubscriberRepositoryStub) List(ctx context.Context) ([]model.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Subscriber(nil), s.Items...), nil
}

// SequenceGenerator issues predictable identifiers such as "ord_00000000000000000000000001".
type SequenceGenerator struct {
	mu   sync.Mutex
	next int
	Err  error
}

// New returns the next identifier for prefix.
func (g *SequenceGenerator) New(prefix ident.Prefix) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return "", g.Err
	}
	g.next++
	return fmt.Sprintf("%s_%026d", prefix, g.next), nil
}

var (
	_ repository.Factory = (*MemoryStore)(nil)
	_ ident.Generator    = (*SequenceGenerator)(nil)
)
