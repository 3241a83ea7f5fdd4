package model

import (
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// orderTransitions lists the statuses reachable from each status.
// Cancelled and refunded orders are final.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {OrderStatusRefunded},
	OrderStatusCancelled:  nil,
	OrderStatusRefunded:   nil,
}

// ParseOrderStatus validates raw status names.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown order status %q", domainErrors.ErrValidation, raw)
	}
	return s, nil
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// CanTransition reports whether the edge s -> to is in the transition table.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is the immutable snapshot of a purchased cart line.
type OrderItem struct {
	BeatID     string
	Title      string
	ArtworkURL string
	License    License
	Price      Money
}

// Order is a checkout record.
type Order struct {
	ID            string
	Number        string
	CustomerEmail string
	Items         []OrderItem
	Subtotal      Money
	Tax           Money
	Total         Money
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DownloadLinks map[string]string
}

// NewOrder builds a pending order from cart lines. Prices are taken as given.
func NewOrder(id, email string, items []CartItem, taxRateBPS int64, now time.Time) (*Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: customer email is required", domainErrors.ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domainErrors.ErrValidation)
	}

	order := &Order{
		ID:            id,
		Number:        OrderNumber(id, now),
		CustomerEmail: email,
		Items:         make([]OrderItem, 0, len(items)),
		Status:        OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range items {
		order.Items = append(order.Items, OrderItem{
			BeatID:     item.Beat.ID,
			Title:      item.Beat.Title,
			ArtworkURL: item.Beat.ArtworkURL,
			License:    item.License,
			Price:      item.Price,
		})
		order.Subtotal += item.Price
	}
	order.Tax = order.Subtotal.ApplyRate(taxRateBPS)
	order.Total = order.Subtotal + order.Tax
	return order, nil
}

// OrderNumber derives the customer facing order number. It keeps the whole
// identifier suffix so distinct orders never share a number.
func OrderNumber(id string, created time.Time) string {
	suffix := id
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		suffix = id[i+1:]
	}
	return fmt.Sprintf("ORD-%s-%s", created.UTC().Format("20060102"), strings.ToUpper(suffix))
}

// TransitionTo moves the order along an allowed edge.
func (o *Order) TransitionTo(status OrderStatus, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", domainErrors.ErrValidation, status)
	}
	if !o.Status.CanTransition(status) {
		return fmt.Errorf("%w: order %s cannot move from %s to %s", domainErrors.ErrInvalidTransition, o.ID, o.Status, status)
	}
	o.Status = status
	o.UpdatedAt = now
	return nil
}

// AttachDownloadLinks stores per-beat download references of a completed order.
func (o *Order) AttachDownloadLinks(links map[string]string, now time.Time) error {
	if o.Status != OrderStatusCompleted {
		return fmt.Errorf("%w: download links require a completed order, got %s", domainErrors.ErrInvalidTransition, o.Status)
	}
	o.DownloadLinks = make(map[string]string, len(links))
	for beatID, link := range links {
		o.DownloadLinks[beatID] = link
	}
	o.UpdatedAt = now
	return nil
}

// ItemsTotal sums the item prices.
func (o Order) ItemsTotal() Money {
	var sum Money
	for _, item := range o.Items {
		sum += item.Price
	}
	return sum
}
