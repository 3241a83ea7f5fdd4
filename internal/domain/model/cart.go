package model

import (
	"fmt"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
)

// CartItem is a beat selected with a license tier at a fixed price.
type CartItem struct {
	Beat    Beat
	License License
	Price   Money
}

// Cart accumulates items of a single browsing session.
type Cart struct {
	items []CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add prices the beat for the license and appends a new line.
// Adding the same beat again yields another line.
func (c *Cart) Add(beat Beat, license License) (CartItem, error) {
	if !license.Valid() {
		return CartItem{}, fmt.Errorf("%w: unknown license %q", domainErrors.ErrValidation, license)
	}
	if !beat.Licenses.Allows(license) {
		return CartItem{}, fmt.Errorf("%w: license %q not offered for beat %s", domainErrors.ErrValidation, license, beat.ID)
	}
	item := CartItem{Beat: beat, License: license, Price: license.Price(beat.Price)}
	c.items = append(c.items, item)
	return item, nil
}

// Restore appends an already priced line, e.g. one rebuilt from a client snapshot.
func (c *Cart) Restore(item CartItem) {
	c.items = append(c.items, item)
}

// Remove drops every line referencing beatID, whatever the tier, and returns how many were removed.
func (c *Cart) Remove(beatID string) int {
	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if item.Beat.ID == beatID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	return removed
}

// Subtotal sums the current line prices.
func (c *Cart) Subtotal() Money {
	var total Money
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Clear() {
	c.items = nil
}
