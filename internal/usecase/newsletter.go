package usecase

import (
	"context"

	"github.com/polkiloo/beatstore/internal/access"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
)

// NewsletterUseCase manages newsletter sign-ups.
type NewsletterUseCase struct {
	subscribers repository.SubscriberRepository
}

// NewNewsletterUseCase constructs NewsletterUseCase.
func NewNewsletterUseCase(subscribers repository.SubscriberRepository) *NewsletterUseCase {
	return &NewsletterUseCase{subscribers: subscribers}
}

// Subscribe adds email and reports whether it was new.
func (u *NewsletterUseCase) Subscribe(ctx context.Context, email string) (bool, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	return u.subscribers.Add(ctx, email)
}

// Subscribers lists every sign-up.
func (u *NewsletterUseCase) Subscribers(ctx context.Context, grant access.AdminGrant) ([]model.Subscriber, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	return u.subscribers.List(ctx)
}
