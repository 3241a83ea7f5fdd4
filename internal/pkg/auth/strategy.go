package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Claims is the identity carried by an auth token.
type Claims struct {
	UserID      string
	Email       string
	DisplayName string
	Role        model.Role
}

type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 24 * time.Hour
	}
	if o.Issuer == "" {
		o.Issuer = "beatstore"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
