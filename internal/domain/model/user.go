package model

import (
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleArtist Role = "artist"
	RoleUser   Role = "user"
)

// ParseRole validates raw role names coming from tokens or requests.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", domainErrors.ErrValidation, raw)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleArtist, RoleUser:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// Subscriber is a newsletter address.
type Subscriber struct {
	Email     string
	CreatedAt time.Time
}
