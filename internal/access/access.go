// Package access classifies callers and guards privileged ledger operations.
package access

import (
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
)

// Permission names a capability granted to a role.
type Permission string

const (
	PermPurchase              Permission = "purchase"
	PermViewOwnOrders         Permission = "orders:read:own"
	PermViewOwnCollaborations Permission = "collaborations:read:own"
	PermManageOrders          Permission = "orders:manage"
	PermManageCollaborations  Permission = "collaborations:manage"
	PermManageUsers           Permission = "users:manage"
	PermManageCatalog         Permission = "catalog:manage"
	PermViewStats             Permission = "stats:read"
	PermViewSubscribers       Permission = "subscribers:read"
)

var rolePermissions = map[model.Role][]Permission{
	model.RoleUser: {
		PermPurchase,
		PermViewOwnOrders,
	},
	model.RoleArtist: {
		PermPurchase,
		PermViewOwnOrders,
		PermViewOwnCollaborations,
	},
	model.RoleAdmin: {
		PermPurchase,
		PermViewOwnOrders,
		PermViewOwnCollaborations,
		PermManageOrders,
		PermManageCollaborations,
		PermManageUsers,
		PermManageCatalog,
		PermViewStats,
		PermViewSubscribers,
	},
}

// Principal is an authenticated caller.
type Principal struct {
	id          string
	email       string
	displayName string
	role        model.Role
}

// NewPrincipal builds a principal from verified identity claims.
func NewPrincipal(id, email, displayName string, role model.Role) (Principal, error) {
	if strings.TrimSpace(id) == "" {
		return Principal{}, fmt.Errorf("%w: principal without identifier", domainErrors.ErrUnauthorized)
	}
	if !role.Valid() {
		return Principal{}, fmt.Errorf("%w: unknown role %q", domainErrors.ErrUnauthorized, role)
	}
	return Principal{id: id, email: email, displayName: displayName, role: role}, nil
}

func (p Principal) ID() string          { return p.id }
func (p Principal) Email() string       { return p.email }
func (p Principal) DisplayName() string { return p.displayName }
func (p Principal) Role() model.Role    { return p.role }

// Authenticated reports whether p came from a verified identity.
func (p Principal) Authenticated() bool {
	return p.id != "" && p.role.Valid()
}

// Permissions returns the capability set of the role.
func Permissions(role model.Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Has reports whether the principal's role carries perm.
func (p Principal) Has(perm Permission) bool {
	if !p.Authenticated() {
		return false
	}
	for _, granted := range rolePermissions[p.role] {
		if granted == perm {
			return true
		}
	}
	return false
}

// AdminGrant proves that an administrator passed the gate. Only Gate mints valid grants.
type AdminGrant struct {
	principal Principal
}

// Principal returns the administrator the grant was issued to.
func (g AdminGrant) Principal() Principal {
	return g.principal
}

// Check rejects zero-value or forged grants.
func (g AdminGrant) Check() error {
	if !g.principal.Authenticated() || g.principal.role != model.RoleAdmin {
		return domainErrors.ErrUnauthorized
	}
	return nil
}

// Gate evaluates role membership before privileged operations.
type Gate struct {
	logger *slog.Logger
}

// NewGate constructs Gate.
func NewGate(logger *slog.Logger) *Gate {
	return &Gate{logger: logger}
}

// RequireAdmin issues an AdminGrant for administrators.
func (g *Gate) RequireAdmin(p Principal) (AdminGrant, error) {
	if !p.Authenticated() || p.role != model.RoleAdmin {
		g.deny(p, "admin")
		return AdminGrant{}, fmt.Errorf("%w: administrator role required", domainErrors.ErrUnauthorized)
	}
	return AdminGrant{principal: p}, nil
}

// Require fails unless the principal holds perm.
func (g *Gate) Require(p Principal, perm Permission) error {
	if !p.Has(perm) {
		g.deny(p, string(perm))
		return fmt.Errorf("%w: permission %s required", domainErrors.ErrUnauthorized, perm)
	}
	return nil
}

// RequireRole fails unless the principal has one of roles.
func (g *Gate) RequireRole(p Principal, roles ...model.Role) error {
	if p.Authenticated() {
		for _, r := range roles {
			if p.role == r {
				return nil
			}
		}
	}
	g.deny(p, "role")
	return fmt.Errorf("%w: role %q not allowed", domainErrors.ErrUnauthorized, p.role)
}

func (g *Gate) deny(p Principal, wanted string) {
	if g.logger == nil {
		return
	}
	g.logger.Warn("access denied",
		slog.String("user_id", p.id),
		slog.String("role", string(p.role)),
		slog.String("required", wanted),
	)
}
