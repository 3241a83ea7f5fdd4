package test

import (
	"context"
	"errors"
	"strings"

	"github.com/polkiloo/beatstore/internal/access"
	"github.com/polkiloo/beatstore/internal/domain/model"
	pkgAuth "github.com/polkiloo/beatstore/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues readable tokens of the form "token|id|email|role".
type StrategyStub struct {
	IssueFn func(pkgAuth.Claims) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(claims pkgAuth.Claims) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(claims)
	}
	return strings.Join([]string{"token", claims.UserID, claims.Email, string(claims.Role)}, "|"), nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "token" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Claims{UserID: parts[1], Email: parts[2], Role: model.Role(parts[3])}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// PrincipalResolverStub implements middleware token resolution contract.
type PrincipalResolverStub struct {
	Principals map[string]access.Principal
	Err        error
	ResolveFn  func(string) (access.Principal, error)
}

// Principal either delegates to override or looks the token up.
func (s PrincipalResolverStub) Principal(token string) (access.Principal, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(token)
	}
	if s.Err != nil {
		return access.Principal{}, s.Err
	}
	if p, ok := s.Principals[token]; ok {
		return p, nil
	}
	return access.Principal{}, pkgAuth.ErrInvalidToken
}

// MustPrincipal builds a principal or panics; for fixtures only.
func MustPrincipal(id, email string, role model.Role) access.Principal {
	p, err := access.NewPrincipal(id, email, "", role)
	if err != nil {
		panic(err)
	}
	return p
}

// AdminGrant issues a real grant for fixtures.
func AdminGrant() access.AdminGrant {
	grant, err := access.NewGate(nil).RequireAdmin(MustPrincipal("usr_admin", "admin@example.com", model.RoleAdmin))
	if err != nil {
		panic(err)
	}
	return grant
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}

// HealthCheckerStub reports Err from every health check.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
