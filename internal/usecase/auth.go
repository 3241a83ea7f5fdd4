package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/polkiloo/beatstore/internal/access"
	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
	pkgAuth "github.com/polkiloo/beatstore/internal/pkg/auth"
	"github.com/polkiloo/beatstore/internal/pkg/ident"
)

// Registration carries the sign-up form.
type Registration struct {
	Email           string
	Password        string
	ConfirmPassword string
	DisplayName     string
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	ids    ident.Generator
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, ids ident.Generator, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, ids: ids, logger: logger, now: time.Now}
}

// Register creates a regular user account and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, reg Registration) (*model.User, string, error) {
	email, err := NormalizeEmail(reg.Email)
	if err != nil {
		return nil, "", err
	}
	if err := pkgAuth.ValidatePassword(reg.Password, reg.ConfirmPassword); err != nil {
		return nil, "", err
	}

	usr, err := u.createUser(ctx, email, reg.Password, reg.DisplayName, model.RoleUser)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Principal verifies token and returns the caller it identifies.
func (u *AuthUseCase) Principal(token string) (access.Principal, error) {
	if token == "" {
		return access.Principal{}, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return access.Principal{}, err
	}
	return access.NewPrincipal(claims.UserID, claims.Email, claims.DisplayName, claims.Role)
}

// ChangePassword replaces the caller's password after checking the current one.
func (u *AuthUseCase) ChangePassword(ctx context.Context, p access.Principal, current, next, confirmation string) error {
	if !p.Authenticated() {
		return domainErrors.ErrUnauthorized
	}
	if err := pkgAuth.ValidatePassword(next, confirmation); err != nil {
		return err
	}

	usr, err := u.users.GetByID(ctx, p.ID())
	if err != nil {
		return err
	}
	if err := u.hasher.Compare(usr.PasswordHash, current); err != nil {
		return domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(next)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, usr.ID, hash)
}

// ChangeRole assigns role to the user. The new role applies to tokens issued afterwards.
func (u *AuthUseCase) ChangeRole(ctx context.Context, grant access.AdminGrant, userID string, role model.Role) (*model.User, error) {
	if err := grant.Check(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domainErrors.ErrValidation, role)
	}
	if err := u.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return u.users.GetByID(ctx, userID)
}

// EnsureAdmin creates the bootstrap administrator or promotes an existing account.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (*model.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(email)

	usr, err := u.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		if err := pkgAuth.ValidatePassword(password, password); err != nil {
			return nil, err
		}
		usr, err = u.createUser(ctx, email, password, "Administrator", model.RoleAdmin)
		if err != nil {
			return nil, err
		}
		u.logger.Info("bootstrap admin created", slog.String("user_id", usr.ID))
		return usr, nil
	case err != nil:
		return nil, err
	}

	if usr.Role != model.RoleAdmin {
		if err := u.users.UpdateRole(ctx, usr.ID, model.RoleAdmin); err != nil {
			return nil, err
		}
		usr.Role = model.RoleAdmin
		u.logger.Info("bootstrap admin promoted", slog.String("user_id", usr.ID))
	}
	return usr, nil
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *AuthUseCase) createUser(ctx context.Context, email, password, displayName string, role model.Role) (*model.User, error) {
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	id, err := u.ids.New(ident.PrefixUser)
	if err != nil {
		return nil, err
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}

	return u.users.Create(ctx, model.User{
		ID:           id,
		Email:        strings.ToLower(email),
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    u.now().UTC(),
	})
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(pkgAuth.Claims{
		UserID:      usr.ID,
		Email:       usr.Email,
		DisplayName: usr.DisplayName,
		Role:        usr.Role,
	})
}
