package postgres

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, email, display_name, role, password_hash, created_at`

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, email, display_name, role, password_hash, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := r.storage.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.DisplayName, string(user.Role), user.PasswordHash, user.CreatedAt,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, r.storage.fault("create user", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.get(ctx, "get user by email", query, strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.get(ctx, "get user by id", query, id)
}

func (r *userRepository) get(ctx context.Context, op, query string, arg any) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.DisplayName, &role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, r.storage.lookupError(op, err)
	}
	u.Role = model.Role(role)
	return &u, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role model.Role) error {
	const query = `UPDATE users SET role=$1 WHERE id=$2`
	return r.update(ctx, "update user role", query, string(role), id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1 WHERE id=$2`
	return r.update(ctx, "update user password", query, passwordHash, id)
}

func (r *userRepository) update(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return r.storage.fault(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
