package postgres

import (
	"context"
	"strings"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

type subscriberRepository struct {
	storage *Storage
}

// Add reports whether the address was newly stored.
func (r *subscriberRepository) Add(ctx context.Context, email string) (bool, error) {
	const query = `INSERT INTO subscribers (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, r.storage.fault("add subscriber", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *subscriberRepository) List(ctx context.Context) ([]model.Subscriber, error) {
	const query = `SELECT email, created_at FROM subscribers ORDER BY created_at DESC, email`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, r.storage.fault("list subscribers", err)
	}
	defer rows.Close()

	result := make([]model.Subscriber, 0)
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.Email, &s.CreatedAt); err != nil {
			return nil, r.storage.fault("list subscribers", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fault("list subscribers", err)
	}
	return result, nil
}
