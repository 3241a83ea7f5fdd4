package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
)

type collaborationRepository struct {
	storage *Storage
}

const collaborationColumns = `id, title, type, description, client_name, client_email, assigned_to, budget, paid_amount,
                              payment_status, status, deadline, notes, created_by, created_at, updated_at, signed_at, completed_at`

func (r *collaborationRepository) Create(ctx context.Context, c *model.Collaboration) error {
	const query = `INSERT INTO collaborations (` + collaborationColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.storage.pool.Exec(ctx, query,
		c.ID, c.Title, string(c.Type), c.Description, c.ClientName, c.ClientEmail, c.AssignedTo,
		int64(c.Budget), int64(c.PaidAmount), string(c.PaymentStatus), string(c.Status), c.Deadline,
		c.Notes, c.CreatedBy, c.CreatedAt, c.UpdatedAt, c.SignedAt, c.CompletedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return r.storage.fault("create collaboration", err)
	}
	return nil
}

func (r *collaborationRepository) GetByID(ctx context.Context, id string) (*model.Collaboration, error) {
	const query = `SELECT ` + collaborationColumns + ` FROM collaborations WHERE id=$1`
	c, err := scanCollaboration(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, r.storage.lookupError("get collaboration", err)
	}
	return c, nil
}

// List returns collaborations matching filter, newest first.
func (r *collaborationRepository) List(ctx context.Context, filter model.CollaborationFilter) ([]model.Collaboration, error) {
	query, args := collaborationListQuery(filter)
	return r.list(ctx, "list collaborations", query, args...)
}

func (r *collaborationRepository) ListForParticipant(ctx context.Context, userID, email string) ([]model.Collaboration, error) {
	const query = `SELECT ` + collaborationColumns + ` FROM collaborations
                   WHERE ($1 <> '' AND lower(client_email)=lower($1)) OR ($2 <> '' AND assigned_to=$2)
                   ORDER BY created_at DESC, id DESC`
	return r.list(ctx, "list participant collaborations", query, email, userID)
}

// Update locks the row, applies mutate and writes every mutable column back.
func (r *collaborationRepository) Update(ctx context.Context, id string, mutate repository.CollaborationMutation) (*model.Collaboration, error) {
	const selectQuery = `SELECT ` + collaborationColumns + ` FROM collaborations WHERE id=$1 FOR UPDATE`
	const updateQuery = `UPDATE collaborations SET title=$1, type=$2, description=$3, client_name=$4, client_email=$5,
                         assigned_to=$6, budget=$7, paid_amount=$8, payment_status=$9, status=$10, deadline=$11,
                         notes=$12, updated_at=$13, signed_at=$14, completed_at=$15
                         WHERE id=$16`

	var updated *model.Collaboration
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		c, err := scanCollaboration(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			return r.storage.lookupError("lock collaboration", err)
		}
		if err := mutate(c); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, updateQuery,
			c.Title, string(c.Type), c.Description, c.ClientName, c.ClientEmail, c.AssignedTo,
			int64(c.Budget), int64(c.PaidAmount), string(c.PaymentStatus), string(c.Status), c.Deadline,
			c.Notes, c.UpdatedAt, c.SignedAt, c.CompletedAt, id)
		if err != nil {
			return r.storage.fault("update collaboration", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *collaborationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM collaborations WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return r.storage.fault("delete collaboration", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func collaborationListQuery(filter model.CollaborationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Status != "" {
		conds = append(conds, "status="+arg(string(filter.Status)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		conds = append(conds, "status = ANY("+arg(statuses)+")")
	}
	if filter.Type != "" {
		conds = append(conds, "type="+arg(string(filter.Type)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + collaborationColumns + " FROM collaborations")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT " + arg(filter.Limit))
	}
	return b.String(), args
}

func (r *collaborationRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Collaboration, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.storage.fault(op, err)
	}
	defer rows.Close()

	result := make([]model.Collaboration, 0)
	for rows.Next() {
		c, err := scanCollaboration(rows)
		if err != nil {
			return nil, r.storage.fault(op, err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fault(op, err)
	}
	return result, nil
}

func scanCollaboration(row pgx.Row) (*model.Collaboration, error) {
	var (
		c                           model.Collaboration
		kind, payment, status       string
		budget, paid                int64
		deadline, signed, completed *time.Time
	)
	err := row.Scan(&c.ID, &c.Title, &kind, &c.Description, &c.ClientName, &c.ClientEmail, &c.AssignedTo,
		&budget, &paid, &payment, &status, &deadline, &c.Notes, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&signed, &completed)
	if err != nil {
		return nil, err
	}
	c.Type = model.CollaborationType(kind)
	c.PaymentStatus = model.PaymentStatus(payment)
	c.Status = model.CollaborationStatus(status)
	c.Budget, c.PaidAmount = model.Money(budget), model.Money(paid)
	c.Deadline, c.SignedAt, c.CompletedAt = deadline, signed, completed
	return &c, nil
}
