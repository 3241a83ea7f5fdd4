package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

// orderItemRecord is the JSONB shape of an order line.
type orderItemRecord struct {
	BeatID     string `json:"beat_id"`
	Title      string `json:"title"`
	ArtworkURL string `json:"artwork_url,omitempty"`
	License    string `json:"license"`
	Price      int64  `json:"price"`
}

const orderColumns = `id, number, customer_email, items, subtotal, tax, total, status, download_links, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (` + orderColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	items, err := encodeOrderItems(order.Items)
	if err != nil {
		return err
	}
	links, err := encodeDownloadLinks(order.DownloadLinks)
	if err != nil {
		return err
	}
	_, err = r.storage.pool.Exec(ctx, query,
		order.ID, order.Number, order.CustomerEmail, items,
		int64(order.Subtotal), int64(order.Tax), int64(order.Total), string(order.Status),
		links, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return r.storage.fault("create order", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, r.storage.lookupError("get order", err)
	}
	return order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE lower(customer_email)=lower($1) ORDER BY created_at DESC, id DESC`
	return r.list(ctx, "list customer orders", query, email)
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   ORDER BY created_at DESC, id DESC LIMIT NULLIF($1, 0)`
	return r.list(ctx, "list recent orders", query, clampLimit(limit))
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`
	return r.list(ctx, "list orders", query)
}

// ListAwaitingFulfillment returns completed orders without download links, oldest first.
func (r *orderRepository) ListAwaitingFulfillment(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE status='completed' AND (download_links IS NULL OR download_links='{}'::jsonb)
                   ORDER BY created_at, id LIMIT NULLIF($1, 0)`
	return r.list(ctx, "list orders awaiting fulfillment", query, clampLimit(limit))
}

// Update locks the order row, applies mutate and persists status, links and updated_at.
func (r *orderRepository) Update(ctx context.Context, id string, mutate repository.OrderMutation) (*model.Order, error) {
	const selectQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	const updateQuery = `UPDATE orders SET status=$1, download_links=$2, updated_at=$3 WHERE id=$4`

	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := scanOrder(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			return r.storage.lookupError("lock order", err)
		}
		if err := mutate(order); err != nil {
			return err
		}
		links, err := encodeDownloadLinks(order.DownloadLinks)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, updateQuery, string(order.Status), links, order.UpdatedAt, id); err != nil {
			return r.storage.fault("update order", err)
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *orderRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.storage.fault(op, err)
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, r.storage.fault(op, err)
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fault(op, err)
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o                    model.Order
		items, links         []byte
		subtotal, tax, total int64
		status               string
	)
	err := row.Scan(&o.ID, &o.Number, &o.CustomerEmail, &items, &subtotal, &tax, &total, &status, &links, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Subtotal, o.Tax, o.Total = model.Money(subtotal), model.Money(tax), model.Money(total)
	o.Status = model.OrderStatus(status)

	var records []orderItemRecord
	if err := json.Unmarshal(items, &records); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	o.Items = make([]model.OrderItem, 0, len(records))
	for _, rec := range records {
		o.Items = append(o.Items, model.OrderItem{
			BeatID:     rec.BeatID,
			Title:      rec.Title,
			ArtworkURL: rec.ArtworkURL,
			License:    model.License(rec.License),
			Price:      model.Money(rec.Price),
		})
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &o.DownloadLinks); err != nil {
			return nil, fmt.Errorf("decode download links: %w", err)
		}
	}
	return &o, nil
}

func encodeOrderItems(items []model.OrderItem) ([]byte, error) {
	records := make([]orderItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, orderItemRecord{
			BeatID:     item.BeatID,
			Title:      item.Title,
			ArtworkURL: item.ArtworkURL,
			License:    string(item.License),
			Price:      int64(item.Price),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	return data, nil
}

// encodeDownloadLinks stores an empty map as NULL.
func encodeDownloadLinks(links map[string]string) ([]byte, error) {
	if len(links) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("encode download links: %w", err)
	}
	return data, nil
}

func clampLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	return limit
}
