package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

type beatRepository struct {
	storage *Storage
}

const beatColumns = `id, title, artist, bpm, musical_key, genre, price, audio_url, artwork_url, tags,
                     license_basic, license_premium, license_exclusive, featured, created_at, updated_at`

const beatOrder = ` ORDER BY featured DESC, created_at DESC, id`

func (r *beatRepository) GetAll(ctx context.Context) ([]model.Beat, error) {
	const query = `SELECT ` + beatColumns + ` FROM beats` + beatOrder
	return r.list(ctx, "list beats", query)
}

func (r *beatRepository) GetByID(ctx context.Context, id string) (*model.Beat, error) {
	const query = `SELECT ` + beatColumns + ` FROM beats WHERE id=$1`
	beat, err := scanBeat(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, r.storage.lookupError("get beat", err)
	}
	return beat, nil
}

// Search matches title, genre or any tag by case-insensitive substring.
func (r *beatRepository) Search(ctx context.Context, query string) ([]model.Beat, error) {
	const sql = `SELECT ` + beatColumns + ` FROM beats
                 WHERE title ILIKE $1 OR genre ILIKE $1
                    OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1)` + beatOrder
	return r.list(ctx, "search beats", sql, likePattern(query))
}

func (r *beatRepository) GetByGenre(ctx context.Context, genre string) ([]model.Beat, error) {
	const query = `SELECT ` + beatColumns + ` FROM beats WHERE genre=$1` + beatOrder
	return r.list(ctx, "list beats by genre", query, genre)
}

func (r *beatRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Beat, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.storage.fault(op, err)
	}
	defer rows.Close()

	result := make([]model.Beat, 0)
	for rows.Next() {
		beat, err := scanBeat(rows)
		if err != nil {
			return nil, r.storage.fault(op, err)
		}
		result = append(result, *beat)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fault(op, err)
	}
	return result, nil
}

func scanBeat(row pgx.Row) (*model.Beat, error) {
	var (
		b     model.Beat
		price int64
	)
	err := row.Scan(&b.ID, &b.Title, &b.Artist, &b.BPM, &b.Key, &b.Genre, &price, &b.AudioURL, &b.ArtworkURL, &b.Tags,
		&b.Licenses.Basic, &b.Licenses.Premium, &b.Licenses.Exclusive, &b.Featured, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Price = model.Money(price)
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return &b, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
