package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

const seedArtist = "Jonna Rincon"

// SeedBeats returns the demo catalog. Featured beats are the most recent.
func SeedBeats(now time.Time) []model.Beat {
	beat := func(n int, title string, bpm int, key, genre string, price model.Money, featured bool, photo string, tags ...string) model.Beat {
		created := now.Add(-time.Duration(n) * time.Hour)
		return model.Beat{
			ID:         fmt.Sprint(n),
			Title:      title,
			Artist:     seedArtist,
			BPM:        bpm,
			Key:        key,
			Genre:      genre,
			Price:      price,
			AudioURL:   fmt.Sprintf("https://www.soundhelix.com/examples/mp3/SoundHelix-Song-%d.mp3", n),
			ArtworkURL: fmt.Sprintf("https://images.pexels.com/photos/%s/pexels-photo-%s.jpeg?auto=compress&cs=tinysrgb&w=400", photo, photo),
			Tags:       tags,
			Licenses:   model.AllLicenses(),
			Featured:   featured,
			CreatedAt:  created,
			UpdatedAt:  created,
		}
	}
	return []model.Beat{
		beat(1, "Midnight Dreams", 140, "Am", "Trap", 2900, true, "114820", "dark", "trap", "atmospheric"),
		beat(2, "Purple Haze", 128, "Gm", "Hip Hop", 3900, true, "1763075", "chill", "smooth", "purple"),
		beat(3, "Neon Nights", 150, "F#m", "Drill", 4900, false, "1190297", "hard", "drill", "uk"),
		beat(4, "Studio Sessions", 90, "Dm", "R&B", 3500, false, "1933900", "smooth", "rnb", "melodic"),
		beat(5, "Bassline Theory", 174, "Em", "Drum & Bass", 4500, false, "1389429", "dnb", "liquid", "fast"),
		beat(6, "Lost in Tokyo", 120, "Cm", "Lo-Fi", 2500, true, "1123262", "lofi", "chill", "study"),
	}
}

// SeedCatalog inserts the demo beats; existing rows are left as they are.
func (s *Storage) SeedCatalog(ctx context.Context, beats []model.Beat) (int, error) {
	const query = `INSERT INTO beats (` + beatColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
                   ON CONFLICT (id) DO NOTHING`
	inserted := 0
	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, b := range beats {
			tag, err := tx.Exec(ctx, query,
				b.ID, b.Title, b.Artist, b.BPM, b.Key, b.Genre, int64(b.Price), b.AudioURL, b.ArtworkURL, b.Tags,
				b.Licenses.Basic, b.Licenses.Premium, b.Licenses.Exclusive, b.Featured, b.CreatedAt, b.UpdatedAt)
			if err != nil {
				return s.fault("seed catalog", err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if s.logger != nil {
		s.logger.Info("catalog seeded", "inserted", inserted, "total", len(beats))
	}
	return inserted, nil
}
