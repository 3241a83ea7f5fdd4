package test

import (
	"time"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// DemoCatalog returns the six storefront demo beats; featured beats are the
// newest so display order is deterministic.
func DemoCatalog() []model.Beat {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	beat := func(id, title string, bpm int, key, genre string, price model.Money, featured bool, age int, tags ...string) model.Beat {
		created := base.Add(-time.Duration(age) * time.Hour)
		return model.Beat{
			ID:        id,
			Title:     title,
			Artist:    "Jonna Rincon",
			BPM:       bpm,
			Key:       key,
			Genre:     genre,
			Price:     price,
			Tags:      tags,
			Licenses:  model.AllLicenses(),
			Featured:  featured,
			CreatedAt: created,
			UpdatedAt: created,
		}
	}
	return []model.Beat{
		beat("1", "Midnight Dreams", 140, "Am", "Trap", 2900, true, 1, "dark", "trap", "atmospheric"),
		beat("2", "Purple Haze", 128, "Gm", "Hip Hop", 3900, true, 2, "chill", "smooth", "purple"),
		beat("3", "Neon Nights", 150, "F#m", "Drill", 4900, false, 3, "hard", "drill", "uk"),
		beat("4", "Studio Sessions", 90, "Dm", "R&B", 3500, false, 4, "smooth", "rnb", "melodic"),
		beat("5", "Bassline Theory", 174, "Em", "Drum & Bass", 4500, false, 5, "dnb", "liquid", "fast"),
		beat("6", "Lost in Tokyo", 120, "Cm", "Lo-Fi", 2500, true, 6, "lofi", "chill", "study"),
	}
}
