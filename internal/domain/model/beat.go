package model

import (
	"sort"
	"strings"
	"time"
)

// GenreAll is the genre filter value that selects the whole catalog.
const GenreAll = "All"

// Beat is a catalog item offered for licensing.
type Beat struct {
	ID         string
	Title      string
	Artist     string
	BPM        int
	Key        string
	Genre      string
	Price      Money
	AudioURL   string
	ArtworkURL string
	Tags       []string
	Licenses   LicenseSet
	Featured   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MatchesQuery reports whether title, genre or any tag contains query, ignoring case.
func (b Beat) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Genre), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SortForDisplay orders beats featured first, then newest first.
func SortForDisplay(beats []Beat) {
	sort.SliceStable(beats, func(i, j int) bool {
		if beats[i].Featured != beats[j].Featured {
			return beats[i].Featured
		}
		return beats[i].CreatedAt.After(beats[j].CreatedAt)
	})
}

// IntersectBeats keeps the beats of a that also appear in b, compared by ID.
func IntersectBeats(a, b []Beat) []Beat {
	ids := make(map[string]struct{}, len(b))
	for _, beat := range b {
		ids[beat.ID] = struct{}{}
	}
	result := make([]Beat, 0, len(a))
	for _, beat := range a {
		if _, ok := ids[beat.ID]; ok {
			result = append(result, beat)
		}
	}
	return result
}
