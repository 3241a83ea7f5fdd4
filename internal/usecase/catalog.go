package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/domain/repository"
)

// CartLine references a beat and the license tier the customer picked.
type CartLine struct {
	BeatID  string
	License model.License
}

// CatalogUseCase serves the beat catalog.
type CatalogUseCase struct {
	beats repository.BeatRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(beats repository.BeatRepository) *CatalogUseCase {
	return &CatalogUseCase{beats: beats}
}

// All returns the whole catalog in display order.
func (u *CatalogUseCase) All(ctx context.Context) ([]model.Beat, error) {
	beats, err := u.beats.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	model.SortForDisplay(beats)
	return beats, nil
}

// Search returns beats whose title, genre or tags contain query. Callers skip
// the call for an empty term.
func (u *CatalogUseCase) Search(ctx context.Context, query string) ([]model.Beat, error) {
	beats, err := u.beats.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	model.SortForDisplay(beats)
	return beats, nil
}

// ByGenre returns beats of exactly that genre, or everything for model.GenreAll.
func (u *CatalogUseCase) ByGenre(ctx context.Context, genre string) ([]model.Beat, error) {
	if genre == model.GenreAll {
		return u.All(ctx)
	}
	beats, err := u.beats.GetByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	model.SortForDisplay(beats)
	return beats, nil
}

// Browse combines text and genre filters. Both filters run independently and
// a beat is kept only when it appears in both results.
func (u *CatalogUseCase) Browse(ctx context.Context, query, genre string) ([]model.Beat, error) {
	query = strings.TrimSpace(query)
	genre = strings.TrimSpace(genre)
	if genre == "" {
		genre = model.GenreAll
	}

	if query == "" {
		return u.ByGenre(ctx, genre)
	}

	matches, err := u.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if genre == model.GenreAll {
		return matches, nil
	}

	inGenre, err := u.ByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	beats := model.IntersectBeats(matches, inGenre)
	model.SortForDisplay(beats)
	return beats, nil
}

// Featured returns featured beats, newest first.
func (u *CatalogUseCase) Featured(ctx context.Context) ([]model.Beat, error) {
	beats, err := u.All(ctx)
	if err != nil {
		return nil, err
	}
	featured := make([]model.Beat, 0, len(beats))
	for _, b := range beats {
		if b.Featured {
			featured = append(featured, b)
		}
	}
	return featured, nil
}

// Genres lists the genre filter options: GenreAll first, then distinct genres in catalog order.
func (u *CatalogUseCase) Genres(ctx context.Context) ([]string, error) {
	beats, err := u.beats.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{model.GenreAll: {}}
	genres := make([]string, 0, len(beats)+1)
	genres = append(genres, model.GenreAll)
	for _, b := range beats {
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		genres = append(genres, b.Genre)
	}
	return genres, nil
}

// Get returns a single beat or ErrNotFound.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.Beat, error) {
	return u.beats.GetByID(ctx, id)
}

// Stats returns catalog counters.
func (u *CatalogUseCase) Stats(ctx context.Context) (model.CatalogStats, error) {
	beats, err := u.beats.GetAll(ctx)
	if err != nil {
		return model.CatalogStats{}, err
	}
	return model.ComputeCatalogStats(beats), nil
}

// Quote prices the lines against the current catalog and returns the filled cart.
func (u *CatalogUseCase) Quote(ctx context.Context, lines []CartLine) (*model.Cart, error) {
	cart := model.NewCart()
	for _, line := range lines {
		beat, err := u.beats.GetByID(ctx, line.BeatID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: beat %q is not in the catalog", domainErrors.ErrValidation, line.BeatID)
			}
			return nil, err
		}
		if _, err := cart.Add(*beat, line.License); err != nil {
			return nil, err
		}
	}
	return cart, nil
}
