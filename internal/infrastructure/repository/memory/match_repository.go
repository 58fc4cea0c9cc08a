package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
)

type MatchRepository struct {
	db *DB
}

func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByChampionship(_ context.Context, championshipID string) ([]match.Match, error) {
	var out []match.Match
	r.db.read(func(t *tables) {
		for _, item := range t.matches {
			if item.ChampionshipID == championshipID {
				out = append(out, item)
			}
		}
	})
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) ListByStatus(_ context.Context, statuses ...match.Status) ([]match.Match, error) {
	var out []match.Match
	r.db.read(func(t *tables) {
		for _, item := range t.matches {
			if slices.Contains(statuses, item.Status) {
				out = append(out, item)
			}
		}
	})
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	var (
		item   match.Match
		exists bool
	)
	r.db.read(func(t *tables) {
		item, exists = t.matches[strings.TrimSpace(matchID)]
	})
	return item, exists, nil
}

func (r *MatchRepository) Insert(ctx context.Context, items ...match.Match) error {
	return r.db.write(ctx, func(t *tables) error {
		for _, item := range items {
			if _, exists := t.matches[item.ID]; exists {
				return fmt.Errorf("insert match: duplicate id %s", item.ID)
			}
		}
		for _, item := range items {
			if item.Version == 0 {
				item.Version = 1
			}
			t.matches[item.ID] = item
		}
		return nil
	})
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) (match.Match, error) {
	err := r.db.write(ctx, func(t *tables) error {
		current, exists := t.matches[item.ID]
		if !exists {
			return fmt.Errorf("update match=%s: %w", item.ID, match.ErrVersionConflict)
		}
		if current.Version != item.Version {
			return fmt.Errorf("update match=%s stored=%d given=%d: %w", item.ID, current.Version, item.Version, match.ErrVersionConflict)
		}
		item.Version++
		t.matches[item.ID] = item
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}
	return item, nil
}

func (r *MatchRepository) UpdateElapsed(ctx context.Context, matchID string, minute int) error {
	return r.db.write(ctx, func(t *tables) error {
		current, exists := t.matches[matchID]
		if !exists {
			return fmt.Errorf("update elapsed: match=%s not found", matchID)
		}
		if !match.ClockRunning(current.Status) {
			return nil
		}
		current.ElapsedMinutes = minute
		t.matches[matchID] = current
		return nil
	})
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	return r.db.write(ctx, func(t *tables) error {
		delete(t.matches, matchID)
		return nil
	})
}

func (r *MatchRepository) DeleteGenerated(ctx context.Context, championshipID string) (int, error) {
	removed := 0
	err := r.db.write(ctx, func(t *tables) error {
		for id, item := range t.matches {
			if item.ChampionshipID == championshipID && item.Generated {
				delete(t.matches, id)
				removed++
			}
		}
		return nil
	})
	return removed, err
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Round != items[j].Round {
			return items[i].Round < items[j].Round
		}
		if !items[i].MatchDate.Equal(items[j].MatchDate) {
			return items[i].MatchDate.Before(items[j].MatchDate)
		}
		return items[i].ID < items[j].ID
	})
}
