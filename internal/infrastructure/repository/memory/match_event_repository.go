package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
)

type MatchEventRepository struct {
	db *DB
}

func NewMatchEventRepository(db *DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.Event, error) {
	var out []matchevent.Event
	r.db.read(func(t *tables) {
		for _, item := range t.events {
			if item.MatchID == matchID {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute < out[j].Minute
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchEventRepository) Insert(ctx context.Context, item matchevent.Event) error {
	return r.db.write(ctx, func(t *tables) error {
		if _, exists := t.matches[item.MatchID]; !exists {
			return fmt.Errorf("insert event: match=%s not found", item.MatchID)
		}
		if _, exists := t.events[item.ID]; exists {
			return fmt.Errorf("insert event: duplicate id %s", item.ID)
		}
		t.events[item.ID] = item
		return nil
	})
}

func (r *MatchEventRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	return r.db.write(ctx, func(t *tables) error {
		for id, item := range t.events {
			if item.MatchID == matchID {
				delete(t.events, id)
			}
		}
		return nil
	})
}

func (r *MatchEventRepository) DeleteByChampionship(ctx context.Context, championshipID string) error {
	return r.db.write(ctx, func(t *tables) error {
		for id, item := range t.events {
			if m, ok := t.matches[item.MatchID]; ok && m.ChampionshipID == championshipID {
				delete(t.events, id)
			}
		}
		return nil
	})
}
