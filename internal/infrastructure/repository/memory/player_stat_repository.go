package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
)

type PlayerStatRepository struct {
	db *DB
}

func NewPlayerStatRepository(db *DB) *PlayerStatRepository {
	return &PlayerStatRepository{db: db}
}

func (r *PlayerStatRepository) List(_ context.Context, query playerstat.Query) ([]playerstat.Stat, error) {
	var out []playerstat.Stat
	r.db.read(func(t *tables) {
		for key, item := range t.stats {
			if key.championshipID != query.ChampionshipID {
				continue
			}
			if query.TeamID != "" && item.TeamID != query.TeamID {
				continue
			}
			out = append(out, item)
		}
	})

	field := query.SortBy
	if field == "" {
		field = playerstat.SortGoals
	}
	sort.Slice(out, func(i, j int) bool {
		vi, vj := out[i].Value(field), out[j].Value(field)
		if vi != vj {
			return vi > vj
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *PlayerStatRepository) Get(_ context.Context, championshipID, playerID string) (playerstat.Stat, bool, error) {
	var (
		item   playerstat.Stat
		exists bool
	)
	r.db.read(func(t *tables) {
		item, exists = t.stats[rowKey{championshipID, playerID}]
	})
	return item, exists, nil
}

func (r *PlayerStatRepository) Upsert(ctx context.Context, items ...playerstat.Stat) error {
	return r.db.write(ctx, func(t *tables) error {
		for _, item := range items {
			t.stats[rowKey{item.ChampionshipID, item.PlayerID}] = item
		}
		return nil
	})
}

func (r *PlayerStatRepository) ResetByChampionship(ctx context.Context, championshipID string) error {
	return r.db.write(ctx, func(t *tables) error {
		for key, item := range t.stats {
			if key.championshipID != championshipID {
				continue
			}
			t.stats[key] = playerstat.Stat{
				ChampionshipID: item.ChampionshipID,
				PlayerID:       item.PlayerID,
				TeamID:         item.TeamID,
				UpdatedAt:      item.UpdatedAt,
			}
		}
		return nil
	})
}
