package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
)

type ChampionshipRepository struct {
	db *DB
}

func NewChampionshipRepository(db *DB) *ChampionshipRepository {
	return &ChampionshipRepository{db: db}
}

func (r *ChampionshipRepository) List(_ context.Context) ([]championship.Championship, error) {
	var out []championship.Championship
	r.db.read(func(t *tables) {
		out = make([]championship.Championship, 0, len(t.championships))
		for _, item := range t.championships {
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ChampionshipRepository) GetByID(_ context.Context, championshipID string) (championship.Championship, bool, error) {
	var (
		item   championship.Championship
		exists bool
	)
	r.db.read(func(t *tables) {
		item, exists = t.championships[strings.TrimSpace(championshipID)]
	})
	return item, exists, nil
}

func (r *ChampionshipRepository) Upsert(ctx context.Context, item championship.Championship) error {
	return r.db.write(ctx, func(t *tables) error {
		t.championships[item.ID] = item
		return nil
	})
}
