package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/championship-organizer/internal/domain/player"
)

type PlayerRepository struct {
	db *DB
}

func NewPlayerRepository(db *DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	var out []player.Player
	r.db.read(func(t *tables) {
		for _, item := range t.players {
			if item.TeamID == teamID {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].JerseyNumber != out[j].JerseyNumber {
			return out[i].JerseyNumber < out[j].JerseyNumber
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	var (
		item   player.Player
		exists bool
	)
	r.db.read(func(t *tables) {
		item, exists = t.players[strings.TrimSpace(playerID)]
	})
	return item, exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	return r.db.write(ctx, func(t *tables) error {
		t.players[item.ID] = item
		return nil
	})
}
