package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
)

type TournamentRepository struct {
	db *DB
}

func NewTournamentRepository(db *DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetFormat(_ context.Context, championshipID string) (tournament.Format, bool, error) {
	var (
		item   tournament.Format
		exists bool
	)
	r.db.read(func(t *tables) {
		item, exists = t.formats[championshipID]
	})
	return item, exists, nil
}

func (r *TournamentRepository) UpsertFormat(ctx context.Context, item tournament.Format) error {
	return r.db.write(ctx, func(t *tables) error {
		t.formats[item.ChampionshipID] = item
		return nil
	})
}

func (r *TournamentRepository) ListGroups(_ context.Context, championshipID string) ([]tournament.Group, error) {
	var out []tournament.Group
	r.db.read(func(t *tables) {
		out = cloneGroups(t.groups[championshipID])
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *TournamentRepository) ReplaceGroups(ctx context.Context, championshipID string, groups []tournament.Group) error {
	return r.db.write(ctx, func(t *tables) error {
		if len(groups) == 0 {
			delete(t.groups, championshipID)
			return nil
		}
		t.groups[championshipID] = cloneGroups(groups)
		return nil
	})
}
