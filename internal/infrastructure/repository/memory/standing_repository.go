package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
)

type StandingRepository struct {
	db *DB
}

func NewStandingRepository(db *DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListByChampionship(_ context.Context, championshipID string) ([]standing.Row, error) {
	return r.list(func(row standing.Row) bool { return row.ChampionshipID == championshipID }), nil
}

func (r *StandingRepository) ListByGroup(_ context.Context, championshipID, groupID string) ([]standing.Row, error) {
	return r.list(func(row standing.Row) bool {
		return row.ChampionshipID == championshipID && row.GroupID == groupID
	}), nil
}

func (r *StandingRepository) list(keep func(standing.Row) bool) []standing.Row {
	var out []standing.Row
	r.db.read(func(t *tables) {
		for _, row := range t.standings {
			if keep(row) {
				out = append(out, row)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}

func (r *StandingRepository) Get(_ context.Context, championshipID, teamID string) (standing.Row, bool, error) {
	var (
		row    standing.Row
		exists bool
	)
	r.db.read(func(t *tables) {
		row, exists = t.standings[rowKey{championshipID, teamID}]
	})
	return row, exists, nil
}

func (r *StandingRepository) Upsert(ctx context.Context, rows ...standing.Row) error {
	return r.db.write(ctx, func(t *tables) error {
		for _, row := range rows {
			t.standings[rowKey{row.ChampionshipID, row.TeamID}] = row
		}
		return nil
	})
}

func (r *StandingRepository) ResetByChampionship(ctx context.Context, championshipID string) error {
	return r.db.write(ctx, func(t *tables) error {
		for key, row := range t.standings {
			if key.championshipID == championshipID {
				t.standings[key] = row.Zero()
			}
		}
		return nil
	})
}

func (r *StandingRepository) DeleteByChampionship(ctx context.Context, championshipID string) error {
	return r.db.write(ctx, func(t *tables) error {
		for key := range t.standings {
			if key.championshipID == championshipID {
				delete(t.standings, key)
			}
		}
		return nil
	})
}
