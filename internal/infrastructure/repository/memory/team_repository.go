package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/championship-organizer/internal/domain/team"
)

type TeamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByChampionship(_ context.Context, championshipID string) ([]team.Team, error) {
	var out []team.Team
	r.db.read(func(t *tables) {
		for _, item := range t.teams {
			if item.ChampionshipID == championshipID {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	var (
		item   team.Team
		exists bool
	)
	r.db.read(func(t *tables) {
		item, exists = t.teams[strings.TrimSpace(teamID)]
	})
	return item, exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	return r.db.write(ctx, func(t *tables) error {
		t.teams[item.ID] = item
		return nil
	})
}
