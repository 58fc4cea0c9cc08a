package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
	tx *Transactor
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db, tx: NewTransactor(db)}
}

func (r *TournamentRepository) GetFormat(ctx context.Context, championshipID string) (tournament.Format, bool, error) {
	query, args, err := qb.Select("*").From("championship_formats").
		Where(qb.Eq("championship_public_id", championshipID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Format{}, false, fmt.Errorf("build select format query: %w", err)
	}

	var row formatTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Format{}, false, nil
		}
		return tournament.Format{}, false, fmt.Errorf("select format: %w", err)
	}

	return tournament.Format{
		ChampionshipID: row.ChampionshipID,
		Kind:           tournament.Kind(row.Kind),
		HomeAndAway:    row.HomeAndAway,
		NumberOfGroups: row.NumberOfGroups,
		TeamsPerGroup:  row.TeamsPerGroup,
		TeamsAdvancing: row.TeamsAdvancing,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, true, nil
}

func (r *TournamentRepository) UpsertFormat(ctx context.Context, item tournament.Format) error {
	model := formatInsertModel{
		ChampionshipID: item.ChampionshipID,
		Kind:           string(item.Kind),
		HomeAndAway:    item.HomeAndAway,
		NumberOfGroups: item.NumberOfGroups,
		TeamsPerGroup:  item.TeamsPerGroup,
		TeamsAdvancing: item.TeamsAdvancing,
	}
	query, args, err := qb.InsertModel("championship_formats", model, `ON CONFLICT (championship_public_id)
DO UPDATE SET
    kind = EXCLUDED.kind,
    home_and_away = EXCLUDED.home_and_away,
    number_of_groups = EXCLUDED.number_of_groups,
    teams_per_group = EXCLUDED.teams_per_group,
    teams_advancing = EXCLUDED.teams_advancing,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert format query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert format championship=%s: %w", item.ChampionshipID, err)
	}
	return nil
}

func (r *TournamentRepository) ListGroups(ctx context.Context, championshipID string) ([]tournament.Group, error) {
	exec := executorFrom(ctx, r.db)

	query, args, err := qb.Select("*").From("championship_groups").
		Where(qb.Eq("championship_public_id", championshipID)).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select groups query: %w", err)
	}
	var groups []groupTableModel
	if err := exec.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, fmt.Errorf("select groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, nil
	}

	groupIDs := make([]any, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.PublicID)
	}
	membersQuery, membersArgs, err := qb.Select("group_public_id", "team_public_id", "seed").From("championship_group_teams").
		Where(qb.In("group_public_id", groupIDs)).
		OrderBy("group_public_id", "seed").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select group teams query: %w", err)
	}
	var members []groupTeamTableModel
	if err := exec.SelectContext(ctx, &members, membersQuery, membersArgs...); err != nil {
		return nil, fmt.Errorf("select group teams: %w", err)
	}

	teamsByGroup := make(map[string][]string, len(groups))
	for _, m := range members {
		teamsByGroup[m.GroupID] = append(teamsByGroup[m.GroupID], m.TeamID)
	}

	out := make([]tournament.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, tournament.Group{
			ID:             g.PublicID,
			ChampionshipID: g.ChampionshipID,
			Name:           g.Name,
			Position:       g.Position,
			TeamIDs:        teamsByGroup[g.PublicID],
		})
	}
	return out, nil
}

// ReplaceGroups drops the current draw of a championship and stores groups
// in its place.
func (r *TournamentRepository) ReplaceGroups(ctx context.Context, championshipID string, groups []tournament.Group) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		exec := executorFrom(ctx, r.db)

		clearMembers, clearMembersArgs, err := qb.DeleteFrom("championship_group_teams").
			Where(qb.Expr("group_public_id IN (SELECT public_id FROM championship_groups WHERE championship_public_id = ?)", championshipID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear group teams query: %w", err)
		}
		if _, err := exec.ExecContext(ctx, clearMembers, clearMembersArgs...); err != nil {
			return fmt.Errorf("clear group teams: %w", err)
		}

		clearGroups, clearGroupsArgs, err := qb.DeleteFrom("championship_groups").
			Where(qb.Eq("championship_public_id", championshipID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear groups query: %w", err)
		}
		if _, err := exec.ExecContext(ctx, clearGroups, clearGroupsArgs...); err != nil {
			return fmt.Errorf("clear groups: %w", err)
		}

		if len(groups) == 0 {
			return nil
		}

		insertGroups := qb.InsertInto("championship_groups").Columns("public_id", "championship_public_id", "name", "position")
		insertMembers := qb.InsertInto("championship_group_teams").Columns("group_public_id", "team_public_id", "seed")
		memberCount := 0
		for _, g := range groups {
			insertGroups.Values(g.ID, championshipID, g.Name, g.Position)
			for seed, teamID := range g.TeamIDs {
				insertMembers.Values(g.ID, teamID, seed)
				memberCount++
			}
		}

		query, args, err := insertGroups.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert groups query: %w", err)
		}
		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert groups championship=%s: %w", championshipID, err)
		}
		if memberCount == 0 {
			return nil
		}

		query, args, err = insertMembers.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert group teams query: %w", err)
		}
		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert group teams championship=%s: %w", championshipID, err)
		}
		return nil
	})
}
