package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByChampionship(ctx context.Context, championshipID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("championship_public_id", championshipID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by championship query: %w", err)
	}

	var rows []teamTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by championship: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	model := teamInsertModel{
		PublicID:       item.ID,
		ChampionshipID: nullString(item.ChampionshipID),
		Name:           item.Name,
		CoachName:      item.CoachName,
		LogoURL:        nullString(item.LogoURL),
		PrimaryColor:   nullString(item.PrimaryColor),
		SecondaryColor: nullString(item.SecondaryColor),
	}
	query, args, err := qb.InsertModel("teams", model, `ON CONFLICT (public_id)
DO UPDATE SET
    championship_public_id = EXCLUDED.championship_public_id,
    name = EXCLUDED.name,
    coach_name = EXCLUDED.coach_name,
    logo_url = EXCLUDED.logo_url,
    primary_color = EXCLUDED.primary_color,
    secondary_color = EXCLUDED.secondary_color,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team id=%s: %w", item.ID, err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.PublicID,
		ChampionshipID: nullStringValue(row.ChampionshipID),
		Name:           row.Name,
		CoachName:      row.CoachName,
		LogoURL:        nullStringValue(row.LogoURL),
		PrimaryColor:   nullStringValue(row.PrimaryColor),
		SecondaryColor: nullStringValue(row.SecondaryColor),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
