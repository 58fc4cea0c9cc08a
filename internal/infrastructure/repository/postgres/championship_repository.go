package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

type ChampionshipRepository struct {
	db *sqlx.DB
}

func NewChampionshipRepository(db *sqlx.DB) *ChampionshipRepository {
	return &ChampionshipRepository{db: db}
}

func (r *ChampionshipRepository) List(ctx context.Context) ([]championship.Championship, error) {
	query, args, err := qb.Select("*").From("championships").
		Where(qb.IsNull("deleted_at")).
		OrderBy("start_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select championships query: %w", err)
	}

	var rows []championshipTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select championships: %w", err)
	}

	out := make([]championship.Championship, 0, len(rows))
	for _, row := range rows {
		out = append(out, championshipFromRow(row))
	}
	return out, nil
}

func (r *ChampionshipRepository) GetByID(ctx context.Context, championshipID string) (championship.Championship, bool, error) {
	query, args, err := qb.Select("*").From("championships").
		Where(
			qb.Eq("public_id", championshipID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return championship.Championship{}, false, fmt.Errorf("build select championship by id query: %w", err)
	}

	var row championshipTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return championship.Championship{}, false, nil
		}
		return championship.Championship{}, false, fmt.Errorf("select championship by id: %w", err)
	}
	return championshipFromRow(row), true, nil
}

func (r *ChampionshipRepository) Upsert(ctx context.Context, item championship.Championship) error {
	model := championshipInsertModel{
		PublicID:    item.ID,
		Name:        item.Name,
		Category:    item.Category,
		StartDate:   item.StartDate,
		EndDate:     item.EndDate,
		Rules:       nullString(item.Rules),
		LogoURL:     nullString(item.LogoURL),
		IsActive:    item.IsActive,
		OrganizerID: item.OrganizerID,
	}
	query, args, err := qb.InsertModel("championships", model, `ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    rules = EXCLUDED.rules,
    logo_url = EXCLUDED.logo_url,
    is_active = EXCLUDED.is_active,
    organizer_id = EXCLUDED.organizer_id,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert championship query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert championship id=%s: %w", item.ID, err)
	}
	return nil
}

func championshipFromRow(row championshipTableModel) championship.Championship {
	return championship.Championship{
		ID:          row.PublicID,
		Name:        row.Name,
		Category:    row.Category,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Rules:       nullStringValue(row.Rules),
		LogoURL:     nullStringValue(row.LogoURL),
		IsActive:    row.IsActive,
		OrganizerID: row.OrganizerID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
