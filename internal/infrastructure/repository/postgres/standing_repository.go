package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListByChampionship(ctx context.Context, championshipID string) ([]standing.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("championship_public_id", championshipID)).
		OrderBy("team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}
	return r.selectRows(ctx, query, args, "select standings")
}

func (r *StandingRepository) ListByGroup(ctx context.Context, championshipID, groupID string) ([]standing.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("championship_public_id", championshipID),
			qb.Eq("group_public_id", groupID),
		).
		OrderBy("team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select group standings query: %w", err)
	}
	return r.selectRows(ctx, query, args, "select group standings")
}

func (r *StandingRepository) Get(ctx context.Context, championshipID, teamID string) (standing.Row, bool, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("championship_public_id", championshipID),
			qb.Eq("team_public_id", teamID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return standing.Row{}, false, fmt.Errorf("build select standing query: %w", err)
	}

	var row standingTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Row{}, false, nil
		}
		return standing.Row{}, false, fmt.Errorf("select standing: %w", err)
	}
	return standingFromRow(row), true, nil
}

func (r *StandingRepository) Upsert(ctx context.Context, rows ...standing.Row) error {
	exec := executorFrom(ctx, r.db)
	for _, item := range rows {
		model := standingInsertModel{
			ChampionshipID: item.ChampionshipID,
			GroupID:        nullString(item.GroupID),
			TeamID:         item.TeamID,
			Position:       item.Position,
			Played:         item.Played,
			Wins:           item.Wins,
			Draws:          item.Draws,
			Losses:         item.Losses,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Points:         item.Points,
			YellowCards:    item.YellowCards,
			RedCards:       item.RedCards,
		}
		query, args, err := qb.InsertModel("standings", model, `ON CONFLICT (championship_public_id, team_public_id)
DO UPDATE SET
    group_public_id = EXCLUDED.group_public_id,
    position = EXCLUDED.position,
    played = EXCLUDED.played,
    wins = EXCLUDED.wins,
    draws = EXCLUDED.draws,
    losses = EXCLUDED.losses,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    goal_difference = EXCLUDED.goal_difference,
    points = EXCLUDED.points,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert standing query: %w", err)
		}
		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standing championship=%s team=%s: %w", item.ChampionshipID, item.TeamID, err)
		}
	}
	return nil
}

// ResetByChampionship zeroes every counter but keeps the rows and their
// group assignment.
func (r *StandingRepository) ResetByChampionship(ctx context.Context, championshipID string) error {
	query, args, err := qb.Update("standings").
		Set("position", 0).
		Set("played", 0).
		Set("wins", 0).
		Set("draws", 0).
		Set("losses", 0).
		Set("goals_for", 0).
		Set("goals_against", 0).
		Set("goal_difference", 0).
		Set("points", 0).
		Set("yellow_cards", 0).
		Set("red_cards", 0).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("championship_public_id", championshipID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset standings query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset standings championship=%s: %w", championshipID, err)
	}
	return nil
}

func (r *StandingRepository) DeleteByChampionship(ctx context.Context, championshipID string) error {
	query, args, err := qb.DeleteFrom("standings").
		Where(qb.Eq("championship_public_id", championshipID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete standings query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete standings championship=%s: %w", championshipID, err)
	}
	return nil
}

func (r *StandingRepository) selectRows(ctx context.Context, query string, args []any, op string) ([]standing.Row, error) {
	var rows []standingTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingFromRow(row))
	}
	return out, nil
}

func standingFromRow(row standingTableModel) standing.Row {
	return standing.Row{
		ChampionshipID: row.ChampionshipID,
		GroupID:        nullStringValue(row.GroupID),
		TeamID:         row.TeamID,
		Position:       row.Position,
		Played:         row.Played,
		Wins:           row.Wins,
		Draws:          row.Draws,
		Losses:         row.Losses,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		YellowCards:    row.YellowCards,
		RedCards:       row.RedCards,
		UpdatedAt:      row.UpdatedAt,
	}
}
