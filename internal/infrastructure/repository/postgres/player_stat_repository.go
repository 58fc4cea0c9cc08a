package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

type PlayerStatRepository struct {
	db *sqlx.DB
}

func NewPlayerStatRepository(db *sqlx.DB) *PlayerStatRepository {
	return &PlayerStatRepository{db: db}
}

func (r *PlayerStatRepository) List(ctx context.Context, query playerstat.Query) ([]playerstat.Stat, error) {
	field, ok := playerstat.ParseSortField(string(query.SortBy))
	if !ok {
		return nil, fmt.Errorf("invalid player stat sort field: %s", query.SortBy)
	}

	conditions := []qb.Condition{qb.Eq("championship_public_id", query.ChampionshipID)}
	if query.TeamID != "" {
		conditions = append(conditions, qb.Eq("team_public_id", query.TeamID))
	}
	builder := qb.Select("*").From("player_stats").
		Where(conditions...).
		OrderBy(string(field)+" DESC", "player_public_id")
	if query.Limit > 0 {
		builder = builder.Limit(query.Limit)
	}
	sqlQuery, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []playerStatTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("select player stats: %w", err)
	}
	out := make([]playerstat.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerStatFromRow(row))
	}
	return out, nil
}

func (r *PlayerStatRepository) Get(ctx context.Context, championshipID, playerID string) (playerstat.Stat, bool, error) {
	query, args, err := qb.Select("*").From("player_stats").
		Where(
			qb.Eq("championship_public_id", championshipID),
			qb.Eq("player_public_id", playerID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return playerstat.Stat{}, false, fmt.Errorf("build select player stat query: %w", err)
	}

	var row playerStatTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstat.Stat{}, false, nil
		}
		return playerstat.Stat{}, false, fmt.Errorf("select player stat: %w", err)
	}
	return playerStatFromRow(row), true, nil
}

func (r *PlayerStatRepository) Upsert(ctx context.Context, items ...playerstat.Stat) error {
	exec := executorFrom(ctx, r.db)
	for _, item := range items {
		model := playerStatInsertModel{
			ChampionshipID: item.ChampionshipID,
			PlayerID:       item.PlayerID,
			TeamID:         item.TeamID,
			MatchesPlayed:  item.MatchesPlayed,
			Goals:          item.Goals,
			Assists:        item.Assists,
			YellowCards:    item.YellowCards,
			RedCards:       item.RedCards,
			MinutesPlayed:  item.MinutesPlayed,
		}
		query, args, err := qb.InsertModel("player_stats", model, `ON CONFLICT (championship_public_id, player_public_id)
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    matches_played = EXCLUDED.matches_played,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    minutes_played = EXCLUDED.minutes_played,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert player stat query: %w", err)
		}
		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player stat championship=%s player=%s: %w", item.ChampionshipID, item.PlayerID, err)
		}
	}
	return nil
}

func (r *PlayerStatRepository) ResetByChampionship(ctx context.Context, championshipID string) error {
	query, args, err := qb.Update("player_stats").
		Set("matches_played", 0).
		Set("goals", 0).
		Set("assists", 0).
		Set("yellow_cards", 0).
		Set("red_cards", 0).
		Set("minutes_played", 0).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("championship_public_id", championshipID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset player stats query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset player stats championship=%s: %w", championshipID, err)
	}
	return nil
}

func playerStatFromRow(row playerStatTableModel) playerstat.Stat {
	return playerstat.Stat{
		ChampionshipID: row.ChampionshipID,
		PlayerID:       row.PlayerID,
		TeamID:         row.TeamID,
		MatchesPlayed:  row.MatchesPlayed,
		Goals:          row.Goals,
		Assists:        row.Assists,
		YellowCards:    row.YellowCards,
		RedCards:       row.RedCards,
		MinutesPlayed:  row.MinutesPlayed,
		UpdatedAt:      row.UpdatedAt,
	}
}
