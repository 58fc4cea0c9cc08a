package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

var matchOrder = []string{"round", "match_date", "public_id"}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByChampionship(ctx context.Context, championshipID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("championship_public_id", championshipID)).
		OrderBy(matchOrder...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by championship query: %w", err)
	}
	return r.selectMatches(ctx, query, args, "select matches by championship")
}

func (r *MatchRepository) ListByStatus(ctx context.Context, statuses ...match.Status) ([]match.Match, error) {
	values := make([]any, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	query, args, err := qb.Select("*").From("matches").
		Where(qb.In("status", values)).
		OrderBy(matchOrder...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by status query: %w", err)
	}
	return r.selectMatches(ctx, query, args, "select matches by status")
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Insert(ctx context.Context, items ...match.Match) error {
	if len(items) == 0 {
		return nil
	}

	insert := qb.InsertInto("matches").Columns(matchInsertColumns...)
	for _, item := range items {
		version := item.Version
		if version == 0 {
			version = 1
		}
		insert.Values(
			item.ID,
			item.ChampionshipID,
			nullString(item.GroupID),
			item.Round,
			item.HomeTeamID,
			item.AwayTeamID,
			nullString(item.Venue),
			item.MatchDate,
			string(item.Phase),
			string(item.Status),
			item.ElapsedMinutes,
			item.HomeScore,
			item.AwayScore,
			item.Generated,
			item.StatsApplied,
			version,
		)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert matches query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert matches count=%d: %w", len(items), err)
	}
	return nil
}

// Update writes item only if the stored version still equals item.Version.
func (r *MatchRepository) Update(ctx context.Context, item match.Match) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("group_public_id", nullString(item.GroupID)).
		Set("round", item.Round).
		Set("home_team_public_id", item.HomeTeamID).
		Set("away_team_public_id", item.AwayTeamID).
		Set("venue", nullString(item.Venue)).
		Set("match_date", item.MatchDate).
		Set("phase", string(item.Phase)).
		Set("status", string(item.Status)).
		Set("elapsed_minutes", item.ElapsedMinutes).
		Set("home_score", item.HomeScore).
		Set("away_score", item.AwayScore).
		Set("generated", item.Generated).
		Set("stats_applied", item.StatsApplied).
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.Eq("version", item.Version),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match query: %w", err)
	}

	var row matchTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("update match=%s given=%d: %w", item.ID, item.Version, match.ErrVersionConflict)
		}
		return match.Match{}, fmt.Errorf("update match=%s: %w", item.ID, err)
	}
	return matchFromRow(row), nil
}

// UpdateElapsed moves the clock without bumping the version. It is a no-op
// once the match left a running period.
func (r *MatchRepository) UpdateElapsed(ctx context.Context, matchID string, minute int) error {
	// The status filter lives in a CASE so an unknown id is still reported.
	query, args, err := qb.Update("matches").
		SetExpr("elapsed_minutes", "CASE WHEN status IN (?, ?) THEN ? ELSE elapsed_minutes END",
			string(match.StatusInProgress), string(match.StatusSecondHalf), minute).
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update elapsed query: %w", err)
	}

	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update elapsed match=%s: %w", matchID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update elapsed rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update elapsed: match=%s not found", matchID)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match=%s: %w", matchID, err)
	}
	return nil
}

func (r *MatchRepository) DeleteGenerated(ctx context.Context, championshipID string) (int, error) {
	query, args, err := qb.DeleteFrom("matches").
		Where(
			qb.Eq("championship_public_id", championshipID),
			qb.Eq("generated", true),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete generated matches query: %w", err)
	}
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete generated matches championship=%s: %w", championshipID, err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete generated matches rows affected: %w", err)
	}
	return int(removed), nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any, op string) ([]match.Match, error) {
	var rows []matchTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:             row.PublicID,
		ChampionshipID: row.ChampionshipID,
		GroupID:        nullStringValue(row.GroupID),
		Round:          row.Round,
		HomeTeamID:     row.HomeTeamID,
		AwayTeamID:     row.AwayTeamID,
		Venue:          nullStringValue(row.Venue),
		MatchDate:      row.MatchDate,
		Phase:          match.Phase(row.Phase),
		Status:         match.Status(row.Status),
		ElapsedMinutes: row.ElapsedMinutes,
		HomeScore:      row.HomeScore,
		AwayScore:      row.AwayScore,
		Generated:      row.Generated,
		StatsApplied:   row.StatsApplied,
		Version:        row.Version,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
