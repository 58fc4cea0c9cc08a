package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("minute", "created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}

	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.Event{
			ID:                row.PublicID,
			MatchID:           row.MatchID,
			TeamID:            row.TeamID,
			PlayerID:          row.PlayerID,
			Type:              matchevent.Type(row.EventType),
			Minute:            row.Minute,
			SecondaryPlayerID: nullStringValue(row.SecondaryPlayerID),
			CreatedAt:         row.CreatedAt,
		})
	}
	return out, nil
}

func (r *MatchEventRepository) Insert(ctx context.Context, item matchevent.Event) error {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := matchEventInsertModel{
		PublicID:          item.ID,
		MatchID:           item.MatchID,
		TeamID:            item.TeamID,
		PlayerID:          item.PlayerID,
		EventType:         string(item.Type),
		Minute:            item.Minute,
		SecondaryPlayerID: nullString(item.SecondaryPlayerID),
		CreatedAt:         createdAt,
	}
	query, args, err := qb.InsertModel("match_events", model, "")
	if err != nil {
		return fmt.Errorf("build insert match event query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match event match=%s: %w", item.MatchID, err)
	}
	return nil
}

func (r *MatchEventRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match events query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match events match=%s: %w", matchID, err)
	}
	return nil
}

func (r *MatchEventRepository) DeleteByChampionship(ctx context.Context, championshipID string) error {
	query, args, err := qb.DeleteFrom("match_events").
		Where(qb.Expr("match_public_id IN (SELECT public_id FROM matches WHERE championship_public_id = ?)", championshipID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete championship events query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete championship events championship=%s: %w", championshipID, err)
	}
	return nil
}
