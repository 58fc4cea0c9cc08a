package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
	qb "github.com/riskibarqy/championship-organizer/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Insert relies on the (match_public_id, voter_key) unique index to
// reject a second vote.
func (r *PredictionRepository) Insert(ctx context.Context, vote prediction.Vote) error {
	createdAt := vote.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := predictionInsertModel{
		PublicID:  vote.ID,
		MatchID:   vote.MatchID,
		Choice:    string(vote.Choice),
		VoterKey:  vote.VoterKey,
		CreatedAt: createdAt,
	}
	query, args, err := qb.InsertModel("match_predictions", model, "")
	if err != nil {
		return fmt.Errorf("build insert prediction query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert prediction match=%s: %w", vote.MatchID, prediction.ErrDuplicateVote)
		}
		return fmt.Errorf("insert prediction match=%s: %w", vote.MatchID, err)
	}
	return nil
}

func (r *PredictionRepository) CountByMatch(ctx context.Context, matchID string) (prediction.Counts, error) {
	query, args, err := qb.Select("choice", "COUNT(*) AS votes").From("match_predictions").
		Where(qb.Eq("match_public_id", matchID)).
		GroupBy("choice").
		ToSQL()
	if err != nil {
		return prediction.Counts{}, fmt.Errorf("build count predictions query: %w", err)
	}

	var rows []predictionCountModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return prediction.Counts{}, fmt.Errorf("count predictions: %w", err)
	}

	var out prediction.Counts
	for _, row := range rows {
		switch prediction.Choice(row.Choice) {
		case prediction.ChoiceHome:
			out.Home = row.Votes
		case prediction.ChoiceDraw:
			out.Draw = row.Votes
		case prediction.ChoiceAway:
			out.Away = row.Votes
		}
	}
	return out, nil
}

func (r *PredictionRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("match_predictions").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete predictions query: %w", err)
	}
	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete predictions match=%s: %w", matchID, err)
	}
	return nil
}
