package memory

import (
	"context"

	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
)

type PredictionRepository struct {
	db *DB
}

func NewPredictionRepository(db *DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Insert(ctx context.Context, vote prediction.Vote) error {
	return r.db.write(ctx, func(t *tables) error {
		for _, existing := range t.votes {
			if existing.MatchID == vote.MatchID && existing.VoterKey == vote.VoterKey {
				return prediction.ErrDuplicateVote
			}
		}
		t.votes[vote.ID] = vote
		return nil
	})
}

func (r *PredictionRepository) CountByMatch(_ context.Context, matchID string) (prediction.Counts, error) {
	var counts prediction.Counts
	r.db.read(func(t *tables) {
		for _, vote := range t.votes {
			if vote.MatchID != matchID {
				continue
			}
			switch vote.Choice {
			case prediction.ChoiceHome:
				counts.Home++
			case prediction.ChoiceDraw:
				counts.Draw++
			case prediction.ChoiceAway:
				counts.Away++
			}
		}
	})
	return counts, nil
}

func (r *PredictionRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	return r.db.write(ctx, func(t *tables) error {
		for id, vote := range t.votes {
			if vote.MatchID == matchID {
				delete(t.votes, id)
			}
		}
		return nil
	})
}
