package prediction

import "context"

// Repository stores votes. Insert returns ErrDuplicateVote when the voter
// key already voted on the match.
type Repository interface {
	Insert(ctx context.Context, vote Vote) error
	CountByMatch(ctx context.Context, matchID string) (Counts, error)
	DeleteByMatch(ctx context.Context, matchID string) error
}
