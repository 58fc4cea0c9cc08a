package matchevent

import "context"

type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
	Insert(ctx context.Context, item Event) error
	DeleteByMatch(ctx context.Context, matchID string) error
	DeleteByChampionship(ctx context.Context, championshipID string) error
}
