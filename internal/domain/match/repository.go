package match

import "context"

// Repository describes match persistence needs from use cases.
//
// Update applies the row only when the stored version equals item.Version
// and bumps it; a mismatch returns ErrVersionConflict.
type Repository interface {
	ListByChampionship(ctx context.Context, championshipID string) ([]Match, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Insert(ctx context.Context, items ...Match) error
	Update(ctx context.Context, item Match) (Match, error)
	UpdateElapsed(ctx context.Context, matchID string, minute int) error
	Delete(ctx context.Context, matchID string) error
	DeleteGenerated(ctx context.Context, championshipID string) (int, error)
}
