package standing

import "context"

// Repository stores one row per (championship, team).
type Repository interface {
	ListByChampionship(ctx context.Context, championshipID string) ([]Row, error)
	ListByGroup(ctx context.Context, championshipID, groupID string) ([]Row, error)
	Get(ctx context.Context, championshipID, teamID string) (Row, bool, error)
	Upsert(ctx context.Context, rows ...Row) error
	ResetByChampionship(ctx context.Context, championshipID string) error
	DeleteByChampionship(ctx context.Context, championshipID string) error
}
