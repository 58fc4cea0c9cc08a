package tournament

import "context"

// Repository persists formats and group draws.
type Repository interface {
	GetFormat(ctx context.Context, championshipID string) (Format, bool, error)
	UpsertFormat(ctx context.Context, item Format) error
	ListGroups(ctx context.Context, championshipID string) ([]Group, error)
	ReplaceGroups(ctx context.Context, championshipID string, groups []Group) error
}
