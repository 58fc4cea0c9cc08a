package championship

import "context"

// Repository describes championship persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Championship, error)
	GetByID(ctx context.Context, championshipID string) (Championship, bool, error)
	Upsert(ctx context.Context, item Championship) error
}
