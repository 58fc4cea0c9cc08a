// Package cache decorates the read-mostly repositories (championships,
// teams, rosters) with a TTL store. Match, event and standing data is
// never cached here since it changes every minute of a live match.
package cache

import (
	"context"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/player"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	basecache "github.com/riskibarqy/championship-organizer/internal/platform/cache"
)

const (
	championshipListKey     = "championship:list"
	championshipIDKeyPrefix = "championship:id:"
	teamListKeyPrefix       = "team:list:"
	teamIDKeyPrefix         = "team:id:"
	playerListKeyPrefix     = "player:list:"
	playerIDKeyPrefix       = "player:id:"
)

// lookup is a cached GetByID result, including misses.
type lookup[T any] struct {
	value  T
	exists bool
}

// list loads key through the store. The slice is copied on both sides so
// callers never share backing arrays with the cache.
func list[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, store, key, func(ctx context.Context) ([]T, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

func get[T any](ctx context.Context, store *basecache.Store, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	cached, err := basecache.Load(ctx, store, key, func(ctx context.Context) (lookup[T], error) {
		value, exists, err := load(ctx)
		return lookup[T]{value: value, exists: exists}, err
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return cached.value, cached.exists, nil
}

type ChampionshipRepository struct {
	next  championship.Repository
	store *basecache.Store
}

func NewChampionshipRepository(next championship.Repository, store *basecache.Store) *ChampionshipRepository {
	return &ChampionshipRepository{next: next, store: store}
}

func (r *ChampionshipRepository) List(ctx context.Context) ([]championship.Championship, error) {
	return list(ctx, r.store, championshipListKey, r.next.List)
}

func (r *ChampionshipRepository) GetByID(ctx context.Context, championshipID string) (championship.Championship, bool, error) {
	return get(ctx, r.store, championshipIDKeyPrefix+championshipID, func(ctx context.Context) (championship.Championship, bool, error) {
		return r.next.GetByID(ctx, championshipID)
	})
}

func (r *ChampionshipRepository) Upsert(ctx context.Context, item championship.Championship) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.store.Delete(ctx, championshipListKey)
	r.store.Delete(ctx, championshipIDKeyPrefix+item.ID)
	return nil
}

type TeamRepository struct {
	next  team.Repository
	store *basecache.Store
}

func NewTeamRepository(next team.Repository, store *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, store: store}
}

func (r *TeamRepository) ListByChampionship(ctx context.Context, championshipID string) ([]team.Team, error) {
	return list(ctx, r.store, teamListKeyPrefix+championshipID, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByChampionship(ctx, championshipID)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return get(ctx, r.store, teamIDKeyPrefix+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

// Upsert drops every team list since a team may have moved between
// championships.
func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.store.DeletePrefix(ctx, teamListKeyPrefix)
	r.store.Delete(ctx, teamIDKeyPrefix+item.ID)
	return nil
}

type PlayerRepository struct {
	next  player.Repository
	store *basecache.Store
}

func NewPlayerRepository(next player.Repository, store *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, store: store}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	return list(ctx, r.store, playerListKeyPrefix+teamID, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByTeam(ctx, teamID)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return get(ctx, r.store, playerIDKeyPrefix+playerID, func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetByID(ctx, playerID)
	})
}

// Upsert drops every roster since a transfer changes two of them.
func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.store.DeletePrefix(ctx, playerListKeyPrefix)
	r.store.Delete(ctx, playerIDKeyPrefix+item.ID)
	return nil
}
