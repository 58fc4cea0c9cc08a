package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
)

func requireActor(actor user.Principal) error {
	if strings.TrimSpace(actor.UserID) == "" {
		return fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	return nil
}

// loadOwnedChampionship returns the championship when actor organizes it.
func loadOwnedChampionship(ctx context.Context, repo championship.Repository, actor user.Principal, championshipID string) (championship.Championship, error) {
	if err := requireActor(actor); err != nil {
		return championship.Championship{}, err
	}

	item, err := loadChampionship(ctx, repo, championshipID)
	if err != nil {
		return championship.Championship{}, err
	}
	if !item.IsOrganizer(actor.UserID) {
		return championship.Championship{}, fmt.Errorf("%w: user=%s is not the organizer of championship=%s", ErrForbidden, actor.UserID, item.ID)
	}
	return item, nil
}

func loadChampionship(ctx context.Context, repo championship.Repository, championshipID string) (championship.Championship, error) {
	championshipID = strings.TrimSpace(championshipID)
	if championshipID == "" {
		return championship.Championship{}, fmt.Errorf("%w: championship id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, championshipID)
	if err != nil {
		return championship.Championship{}, storageErr("get championship", err)
	}
	if !exists {
		return championship.Championship{}, fmt.Errorf("%w: championship=%s", ErrNotFound, championshipID)
	}
	return item, nil
}

// championshipLockKey keeps championship-wide work apart from the match
// ids held by transitions.
func championshipLockKey(championshipID string) string {
	return "championship:" + championshipID
}

// lockMatches takes the keyed lock of every match, then extra keys, in
// sorted order so concurrent callers never deadlock. The returned func
// releases them in reverse.
func lockMatches(locks *resilience.KeyedMutex, matches []match.Match, extra ...string) func() {
	keys := make([]string, 0, len(matches)+len(extra))
	for _, m := range matches {
		keys = append(keys, m.ID)
	}
	keys = append(keys, extra...)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	unlocks := make([]func(), 0, len(keys))
	for _, key := range keys {
		unlocks = append(unlocks, locks.Lock(key))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}
