package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/player"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

type MatchDeps struct {
	Championships     championship.Repository
	Players           player.Repository
	Matches           match.Repository
	Events            matchevent.Repository
	Aggregator        *StandingsAggregator
	Tx                Transactor
	Clock             ClockController
	Publisher         LivePublisher
	Locks             *resilience.KeyedMutex
	IDs               id.Generator
	Logger            *logging.Logger
	StoppageTolerance int
}

// MatchService drives a match through its lifecycle and records what
// happens on the pitch.
type MatchService struct {
	championshipRepo championship.Repository
	playerRepo       player.Repository
	matchRepo        match.Repository
	eventRepo        matchevent.Repository
	aggregator       *StandingsAggregator
	tx               Transactor
	clock            ClockController
	publisher        LivePublisher
	locks            *resilience.KeyedMutex
	idGen            id.Generator
	logger           *logging.Logger
	tolerance        int
	now              func() time.Time
}

func NewMatchService(deps MatchDeps) *MatchService {
	s := &MatchService{
		championshipRepo: deps.Championships,
		playerRepo:       deps.Players,
		matchRepo:        deps.Matches,
		eventRepo:        deps.Events,
		aggregator:       deps.Aggregator,
		tx:               deps.Tx,
		clock:            deps.Clock,
		publisher:        deps.Publisher,
		locks:            deps.Locks,
		idGen:            deps.IDs,
		logger:           deps.Logger,
		tolerance:        deps.StoppageTolerance,
		now:              time.Now,
	}
	if s.tx == nil {
		s.tx = noopTransactor{}
	}
	if s.clock == nil {
		s.clock = noopClock{}
	}
	if s.publisher == nil {
		s.publisher = noopPublisher{}
	}
	if s.locks == nil {
		s.locks = &resilience.KeyedMutex{}
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.tolerance < 0 {
		s.tolerance = 0
	}
	return s
}

type TransitionInput struct {
	Actor   user.Principal
	MatchID string
	Action  match.Action
}

type RecordEventInput struct {
	Actor             user.Principal
	MatchID           string
	TeamID            string
	PlayerID          string
	Type              matchevent.Type
	// Minute defaults to the current match clock.
	Minute            *int
	SecondaryPlayerID string
}

type RecordEventResult struct {
	Event matchevent.Event
	Match match.Match
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	return s.loadMatch(ctx, matchID)
}

func (s *MatchService) ListEvents(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListEvents")
	defer span.End()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByMatch(ctx, item.ID)
	if err != nil {
		return nil, storageErr("list match events", err)
	}
	return events, nil
}

// Transition applies an organizer action to a match. Entering Finished
// folds the result into the standings in the same transaction.
func (s *MatchService) Transition(ctx context.Context, input TransitionInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Transition", matchAttr(input.MatchID), attribute.String("match.action", string(input.Action)))
	defer span.End()

	unlock := s.locks.Lock(strings.TrimSpace(input.MatchID))
	defer unlock()

	item, err := s.loadMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	if _, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, item.ChampionshipID); err != nil {
		return match.Match{}, err
	}
	if _, err := match.Apply(item, input.Action); err != nil {
		return match.Match{}, translateMatchErr(err)
	}

	var updated match.Match
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.reload(ctx, item)
		if err != nil {
			return err
		}
		next, err := match.Apply(current, input.Action)
		if err != nil {
			return translateMatchErr(err)
		}
		if next.Status == match.StatusFinished && !next.StatsApplied {
			if err := s.aggregator.Apply(ctx, next); err != nil {
				return storageErr("apply standings", err)
			}
			next.StatsApplied = true
		}
		next.UpdatedAt = s.now().UTC()
		updated, err = s.matchRepo.Update(ctx, next)
		if err != nil {
			return storageErr("update match", err)
		}
		return nil
	})
	if err != nil {
		return match.Match{}, storageErr("transition match", err)
	}

	s.clock.Sync(updated)
	s.publish(ctx, LiveMatchUpdated, updated, nil)
	s.logger.InfoContext(ctx, "match transitioned",
		"match_id", updated.ID,
		"action", input.Action,
		"status", updated.Status,
		"elapsed", updated.ElapsedMinutes,
	)
	return updated, nil
}

// RecordEvent stores an event of a match in play. A goal bumps the
// scoring team's score in the same transaction as the insert.
func (s *MatchService) RecordEvent(ctx context.Context, input RecordEventInput) (RecordEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordEvent", matchAttr(input.MatchID), attribute.String("match.event_type", string(input.Type)))
	defer span.End()

	unlock := s.locks.Lock(strings.TrimSpace(input.MatchID))
	defer unlock()

	item, err := s.loadMatch(ctx, input.MatchID)
	if err != nil {
		return RecordEventResult{}, err
	}
	if _, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, item.ChampionshipID); err != nil {
		return RecordEventResult{}, err
	}
	if !match.AcceptsEvents(item.Status) {
		return RecordEventResult{}, fmt.Errorf("%w: match=%s does not accept events while %s", ErrConflict, item.ID, item.Status)
	}

	minute := item.ElapsedMinutes
	if input.Minute != nil {
		minute = *input.Minute
	}
	lo, hi, _ := match.EventMinuteRange(item.Status, s.tolerance)
	if minute < lo || minute > hi {
		return RecordEventResult{}, fmt.Errorf("%w: minute %d outside %d..%d for %s", ErrInvalidInput, minute, lo, hi, item.Status)
	}

	teamID := strings.TrimSpace(input.TeamID)
	if !item.Involves(teamID) {
		return RecordEventResult{}, fmt.Errorf("%w: team=%s does not play match=%s", ErrInvalidInput, teamID, item.ID)
	}
	if err := s.requirePlayerOnTeam(ctx, input.PlayerID, teamID); err != nil {
		return RecordEventResult{}, err
	}
	secondary := strings.TrimSpace(input.SecondaryPlayerID)
	if secondary != "" {
		if err := s.requirePlayerOnTeam(ctx, secondary, teamID); err != nil {
			return RecordEventResult{}, err
		}
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return RecordEventResult{}, fmt.Errorf("generate event id: %w", err)
	}
	event := matchevent.Event{
		ID:                eventID,
		MatchID:           item.ID,
		TeamID:            teamID,
		PlayerID:          strings.TrimSpace(input.PlayerID),
		Type:              input.Type,
		Minute:            minute,
		SecondaryPlayerID: secondary,
		CreatedAt:         s.now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return RecordEventResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	updated := item
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.reload(ctx, item)
		if err != nil {
			return err
		}
		if !match.AcceptsEvents(current.Status) {
			return fmt.Errorf("%w: match=%s does not accept events while %s", ErrConflict, current.ID, current.Status)
		}
		if err := s.eventRepo.Insert(ctx, event); err != nil {
			return storageErr("insert match event", err)
		}
		if event.Type != matchevent.TypeGoal {
			updated = current
			return nil
		}
		if current.IsHome(event.TeamID) {
			current.HomeScore++
		} else {
			current.AwayScore++
		}
		current.UpdatedAt = event.CreatedAt
		updated, err = s.matchRepo.Update(ctx, current)
		if err != nil {
			return storageErr("update score", err)
		}
		return nil
	})
	if err != nil {
		return RecordEventResult{}, storageErr("record event", err)
	}

	s.publish(ctx, LiveEventRecorded, updated, &event)
	s.logger.InfoContext(ctx, "match event recorded",
		"match_id", updated.ID,
		"event_id", event.ID,
		"type", event.Type,
		"minute", event.Minute,
		"score", fmt.Sprintf("%d-%d", updated.HomeScore, updated.AwayScore),
	)
	return RecordEventResult{Event: event, Match: updated}, nil
}

// ApplyStandings folds a finished match into the tables if that has not
// happened yet. Calling it again is a no-op.
func (s *MatchService) ApplyStandings(ctx context.Context, actor user.Principal, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ApplyStandings", matchAttr(matchID))
	defer span.End()

	unlock := s.locks.Lock(strings.TrimSpace(matchID))
	defer unlock()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if _, err := loadOwnedChampionship(ctx, s.championshipRepo, actor, item.ChampionshipID); err != nil {
		return match.Match{}, err
	}
	if item.Status != match.StatusFinished {
		return match.Match{}, fmt.Errorf("%w: match=%s is %s, not finished", ErrConflict, item.ID, item.Status)
	}
	if item.StatsApplied {
		return item, nil
	}

	updated := item
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.reload(ctx, item)
		if err != nil {
			return err
		}
		if current.StatsApplied {
			updated = current
			return nil
		}
		if err := s.aggregator.Apply(ctx, current); err != nil {
			return storageErr("apply standings", err)
		}
		current.StatsApplied = true
		current.UpdatedAt = s.now().UTC()
		updated, err = s.matchRepo.Update(ctx, current)
		if err != nil {
			return storageErr("mark statistics applied", err)
		}
		return nil
	})
	if err != nil {
		return match.Match{}, storageErr("apply standings", err)
	}
	return updated, nil
}

// reload re-reads the match inside a transaction and rejects it when
// another writer bumped the version since item was loaded.
func (s *MatchService) reload(ctx context.Context, item match.Match) (match.Match, error) {
	current, exists, err := s.matchRepo.GetByID(ctx, item.ID)
	if err != nil {
		return match.Match{}, storageErr("get match", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, item.ID)
	}
	if current.Version != item.Version {
		return match.Match{}, fmt.Errorf("%w: match=%s version %d, expected %d: %w", ErrConflict, item.ID, current.Version, item.Version, match.ErrVersionConflict)
	}
	return current, nil
}

func (s *MatchService) loadMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, storageErr("get match", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchService) requirePlayerOnTeam(ctx context.Context, playerID, teamID string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return storageErr("get player", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if item.TeamID != teamID {
		return fmt.Errorf("%w: player=%s does not play for team=%s", ErrInvalidInput, playerID, teamID)
	}
	return nil
}

func (s *MatchService) publish(ctx context.Context, kind LiveUpdateKind, m match.Match, event *matchevent.Event) {
	s.publisher.Publish(ctx, LiveUpdate{
		Kind:       kind,
		MatchID:    m.ID,
		Match:      &m,
		Event:      event,
		Minute:     m.ElapsedMinutes,
		OccurredAt: s.now().UTC(),
	})
}

func translateMatchErr(err error) error {
	switch {
	case errors.Is(err, match.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, match.ErrUnknownAction):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
