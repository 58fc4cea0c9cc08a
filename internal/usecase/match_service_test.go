package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
)

// scoreWriteFailingRepo rejects any match write that carries a goal.
type scoreWriteFailingRepo struct {
	*memory.MatchRepository
}

func (r scoreWriteFailingRepo) Update(ctx context.Context, item match.Match) (match.Match, error) {
	if item.HomeScore > 0 || item.AwayScore > 0 {
		return match.Match{}, errors.New("connection reset")
	}
	return r.MatchRepository.Update(ctx, item)
}

type upsertFailingStandingRepo struct {
	*memory.StandingRepository
}

func (upsertFailingStandingRepo) Upsert(context.Context, ...standing.Row) error {
	return errors.New("connection reset")
}

func newMatchServiceOver(env *testEnv, matches match.Repository, standings standing.Repository) (*MatchService, *recordingPublisher) {
	publisher := &recordingPublisher{}
	return NewMatchService(MatchDeps{
		Championships:     memory.NewChampionshipRepository(env.db),
		Players:           memory.NewPlayerRepository(env.db),
		Matches:           matches,
		Events:            env.eventRepo,
		Aggregator:        NewStandingsAggregator(standings, env.stats, env.eventRepo),
		Tx:                env.db,
		Publisher:         publisher,
		Locks:             env.locks,
		IDs:               &id.SequenceGenerator{Prefix: "evt"},
		Logger:            logging.NewNop(),
		StoppageTolerance: 10,
	}), publisher
}

func TestMatchService_RecordEvent_GoalRollsBackWhenScoreWriteFails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-leoes")
	env.transition(t, m.ID, match.ActionStart)

	svc, publisher := newMatchServiceOver(env, scoreWriteFailingRepo{env.matchRepo}, env.standings)
	_, err := svc.RecordEvent(ctx, RecordEventInput{
		Actor:    organizer,
		MatchID:  m.ID,
		TeamID:   "team-aguias",
		PlayerID: forwardOf("team-aguias"),
		Type:     matchevent.TypeGoal,
		Minute:   intPtr(12),
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected retryable ErrDependencyUnavailable, got %v", err)
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatalf("storage failure reported as permission error: %v", err)
	}

	events, err := env.eventRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("goal event persisted without its score: %d events", len(events))
	}
	stored, _, _ := env.matchRepo.GetByID(ctx, m.ID)
	if stored.HomeScore != 0 || stored.AwayScore != 0 {
		t.Fatalf("unexpected score: %d-%d", stored.HomeScore, stored.AwayScore)
	}
	if got := publisher.kinds(); len(got) != 0 {
		t.Fatalf("failed goal was published: %v", got)
	}
}

func TestMatchService_Transition_EndRollsBackWhenStandingsWriteFails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-leoes")
	env.transition(t, m.ID, match.ActionStart)
	m = env.goal(t, m, "team-aguias", 20)
	env.transition(t, m.ID, match.ActionPause, match.ActionResume)
	before, _, _ := env.matchRepo.GetByID(ctx, m.ID)

	svc, publisher := newMatchServiceOver(env, env.matchRepo, upsertFailingStandingRepo{env.standings})
	_, err := svc.Transition(ctx, TransitionInput{Actor: organizer, MatchID: m.ID, Action: match.ActionEnd})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected retryable ErrDependencyUnavailable, got %v", err)
	}

	after, _, _ := env.matchRepo.GetByID(ctx, m.ID)
	if after.Status != match.StatusSecondHalf || after.StatsApplied || after.Version != before.Version {
		t.Fatalf("match changed by failed end: status=%s applied=%v version=%d want=%d",
			after.Status, after.StatsApplied, after.Version, before.Version)
	}
	for _, teamID := range []string{"team-aguias", "team-leoes"} {
		row, _, err := env.standings.Get(ctx, memory.ChampionshipIDDemo, teamID)
		if err != nil {
			t.Fatalf("get standing: %v", err)
		}
		if row.Played != 0 || row.Points != 0 {
			t.Fatalf("standing of %s applied by failed end: %+v", teamID, row)
		}
	}
	if got := publisher.kinds(); len(got) != 0 {
		t.Fatalf("failed end was published: %v", got)
	}
}
