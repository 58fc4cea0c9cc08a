package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
)

var (
	organizer = user.Principal{UserID: memory.OrganizerIDDemo, Role: user.RoleOrganizer}
	stranger  = user.Principal{UserID: "someone-else", Role: user.RoleOrganizer}
)

type recordingPublisher struct {
	mu      sync.Mutex
	updates []LiveUpdate
}

func (p *recordingPublisher) Publish(_ context.Context, update LiveUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, update)
}

func (p *recordingPublisher) kinds() []LiveUpdateKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]LiveUpdateKind, 0, len(p.updates))
	for _, u := range p.updates {
		out = append(out, u.Kind)
	}
	return out
}

type testEnv struct {
	db          *memory.DB
	matchRepo   *memory.MatchRepository
	eventRepo   *memory.MatchEventRepository
	standings   *memory.StandingRepository
	stats       *memory.PlayerStatRepository
	publisher   *recordingPublisher
	locks       *resilience.KeyedMutex
	fixtures    *FixtureService
	matches     *MatchService
	tables      *StandingService
	predictions *PredictionService
	teams       *TeamService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := memory.NewDB()
	if err := memory.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	champs := memory.NewChampionshipRepository(db)
	teams := memory.NewTeamRepository(db)
	players := memory.NewPlayerRepository(db)
	tournaments := memory.NewTournamentRepository(db)
	matches := memory.NewMatchRepository(db)
	events := memory.NewMatchEventRepository(db)
	standings := memory.NewStandingRepository(db)
	stats := memory.NewPlayerStatRepository(db)
	votes := memory.NewPredictionRepository(db)

	ids := &id.SequenceGenerator{Prefix: "id"}
	locks := &resilience.KeyedMutex{}
	logger := logging.NewNop()
	publisher := &recordingPublisher{}
	aggregator := NewStandingsAggregator(standings, stats, events)

	return &testEnv{
		db:        db,
		matchRepo: matches,
		eventRepo: events,
		standings: standings,
		stats:     stats,
		publisher: publisher,
		locks:     locks,
		fixtures: NewFixtureService(FixtureDeps{
			Championships: champs,
			Teams:         teams,
			Tournaments:   tournaments,
			Matches:       matches,
			Events:        events,
			Predictions:   votes,
			Standings:     standings,
			Aggregator:    aggregator,
			Tx:            db,
			Locks:         locks,
			IDs:           ids,
			Logger:        logger,
		}),
		matches: NewMatchService(MatchDeps{
			Championships:     champs,
			Players:           players,
			Matches:           matches,
			Events:            events,
			Aggregator:        aggregator,
			Tx:                db,
			Publisher:         publisher,
			Locks:             locks,
			IDs:               ids,
			Logger:            logger,
			StoppageTolerance: 10,
		}),
		tables: NewStandingService(StandingDeps{
			Championships: champs,
			Teams:         teams,
			Tournaments:   tournaments,
			Matches:       matches,
			Events:        events,
			Standings:     standings,
			PlayerStats:   stats,
			Tx:            db,
			Publisher:     publisher,
			Locks:         locks,
			Logger:        logger,
		}),
		predictions: NewPredictionService(matches, votes, ids),
		teams:       NewTeamService(champs, teams, players, ids),
	}
}

func (e *testEnv) generate(t *testing.T, input GenerateFixturesInput) GenerateFixturesResult {
	t.Helper()
	if input.Actor.UserID == "" {
		input.Actor = organizer
	}
	if input.ChampionshipID == "" {
		input.ChampionshipID = memory.ChampionshipIDDemo
	}
	if input.Kind == "" {
		input.Kind = tournament.KindPoints
	}
	if input.FirstRoundAt.IsZero() {
		input.FirstRoundAt = time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	}
	result, err := e.fixtures.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	return result
}

// findMatch returns the generated match between home and away.
func (e *testEnv) findMatch(t *testing.T, home, away string) match.Match {
	t.Helper()
	items, err := e.matchRepo.ListByChampionship(context.Background(), memory.ChampionshipIDDemo)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	for _, m := range items {
		if (m.HomeTeamID == home && m.AwayTeamID == away) || (m.HomeTeamID == away && m.AwayTeamID == home) {
			return m
		}
	}
	t.Fatalf("no match between %s and %s", home, away)
	return match.Match{}
}

func (e *testEnv) transition(t *testing.T, matchID string, actions ...match.Action) match.Match {
	t.Helper()
	var (
		m   match.Match
		err error
	)
	for _, action := range actions {
		m, err = e.matches.Transition(context.Background(), TransitionInput{Actor: organizer, MatchID: matchID, Action: action})
		if err != nil {
			t.Fatalf("transition %s: %v", action, err)
		}
	}
	return m
}

// goal records a goal by the forward of teamID, the "-4" player of the
// seeded roster.
func (e *testEnv) goal(t *testing.T, m match.Match, teamID string, minute int) match.Match {
	t.Helper()
	result, err := e.matches.RecordEvent(context.Background(), RecordEventInput{
		Actor:    organizer,
		MatchID:  m.ID,
		TeamID:   teamID,
		PlayerID: forwardOf(teamID),
		Type:     matchevent.TypeGoal,
		Minute:   &minute,
	})
	if err != nil {
		t.Fatalf("record goal: %v", err)
	}
	return result.Match
}

var rosterPrefix = map[string]string{
	"team-aguias":   "agu",
	"team-leoes":    "leo",
	"team-tubaroes": "tub",
	"team-falcoes":  "fal",
}

func forwardOf(teamID string) string {
	return rosterPrefix[teamID] + "-4"
}

func midfielderOf(teamID string) string {
	return rosterPrefix[teamID] + "-3"
}

func intPtr(v int) *int {
	return &v
}
