package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	championshipmock "github.com/riskibarqy/championship-organizer/internal/mocks/domain/championship"
	matchmock "github.com/riskibarqy/championship-organizer/internal/mocks/domain/match"
	matcheventmock "github.com/riskibarqy/championship-organizer/internal/mocks/domain/matchevent"
	playermock "github.com/riskibarqy/championship-organizer/internal/mocks/domain/player"
	playerstatmock "github.com/riskibarqy/championship-organizer/internal/mocks/domain/playerstat"
	standingmock "github.com/riskibarqy/championship-organizer/internal/mocks/domain/standing"
	"github.com/stretchr/testify/mock"
)

type matchServiceMocks struct {
	champs    *championshipmock.Repository
	players   *playermock.Repository
	matches   *matchmock.Repository
	events    *matcheventmock.Repository
	standings *standingmock.Repository
	stats     *playerstatmock.Repository
	publisher *recordingPublisher
}

func newMockedMatchService(t *testing.T) (*MatchService, matchServiceMocks) {
	t.Helper()
	m := matchServiceMocks{
		champs:    championshipmock.NewRepository(t),
		players:   playermock.NewRepository(t),
		matches:   matchmock.NewRepository(t),
		events:    matcheventmock.NewRepository(t),
		standings: standingmock.NewRepository(t),
		stats:     playerstatmock.NewRepository(t),
		publisher: &recordingPublisher{},
	}
	svc := NewMatchService(MatchDeps{
		Championships: m.champs,
		Players:       m.players,
		Matches:       m.matches,
		Events:        m.events,
		Aggregator:    NewStandingsAggregator(m.standings, m.stats, m.events),
		Publisher:     m.publisher,
		IDs:           &id.SequenceGenerator{Prefix: "evt"},
		Logger:        logging.NewNop(),
	})
	return svc, m
}

func ctxIs(ctx context.Context) any {
	return mock.MatchedBy(func(v context.Context) bool { return v == ctx })
}

func ownedChampionship() championship.Championship {
	return championship.Championship{ID: "champ-1", OrganizerID: organizer.UserID}
}

func TestMatchService_Transition_StorageFailureIsRetryableUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newMockedMatchService(t)
	stored := match.Match{ID: "m1", ChampionshipID: "champ-1", HomeTeamID: "a", AwayTeamID: "b", Status: match.StatusScheduled, Version: 1}

	m.matches.On("GetByID", ctxIs(ctx), "m1").Return(stored, true, nil).Twice()
	m.champs.On("GetByID", ctxIs(ctx), "champ-1").Return(ownedChampionship(), true, nil).Once()
	m.matches.
		On("Update", ctxIs(ctx), mock.MatchedBy(func(v match.Match) bool { return v.Status == match.StatusInProgress })).
		Return(match.Match{}, errors.New("connection refused")).
		Once()

	_, err := svc.Transition(ctx, TransitionInput{Actor: organizer, MatchID: "m1", Action: match.ActionStart})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatalf("transient failure must not look like a permission error: %v", err)
	}
	if got := m.publisher.kinds(); len(got) != 0 {
		t.Fatalf("failed transition was published: %v", got)
	}
}

func TestMatchService_Transition_StaleVersionUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newMockedMatchService(t)
	loaded := match.Match{ID: "m1", ChampionshipID: "champ-1", HomeTeamID: "a", AwayTeamID: "b", Status: match.StatusInProgress, Version: 4}
	moved := loaded
	moved.Version = 5

	m.matches.On("GetByID", ctxIs(ctx), "m1").Return(loaded, true, nil).Once()
	m.matches.On("GetByID", ctxIs(ctx), "m1").Return(moved, true, nil).Once()
	m.champs.On("GetByID", ctxIs(ctx), "champ-1").Return(ownedChampionship(), true, nil).Once()

	_, err := svc.Transition(ctx, TransitionInput{Actor: organizer, MatchID: "m1", Action: match.ActionPause})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, match.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestMatchService_Transition_EndFoldsStandingsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newMockedMatchService(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 7, 17, 0, 0, 0, time.UTC) }
	live := match.Match{
		ID: "m1", ChampionshipID: "champ-1", HomeTeamID: "home", AwayTeamID: "away",
		Status: match.StatusSecondHalf, ElapsedMinutes: 88, HomeScore: 2, AwayScore: 1, Version: 7,
	}

	m.matches.On("GetByID", ctxIs(ctx), "m1").Return(live, true, nil).Twice()
	m.champs.On("GetByID", ctxIs(ctx), "champ-1").Return(ownedChampionship(), true, nil).Once()
	m.events.On("ListByMatch", ctxIs(ctx), "m1").Return([]matchevent.Event{}, nil).Once()
	m.standings.On("Get", ctxIs(ctx), "champ-1", "home").Return(standing.Row{}, false, nil).Once()
	m.standings.On("Get", ctxIs(ctx), "champ-1", "away").Return(standing.Row{}, false, nil).Once()
	m.standings.
		On("Upsert", ctxIs(ctx),
			mock.MatchedBy(func(r standing.Row) bool {
				return r.TeamID == "home" && r.Points == 3 && r.Wins == 1 && r.GoalsFor == 2 && r.GoalsAgainst == 1
			}),
			mock.MatchedBy(func(r standing.Row) bool {
				return r.TeamID == "away" && r.Points == 0 && r.Losses == 1 && r.GoalsFor == 1 && r.GoalsAgainst == 2
			}),
		).
		Return(nil).
		Once()
	m.matches.
		On("Update", ctxIs(ctx), mock.MatchedBy(func(v match.Match) bool {
			return v.Status == match.StatusFinished && v.StatsApplied && v.ElapsedMinutes == match.FullLength && v.Version == 7
		})).
		Return(func(_ context.Context, v match.Match) (match.Match, error) {
			v.Version++
			return v, nil
		}).
		Once()

	got, err := svc.Transition(ctx, TransitionInput{Actor: organizer, MatchID: "m1", Action: match.ActionEnd})
	if err != nil {
		t.Fatalf("end match: %v", err)
	}
	if got.Status != match.StatusFinished || got.Version != 8 {
		t.Fatalf("unexpected match: status=%s version=%d", got.Status, got.Version)
	}
}

func TestMatchService_Transition_AlreadyAppliedSkipsAggregatorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newMockedMatchService(t)
	// A penalties match restored from storage after a crash already carries
	// the applied flag; ending it must not fold the result twice.
	live := match.Match{ID: "m1", ChampionshipID: "champ-1", HomeTeamID: "a", AwayTeamID: "b", Status: match.StatusPenalties, StatsApplied: true, Version: 2}

	m.matches.On("GetByID", ctxIs(ctx), "m1").Return(live, true, nil).Twice()
	m.champs.On("GetByID", ctxIs(ctx), "champ-1").Return(ownedChampionship(), true, nil).Once()
	m.matches.On("Update", ctxIs(ctx), mock.Anything).Return(func(_ context.Context, v match.Match) (match.Match, error) {
		v.Version++
		return v, nil
	}).Once()

	if _, err := svc.Transition(ctx, TransitionInput{Actor: organizer, MatchID: "m1", Action: match.ActionEnd}); err != nil {
		t.Fatalf("end match: %v", err)
	}
}

func TestMatchService_Get_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newMockedMatchService(t)
	m.matches.On("GetByID", ctxIs(ctx), "missing").Return(match.Match{}, false, nil).Once()

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
