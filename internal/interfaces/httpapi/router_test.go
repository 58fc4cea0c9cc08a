package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

const (
	organizerToken = "organizer-token"
	strangerToken  = "stranger-token"
)

type stubVerifier map[string]user.Principal

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

var rosterPrefix = map[string]string{
	"team-aguias":   "agu",
	"team-leoes":    "leo",
	"team-tubaroes": "tub",
	"team-falcoes":  "fal",
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	ID         string           `json:"id"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
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
	aggregator := usecase.NewStandingsAggregator(standings, stats, events)

	handler := NewHandler(Services{
		Championships: usecase.NewChampionshipService(champs, teams, nil, ids, 1024, logger),
		Teams:         usecase.NewTeamService(champs, teams, players, ids),
		Fixtures: usecase.NewFixtureService(usecase.FixtureDeps{
			Championships: champs, Teams: teams, Tournaments: tournaments, Matches: matches,
			Events: events, Predictions: votes, Standings: standings, Aggregator: aggregator,
			Tx: db, Locks: locks, IDs: ids, Logger: logger,
		}),
		Matches: usecase.NewMatchService(usecase.MatchDeps{
			Championships: champs, Players: players, Matches: matches, Events: events,
			Aggregator: aggregator, Tx: db, Locks: locks, IDs: ids, Logger: logger, StoppageTolerance: 10,
		}),
		Standings: usecase.NewStandingService(usecase.StandingDeps{
			Championships: champs, Teams: teams, Tournaments: tournaments, Matches: matches,
			Events: events, Standings: standings, PlayerStats: stats, Tx: db, Locks: locks, Logger: logger,
		}),
		Predictions: usecase.NewPredictionService(matches, votes, ids),
	}, 1024, logger)

	verifier := stubVerifier{
		organizerToken: {UserID: memory.OrganizerIDDemo, Role: user.RoleOrganizer},
		strangerToken:  {UserID: "someone-else", Role: user.RoleOrganizer},
	}
	return NewRouter(handler, verifier, logger, RouterConfig{ServiceName: "test"})
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := sonic.Marshal(v)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:5555"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %s: %v", rec.Body.String(), err)
	}
	return out.Data
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status got=%d want=%d body=%s", rec.Code, want, rec.Body.String())
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestRouter_RequestIDEchoedInHeaderAndEnvelope(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/matches/missing", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusNotFound)
	if got := rec.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("request id header: got=%q want=req-42", got)
	}
	var out envelope[any]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.ID != "req-42" || out.Error == nil || out.Error.Status != "NOT_FOUND" {
		t.Fatalf("unexpected envelope: id=%q error=%+v", out.ID, out.Error)
	}

	minted := do(t, router, http.MethodGet, "/healthz", "", nil)
	if minted.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestRouter_MutationsRequireOrganizer(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	path := "/v1/championships/" + memory.ChampionshipIDDemo + "/fixtures"
	body := map[string]any{"kind": "points"}

	expectStatus(t, do(t, router, http.MethodPost, path, "", body), http.StatusUnauthorized)
	expectStatus(t, do(t, router, http.MethodPost, path, "bogus", body), http.StatusUnauthorized)
	expectStatus(t, do(t, router, http.MethodPost, path, strangerToken, body), http.StatusForbidden)

	matches := decode[[]matchDTO](t, do(t, router, http.MethodGet, "/v1/championships/"+memory.ChampionshipIDDemo+"/matches", "", nil))
	if len(matches) != 0 {
		t.Fatalf("rejected generation left %d matches behind", len(matches))
	}
}

func TestRouter_RejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	path := "/v1/championships/" + memory.ChampionshipIDDemo + "/fixtures"

	expectStatus(t, do(t, router, http.MethodPost, path, organizerToken, `{"kind":"points","surprise":1}`), http.StatusBadRequest)
	expectStatus(t, do(t, router, http.MethodPost, path, organizerToken, `{"kind":"knockout"}`), http.StatusBadRequest)
	expectStatus(t, do(t, router, http.MethodPost, path, organizerToken, `{"kind":"groups"}`), http.StatusBadRequest)
	expectStatus(t, do(t, router, http.MethodPost, path, organizerToken, `not json`), http.StatusBadRequest)
}

func TestRouter_MatchDayFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	champPath := "/v1/championships/" + memory.ChampionshipIDDemo

	rec := do(t, router, http.MethodPost, champPath+"/fixtures", organizerToken, map[string]any{"kind": "points"})
	expectStatus(t, rec, http.StatusCreated)
	generated := decode[generateFixturesDTO](t, rec)
	if len(generated.Matches) != 6 {
		t.Fatalf("unexpected match count: got=%d want=6", len(generated.Matches))
	}
	if generated.Format.Kind != "points" {
		t.Fatalf("unexpected format kind: %s", generated.Format.Kind)
	}

	m := generated.Matches[0]
	matchPath := "/v1/matches/" + m.ID

	// Votes are open until the final whistle.
	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/predictions", "", map[string]string{"choice": "home"}), http.StatusCreated)
	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/predictions", "", map[string]string{"choice": "away"}), http.StatusConflict)

	rec = do(t, router, http.MethodPost, matchPath+"/transitions", organizerToken, map[string]string{"action": "start"})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[matchDTO](t, rec); got.Status != "in_progress" {
		t.Fatalf("unexpected status after start: %s", got.Status)
	}

	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/transitions", strangerToken, map[string]string{"action": "pause"}), http.StatusForbidden)
	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/transitions", organizerToken, map[string]string{"action": "resume"}), http.StatusConflict)
	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/transitions", organizerToken, map[string]string{"action": "kickoff"}), http.StatusBadRequest)

	rec = do(t, router, http.MethodPost, matchPath+"/events", organizerToken, map[string]any{
		"team_id":   m.HomeTeamID,
		"player_id": rosterPrefix[m.HomeTeamID] + "-4",
		"type":      "goal",
		"minute":    12,
	})
	expectStatus(t, rec, http.StatusCreated)
	recorded := decode[recordEventDTO](t, rec)
	if recorded.Match.HomeScore != 1 || recorded.Match.AwayScore != 0 {
		t.Fatalf("goal did not move the score: %d-%d", recorded.Match.HomeScore, recorded.Match.AwayScore)
	}

	rec = do(t, router, http.MethodPost, matchPath+"/transitions", organizerToken, map[string]string{"action": "end"})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[matchDTO](t, rec); got.Status != "finished" || !got.StatsApplied {
		t.Fatalf("unexpected match after end: status=%s applied=%v", got.Status, got.StatsApplied)
	}
	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/transitions", organizerToken, map[string]string{"action": "end"}), http.StatusConflict)
	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/standings", organizerToken, nil), http.StatusOK)
	expectStatus(t, do(t, router, http.MethodPost, matchPath+"/predictions", "", map[string]string{"choice": "draw"}), http.StatusConflict)

	standings := decode[standingsDTO](t, do(t, router, http.MethodGet, champPath+"/standings", "", nil))
	if len(standings.Tables) != 1 || len(standings.Tables[0].Rows) != 4 {
		t.Fatalf("unexpected standings shape: %+v", standings)
	}
	leader := standings.Tables[0].Rows[0]
	if leader.TeamID != m.HomeTeamID || leader.Points != 3 || leader.Position != 1 {
		t.Fatalf("unexpected leader: %+v", leader)
	}

	scorers := decode[[]playerStatDTO](t, do(t, router, http.MethodGet, champPath+"/player-stats?sort=goals&limit=1", "", nil))
	if len(scorers) != 1 || scorers[0].Goals != 1 {
		t.Fatalf("unexpected top scorers: %+v", scorers)
	}

	predictions := decode[predictionDTO](t, do(t, router, http.MethodGet, matchPath+"/predictions", "", nil))
	if predictions.TotalVotes != 1 || predictions.HomePercentage != 100 {
		t.Fatalf("unexpected predictions: %+v", predictions)
	}

	rec = do(t, router, http.MethodPost, champPath+"/statistics/reset", organizerToken, nil)
	expectStatus(t, rec, http.StatusOK)
	after := decode[matchDTO](t, do(t, router, http.MethodGet, matchPath, "", nil))
	if after.Status != "scheduled" || after.HomeScore != 0 || after.StatsApplied {
		t.Fatalf("reset left match state behind: %+v", after)
	}
}

func TestRouter_WatchMatchUnknownMatch(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(t), http.MethodGet, "/v1/matches/missing/live", "", nil)
	expectStatus(t, rec, http.StatusNotFound)
}
