package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/memory"
)

func TestChampionshipFlow_FourTeamSingleRoundRobin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	result := env.generate(t, GenerateFixturesInput{})

	if len(result.Matches) != 6 {
		t.Fatalf("unexpected match count: got=%d want=6", len(result.Matches))
	}
	appearances := make(map[string]int)
	for _, m := range result.Matches {
		appearances[m.HomeTeamID]++
		appearances[m.AwayTeamID]++
		if m.Status != match.StatusScheduled || m.Phase != match.PhaseLeague || !m.Generated {
			t.Fatalf("unexpected generated match: %+v", m)
		}
	}
	for teamID := range rosterPrefix {
		if appearances[teamID] != 3 {
			t.Fatalf("team %s appears %d times, want 3", teamID, appearances[teamID])
		}
	}

	rows, err := env.tables.ListStandings(context.Background(), memory.ChampionshipIDDemo, "")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected a zeroed row per team, got %d", len(rows))
	}
}

func TestChampionshipFlow_RegenerationReplacesGeneratedMatches(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.generate(t, GenerateFixturesInput{})
	second := env.generate(t, GenerateFixturesInput{HomeAndAway: true})

	if second.Removed != 6 {
		t.Fatalf("unexpected removed count: got=%d want=6", second.Removed)
	}
	stored, _ := env.matchRepo.ListByChampionship(context.Background(), memory.ChampionshipIDDemo)
	if len(stored) != 12 {
		t.Fatalf("expected 12 matches after home-and-away regeneration, got %d", len(stored))
	}
}

func TestChampionshipFlow_RegenerationRejectedOnceMatchStarted(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-leoes")
	env.transition(t, m.ID, match.ActionStart)

	_, err := env.fixtures.Generate(context.Background(), GenerateFixturesInput{
		Actor:          organizer,
		ChampionshipID: memory.ChampionshipIDDemo,
		Kind:           tournament.KindPoints,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	stored, _ := env.matchRepo.ListByChampionship(context.Background(), memory.ChampionshipIDDemo)
	if len(stored) != 6 {
		t.Fatalf("rejected regeneration changed the schedule: %d matches", len(stored))
	}
}

func TestChampionshipFlow_RegenerationWaitsForInFlightTransition(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-leoes")

	// Hold the match as a transition would while it commits.
	unlock := env.locks.Lock(m.ID)

	done := make(chan error, 1)
	go func() {
		_, err := env.fixtures.Generate(ctx, GenerateFixturesInput{
			Actor:          organizer,
			ChampionshipID: memory.ChampionshipIDDemo,
			Kind:           tournament.KindPoints,
		})
		done <- err
	}()

	select {
	case err := <-done:
		unlock()
		t.Fatalf("regeneration did not wait for the match lock: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	stored, _, _ := env.matchRepo.GetByID(ctx, m.ID)
	stored.Status = match.StatusInProgress
	if _, err := env.matchRepo.Update(ctx, stored); err != nil {
		unlock()
		t.Fatalf("start match: %v", err)
	}
	unlock()

	select {
	case err := <-done:
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("regeneration did not finish after the lock was released")
	}

	live, exists, _ := env.matchRepo.GetByID(ctx, m.ID)
	if !exists || live.Status != match.StatusInProgress {
		t.Fatalf("live match lost: exists=%v status=%s", exists, live.Status)
	}
}

func TestChampionshipFlow_GroupStage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	result := env.generate(t, GenerateFixturesInput{
		Kind:           tournament.KindGroups,
		NumberOfGroups: 2,
		TeamsAdvancing: 1,
	})

	if len(result.Groups) != 2 || len(result.Matches) != 2 {
		t.Fatalf("unexpected group stage: groups=%d matches=%d", len(result.Groups), len(result.Matches))
	}
	for _, m := range result.Matches {
		if m.GroupID == "" || m.Phase != match.PhaseGroup {
			t.Fatalf("group match without group tag: %+v", m)
		}
	}

	overview, err := env.tables.Overview(context.Background(), memory.ChampionshipIDDemo)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Kind != tournament.KindGroups || len(overview.Tables) != 2 {
		t.Fatalf("unexpected overview: kind=%s tables=%d", overview.Kind, len(overview.Tables))
	}
	for _, table := range overview.Tables {
		if len(table.Rows) != 2 || table.GroupName == "" {
			t.Fatalf("unexpected table: %+v", table)
		}
		if table.Rows[0].Position != 1 || table.Rows[1].Position != 2 || table.Rows[0].TeamName == "" {
			t.Fatalf("unexpected ranked rows: %+v", table.Rows)
		}
	}
}

func TestChampionshipFlow_GroupStageDefaultsTeamsAdvancing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	result := env.generate(t, GenerateFixturesInput{
		Kind:           tournament.KindGroups,
		NumberOfGroups: 2,
	})

	if result.Format.TeamsAdvancing != 2 {
		t.Fatalf("unexpected teams advancing: got=%d want=2", result.Format.TeamsAdvancing)
	}
	if len(result.Groups) != 2 || len(result.Matches) != 2 {
		t.Fatalf("unexpected group stage: groups=%d matches=%d", len(result.Groups), len(result.Matches))
	}

	_, err := env.fixtures.Generate(context.Background(), GenerateFixturesInput{
		Actor:          organizer,
		ChampionshipID: memory.ChampionshipIDDemo,
		Kind:           tournament.KindGroups,
		NumberOfGroups: 2,
		TeamsAdvancing: 3,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 3 advancing from groups of 2, got %v", err)
	}
}

func TestChampionshipFlow_GenerationValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.fixtures.Generate(ctx, GenerateFixturesInput{
		Actor:          organizer,
		ChampionshipID: memory.ChampionshipIDDemo,
		Kind:           tournament.KindGroups,
		NumberOfGroups: 3,
		TeamsAdvancing: 1,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 3 groups of 4 teams, got %v", err)
	}

	_, err = env.fixtures.Generate(ctx, GenerateFixturesInput{
		Actor:          stranger,
		ChampionshipID: memory.ChampionshipIDDemo,
		Kind:           tournament.KindPoints,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, _ := env.matchRepo.ListByChampionship(ctx, memory.ChampionshipIDDemo)
	if len(stored) != 0 {
		t.Fatalf("rejected generation persisted %d matches", len(stored))
	}
}

func TestChampionshipFlow_GoalsIncrementScore(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-leoes")
	m = env.transition(t, m.ID, match.ActionStart)

	home := m.HomeTeamID
	m = env.goal(t, m, home, 10)
	if m.HomeScore != 1 || m.AwayScore != 0 {
		t.Fatalf("unexpected score after first goal: %d-%d", m.HomeScore, m.AwayScore)
	}
	m = env.goal(t, m, home, 20)
	if m.HomeScore != 2 {
		t.Fatalf("unexpected home score after second goal: %d", m.HomeScore)
	}

	events, err := env.matches.ListEvents(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("unexpected event count: got=%d want=2", len(events))
	}
}

func TestChampionshipFlow_FinishAppliesStandingsOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-leoes")
	home, away := m.HomeTeamID, m.AwayTeamID

	m = env.transition(t, m.ID, match.ActionStart)
	m = env.goal(t, m, home, 12)
	m = env.goal(t, m, away, 30)
	m = env.transition(t, m.ID, match.ActionPause, match.ActionResume)
	m = env.goal(t, m, home, 77)
	m = env.transition(t, m.ID, match.ActionEnd)

	if m.Status != match.StatusFinished || m.ElapsedMinutes != match.FullLength || !m.StatsApplied {
		t.Fatalf("unexpected finished match: %+v", m)
	}
	assertRow := func(teamID string, want standing.Row) {
		t.Helper()
		got, exists, _ := env.standings.Get(ctx, memory.ChampionshipIDDemo, teamID)
		if !exists {
			t.Fatalf("missing standing row for %s", teamID)
		}
		if got.Played != want.Played || got.Wins != want.Wins || got.Losses != want.Losses ||
			got.GoalsFor != want.GoalsFor || got.GoalsAgainst != want.GoalsAgainst || got.Points != want.Points {
			t.Fatalf("unexpected row for %s: got=%+v want=%+v", teamID, got, want)
		}
	}
	assertRow(home, standing.Row{Played: 1, Wins: 1, GoalsFor: 2, GoalsAgainst: 1, Points: 3})
	assertRow(away, standing.Row{Played: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 2, Points: 0})

	again, err := env.matches.ApplyStandings(ctx, organizer, m.ID)
	if err != nil {
		t.Fatalf("apply standings again: %v", err)
	}
	if again.Version != m.Version {
		t.Fatalf("idempotent apply wrote the match: version %d -> %d", m.Version, again.Version)
	}
	assertRow(home, standing.Row{Played: 1, Wins: 1, GoalsFor: 2, GoalsAgainst: 1, Points: 3})

	if _, err := env.matches.Transition(ctx, TransitionInput{Actor: organizer, MatchID: m.ID, Action: match.ActionEnd}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict ending a finished match, got %v", err)
	}
	assertRow(away, standing.Row{Played: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 2, Points: 0})

	scorer, exists, _ := env.stats.Get(ctx, memory.ChampionshipIDDemo, forwardOf(home))
	if !exists || scorer.Goals != 2 || scorer.MatchesPlayed != 1 || scorer.MinutesPlayed != match.FullLength {
		t.Fatalf("unexpected scorer stat: %+v", scorer)
	}
}

func TestChampionshipFlow_TransitionGuards(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-tubaroes", "team-falcoes")

	if _, err := env.matches.Transition(ctx, TransitionInput{Actor: organizer, MatchID: m.ID, Action: match.ActionEnd}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for end from scheduled, got %v", err)
	}
	if _, err := env.matches.Transition(ctx, TransitionInput{Actor: stranger, MatchID: m.ID, Action: match.ActionStart}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non organizer, got %v", err)
	}
	if _, err := env.matches.Transition(ctx, TransitionInput{MatchID: m.ID, Action: match.ActionStart}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without principal, got %v", err)
	}

	env.transition(t, m.ID, match.ActionStart)
	if _, err := env.matches.Transition(ctx, TransitionInput{Actor: organizer, MatchID: m.ID, Action: match.ActionStart}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for second start, got %v", err)
	}

	stored, _, _ := env.matchRepo.GetByID(ctx, m.ID)
	if stored.Status != match.StatusInProgress {
		t.Fatalf("rejected transitions changed status to %s", stored.Status)
	}
}

func TestChampionshipFlow_EventValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-falcoes")
	home := m.HomeTeamID

	record := func(in RecordEventInput) error {
		in.Actor = organizer
		in.MatchID = m.ID
		_, err := env.matches.RecordEvent(ctx, in)
		return err
	}

	if err := record(RecordEventInput{TeamID: home, PlayerID: forwardOf(home), Type: matchevent.TypeGoal}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict before kick-off, got %v", err)
	}

	env.transition(t, m.ID, match.ActionStart)
	cases := []struct {
		name string
		in   RecordEventInput
		want error
	}{
		{"minute beyond first half tolerance", RecordEventInput{TeamID: home, PlayerID: forwardOf(home), Type: matchevent.TypeGoal, Minute: intPtr(56)}, ErrInvalidInput},
		{"team not in match", RecordEventInput{TeamID: "team-leoes", PlayerID: forwardOf("team-leoes"), Type: matchevent.TypeGoal}, ErrInvalidInput},
		{"player from another team", RecordEventInput{TeamID: home, PlayerID: forwardOf("team-leoes"), Type: matchevent.TypeYellowCard}, ErrInvalidInput},
		{"assist by scorer", RecordEventInput{TeamID: home, PlayerID: forwardOf(home), SecondaryPlayerID: forwardOf(home), Type: matchevent.TypeGoal}, ErrInvalidInput},
		{"unknown player", RecordEventInput{TeamID: home, PlayerID: "ghost", Type: matchevent.TypeRedCard}, ErrNotFound},
	}
	for _, tc := range cases {
		if err := record(tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if err := record(RecordEventInput{TeamID: home, PlayerID: forwardOf(home), Type: matchevent.TypeGoal, Minute: intPtr(55)}); err != nil {
		t.Fatalf("stoppage time goal rejected: %v", err)
	}

	env.transition(t, m.ID, match.ActionPause)
	if err := record(RecordEventInput{TeamID: home, PlayerID: forwardOf(home), Type: matchevent.TypeGoal}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict at halftime, got %v", err)
	}

	stored, _, _ := env.matchRepo.GetByID(ctx, m.ID)
	if stored.HomeScore != 1 {
		t.Fatalf("rejected events changed the score: %d", stored.HomeScore)
	}
}

func TestChampionshipFlow_ResetStatistics(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})

	first := env.findMatch(t, "team-aguias", "team-leoes")
	first = env.transition(t, first.ID, match.ActionStart)
	first = env.goal(t, first, first.HomeTeamID, 5)
	env.transition(t, first.ID, match.ActionEnd)

	second := env.findMatch(t, "team-tubaroes", "team-falcoes")
	second = env.transition(t, second.ID, match.ActionStart)
	second = env.goal(t, second, second.AwayTeamID, 40)
	env.transition(t, second.ID, match.ActionPause, match.ActionResume, match.ActionEnd)

	third := env.findMatch(t, "team-aguias", "team-tubaroes")
	env.transition(t, third.ID, match.ActionStart)

	if _, err := env.tables.ResetChampionshipStatistics(ctx, stranger, memory.ChampionshipIDDemo); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	reverted, err := env.tables.ResetChampionshipStatistics(ctx, organizer, memory.ChampionshipIDDemo)
	if err != nil {
		t.Fatalf("reset statistics: %v", err)
	}
	if reverted != 6 {
		t.Fatalf("unexpected reverted count: got=%d want=6", reverted)
	}

	matches, _ := env.matchRepo.ListByChampionship(ctx, memory.ChampionshipIDDemo)
	for _, m := range matches {
		if m.Status != match.StatusScheduled || m.HomeScore != 0 || m.AwayScore != 0 || m.ElapsedMinutes != 0 || m.StatsApplied {
			t.Fatalf("match not reverted: %+v", m)
		}
		events, _ := env.eventRepo.ListByMatch(ctx, m.ID)
		if len(events) != 0 {
			t.Fatalf("events left on match %s: %d", m.ID, len(events))
		}
	}

	rows, _ := env.standings.ListByChampionship(ctx, memory.ChampionshipIDDemo)
	for _, row := range rows {
		if row.Played != 0 || row.Points != 0 || row.GoalsFor != 0 || row.GoalsAgainst != 0 {
			t.Fatalf("standing not zeroed: %+v", row)
		}
	}
	stats, _ := env.stats.List(ctx, playerstat.Query{ChampionshipID: memory.ChampionshipIDDemo})
	for _, s := range stats {
		if s.Goals != 0 || s.MatchesPlayed != 0 || s.MinutesPlayed != 0 {
			t.Fatalf("player stat not zeroed: %+v", s)
		}
	}

	// Regeneration is allowed again once everything is back to scheduled.
	env.generate(t, GenerateFixturesInput{HomeAndAway: true})
}

func TestChampionshipFlow_DeleteFinishedMatchRevertsStatistics(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})

	m := env.findMatch(t, "team-leoes", "team-falcoes")
	m = env.transition(t, m.ID, match.ActionStart)
	m = env.goal(t, m, m.AwayTeamID, 33)
	env.transition(t, m.ID, match.ActionEnd)

	if err := env.fixtures.DeleteMatch(ctx, organizer, m.ID); err != nil {
		t.Fatalf("delete match: %v", err)
	}
	if _, exists, _ := env.matchRepo.GetByID(ctx, m.ID); exists {
		t.Fatalf("match still stored after delete")
	}
	for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
		row, _, _ := env.standings.Get(ctx, memory.ChampionshipIDDemo, teamID)
		if row.Played != 0 || row.Points != 0 || row.GoalsFor != 0 || row.GoalsAgainst != 0 {
			t.Fatalf("standing not reverted for %s: %+v", teamID, row)
		}
	}
	scorer, _, _ := env.stats.Get(ctx, memory.ChampionshipIDDemo, forwardOf(m.AwayTeamID))
	if scorer.Goals != 0 || scorer.MatchesPlayed != 0 {
		t.Fatalf("player stat not reverted: %+v", scorer)
	}
}

func TestChampionshipFlow_PlayerStatsRanking(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.generate(t, GenerateFixturesInput{})

	m := env.findMatch(t, "team-aguias", "team-leoes")
	m = env.transition(t, m.ID, match.ActionStart)
	home := m.HomeTeamID
	if _, err := env.matches.RecordEvent(ctx, RecordEventInput{
		Actor:             organizer,
		MatchID:           m.ID,
		TeamID:            home,
		PlayerID:          forwardOf(home),
		SecondaryPlayerID: midfielderOf(home),
		Type:              matchevent.TypeGoal,
		Minute:            intPtr(20),
	}); err != nil {
		t.Fatalf("record assisted goal: %v", err)
	}
	env.transition(t, m.ID, match.ActionEnd)

	top, err := env.tables.ListPlayerStats(ctx, ListPlayerStatsInput{ChampionshipID: memory.ChampionshipIDDemo, SortBy: "assists", Limit: 1})
	if err != nil {
		t.Fatalf("list player stats: %v", err)
	}
	if len(top) != 1 || top[0].PlayerID != midfielderOf(home) || top[0].Assists != 1 {
		t.Fatalf("unexpected top assister: %+v", top)
	}

	if _, err := env.tables.ListPlayerStats(ctx, ListPlayerStatsInput{ChampionshipID: memory.ChampionshipIDDemo, SortBy: "saves"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown sort, got %v", err)
	}
}

func TestChampionshipFlow_PublishesLiveUpdates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.generate(t, GenerateFixturesInput{})
	m := env.findMatch(t, "team-aguias", "team-leoes")
	m = env.transition(t, m.ID, match.ActionStart)
	env.goal(t, m, m.HomeTeamID, 3)
	env.transition(t, m.ID, match.ActionEnd)

	got := env.publisher.kinds()
	want := []LiveUpdateKind{LiveMatchUpdated, LiveEventRecorded, LiveMatchUpdated}
	if len(got) != len(want) {
		t.Fatalf("unexpected updates: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected update %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}
