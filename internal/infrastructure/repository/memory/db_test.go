package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
)

func TestDB_WithinTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	db := NewDB()
	matches := NewMatchRepository(db)
	standings := NewStandingRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithinTx(ctx, func(ctx context.Context) error {
		if err := matches.Insert(ctx, match.Match{ID: "m1", ChampionshipID: "c1", HomeTeamID: "a", AwayTeamID: "b"}); err != nil {
			return err
		}
		if err := standings.Upsert(ctx, standing.Row{ChampionshipID: "c1", TeamID: "a", Points: 3}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, exists, _ := matches.GetByID(ctx, "m1"); exists {
		t.Fatalf("expected match insert to be rolled back")
	}
	if _, exists, _ := standings.Get(ctx, "c1", "a"); exists {
		t.Fatalf("expected standing upsert to be rolled back")
	}
}

func TestDB_WithinTxCommits(t *testing.T) {
	t.Parallel()

	db := NewDB()
	matches := NewMatchRepository(db)
	ctx := context.Background()

	err := db.WithinTx(ctx, func(ctx context.Context) error {
		return db.WithinTx(ctx, func(ctx context.Context) error {
			return matches.Insert(ctx, match.Match{ID: "m1", ChampionshipID: "c1"})
		})
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}
	got, exists, _ := matches.GetByID(ctx, "m1")
	if !exists || got.Version != 1 {
		t.Fatalf("expected committed match with version 1, got exists=%v version=%d", exists, got.Version)
	}
}

func TestMatchRepository_UpdateChecksVersion(t *testing.T) {
	t.Parallel()

	db := NewDB()
	repo := NewMatchRepository(db)
	ctx := context.Background()
	if err := repo.Insert(ctx, match.Match{ID: "m1", Status: match.StatusScheduled}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	stored, _, _ := repo.GetByID(ctx, "m1")
	stored.Status = match.StatusInProgress
	updated, err := repo.Update(ctx, stored)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("unexpected version: got=%d want=2", updated.Version)
	}

	if _, err := repo.Update(ctx, stored); !errors.Is(err, match.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict for stale write, got %v", err)
	}
}

func TestMatchRepository_UpdateElapsedOnlyWhileClockRuns(t *testing.T) {
	t.Parallel()

	db := NewDB()
	repo := NewMatchRepository(db)
	ctx := context.Background()
	_ = repo.Insert(ctx,
		match.Match{ID: "live", Status: match.StatusInProgress},
		match.Match{ID: "ht", Status: match.StatusHalftime, ElapsedMinutes: 45},
	)

	if err := repo.UpdateElapsed(ctx, "live", 12); err != nil {
		t.Fatalf("update elapsed: %v", err)
	}
	if err := repo.UpdateElapsed(ctx, "ht", 46); err != nil {
		t.Fatalf("update elapsed: %v", err)
	}

	live, _, _ := repo.GetByID(ctx, "live")
	ht, _, _ := repo.GetByID(ctx, "ht")
	if live.ElapsedMinutes != 12 || live.Version != 1 {
		t.Fatalf("unexpected live match: elapsed=%d version=%d", live.ElapsedMinutes, live.Version)
	}
	if ht.ElapsedMinutes != 45 {
		t.Fatalf("halftime clock moved: got=%d want=45", ht.ElapsedMinutes)
	}
	if err := repo.UpdateElapsed(ctx, "missing", 1); err == nil {
		t.Fatalf("expected error for unknown match")
	}
}

func TestPredictionRepository_RejectsDuplicateVoter(t *testing.T) {
	t.Parallel()

	repo := NewPredictionRepository(NewDB())
	ctx := context.Background()

	first := prediction.Vote{ID: "v1", MatchID: "m1", Choice: prediction.ChoiceHome, VoterKey: "k"}
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	dup := prediction.Vote{ID: "v2", MatchID: "m1", Choice: prediction.ChoiceAway, VoterKey: "k"}
	if err := repo.Insert(ctx, dup); !errors.Is(err, prediction.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}
	other := prediction.Vote{ID: "v3", MatchID: "m2", Choice: prediction.ChoiceAway, VoterKey: "k"}
	if err := repo.Insert(ctx, other); err != nil {
		t.Fatalf("same voter on another match: %v", err)
	}

	counts, _ := repo.CountByMatch(ctx, "m1")
	if counts.Home != 1 || counts.Total() != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	db := NewDB()
	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	teams, _ := NewTeamRepository(db).ListByChampionship(ctx, ChampionshipIDDemo)
	if len(teams) != 4 {
		t.Fatalf("unexpected team count: got=%d want=4", len(teams))
	}
	for _, item := range SeedPlayers() {
		if err := item.Validate(); err != nil {
			t.Fatalf("invalid seed player %s: %v", item.ID, err)
		}
	}
}
