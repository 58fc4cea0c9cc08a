package match

import (
	"errors"
	"testing"
)

func TestApply_FullLifecycle(t *testing.T) {
	t.Parallel()

	m := Match{ID: "m1", Status: StatusScheduled}
	steps := []struct {
		action  Action
		status  Status
		elapsed int
	}{
		{ActionStart, StatusInProgress, 0},
		{ActionPause, StatusHalftime, 45},
		{ActionResume, StatusSecondHalf, 45},
		{ActionPenalties, StatusPenalties, 90},
		{ActionEnd, StatusFinished, 90},
	}

	for _, step := range steps {
		next, err := Apply(m, step.action)
		if err != nil {
			t.Fatalf("%s from %s: unexpected error: %v", step.action, m.Status, err)
		}
		if next.Status != step.status || next.ElapsedMinutes != step.elapsed {
			t.Fatalf("%s: got=%s/%d want=%s/%d", step.action, next.Status, next.ElapsedMinutes, step.status, step.elapsed)
		}
		m = next
	}
}

func TestApply_EndFromEveryLiveStatus(t *testing.T) {
	t.Parallel()

	for _, from := range []Status{StatusInProgress, StatusHalftime, StatusSecondHalf, StatusPenalties} {
		next, err := Apply(Match{Status: from, ElapsedMinutes: 12}, ActionEnd)
		if err != nil {
			t.Fatalf("end from %s: unexpected error: %v", from, err)
		}
		if next.Status != StatusFinished || next.ElapsedMinutes != FullLength {
			t.Fatalf("end from %s: got=%s/%d", from, next.Status, next.ElapsedMinutes)
		}
	}
}

func TestApply_RejectsInvalidTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from   Status
		action Action
	}{
		{StatusScheduled, ActionEnd},
		{StatusScheduled, ActionPause},
		{StatusInProgress, ActionStart},
		{StatusInProgress, ActionResume},
		{StatusHalftime, ActionPause},
		{StatusHalftime, ActionPenalties},
		{StatusSecondHalf, ActionPause},
		{StatusPenalties, ActionResume},
	}
	for _, tc := range cases {
		original := Match{Status: tc.from, ElapsedMinutes: 7}
		got, err := Apply(original, tc.action)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s from %s: expected ErrInvalidTransition, got %v", tc.action, tc.from, err)
		}
		if got != original {
			t.Fatalf("%s from %s: match mutated on rejection: %+v", tc.action, tc.from, got)
		}
	}

	for _, action := range []Action{ActionStart, ActionPause, ActionResume, ActionPenalties, ActionEnd} {
		if _, err := Apply(Match{Status: StatusFinished}, action); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s from finished: expected ErrInvalidTransition, got %v", action, err)
		}
	}
	if actions := AllowedActions(StatusFinished); len(actions) != 0 {
		t.Fatalf("finished must be terminal, got actions=%v", actions)
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	if got, err := ParseAction(" End "); err != nil || got != ActionEnd {
		t.Fatalf("got=%q err=%v", got, err)
	}
	if _, err := ParseAction("kickoff"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestEventMinuteRange(t *testing.T) {
	t.Parallel()

	lo, hi, ok := EventMinuteRange(StatusInProgress, 5)
	if !ok || lo != 0 || hi != 50 {
		t.Fatalf("first half got=%d..%d ok=%v", lo, hi, ok)
	}
	lo, hi, ok = EventMinuteRange(StatusSecondHalf, 0)
	if !ok || lo != 45 || hi != 90 {
		t.Fatalf("second half got=%d..%d ok=%v", lo, hi, ok)
	}
	for _, status := range []Status{StatusScheduled, StatusHalftime, StatusPenalties, StatusFinished} {
		if _, _, ok := EventMinuteRange(status, 10); ok {
			t.Fatalf("status %s should not accept events", status)
		}
	}
}

func TestClockCap(t *testing.T) {
	t.Parallel()

	if ClockCap(StatusInProgress) != 45 || ClockCap(StatusSecondHalf) != 90 || ClockCap(StatusHalftime) != 0 {
		t.Fatalf("unexpected clock caps")
	}
	if ClockRunning(StatusHalftime) || ClockRunning(StatusFinished) || !ClockRunning(StatusSecondHalf) {
		t.Fatalf("unexpected clock running states")
	}
}

func TestMatchValidate(t *testing.T) {
	t.Parallel()

	valid := Match{ID: "m1", ChampionshipID: "c1", HomeTeamID: "a", AwayTeamID: "b", Phase: PhaseLeague}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := valid
	same.AwayTeamID = "a"
	if err := same.Validate(); !errors.Is(err, ErrSameTeam) {
		t.Fatalf("expected ErrSameTeam, got %v", err)
	}

	badPhase := valid
	badPhase.Phase = "friendly"
	if err := badPhase.Validate(); err == nil {
		t.Fatalf("expected phase error")
	}
}
