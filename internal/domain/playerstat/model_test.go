package playerstat

import (
	"testing"

	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
)

func byPlayer(deltas []Delta) map[string]Delta {
	out := make(map[string]Delta, len(deltas))
	for _, d := range deltas {
		out[d.PlayerID] = d
	}
	return out
}

func TestFromEvents_CountersAndMinutes(t *testing.T) {
	t.Parallel()

	events := []matchevent.Event{
		{PlayerID: "striker", TeamID: "home", Type: matchevent.TypeGoal, Minute: 10, SecondaryPlayerID: "winger"},
		{PlayerID: "striker", TeamID: "home", Type: matchevent.TypeGoal, Minute: 70},
		{PlayerID: "sub", TeamID: "home", Type: matchevent.TypeSubstitution, Minute: 60, SecondaryPlayerID: "winger"},
		{PlayerID: "defender", TeamID: "away", Type: matchevent.TypeYellowCard, Minute: 30},
		{PlayerID: "defender", TeamID: "away", Type: matchevent.TypeRedCard, Minute: 55},
	}

	got := byPlayer(FromEvents(events, 90))
	if len(got) != 4 {
		t.Fatalf("unexpected player count got=%d want=4", len(got))
	}

	striker := got["striker"]
	if striker.Goals != 2 || striker.MinutesPlayed != 90 || striker.MatchesPlayed != 1 {
		t.Fatalf("unexpected striker delta: %+v", striker)
	}
	winger := got["winger"]
	if winger.Assists != 1 || winger.MinutesPlayed != 60 {
		t.Fatalf("unexpected winger delta: %+v", winger)
	}
	sub := got["sub"]
	if sub.MinutesPlayed != 30 || sub.MatchesPlayed != 1 {
		t.Fatalf("unexpected substitute delta: %+v", sub)
	}
	defender := got["defender"]
	if defender.YellowCards != 1 || defender.RedCards != 1 || defender.MinutesPlayed != 55 || defender.TeamID != "away" {
		t.Fatalf("unexpected defender delta: %+v", defender)
	}
}

func TestFromEvents_SubstituteLaterSubbedOff(t *testing.T) {
	t.Parallel()

	events := []matchevent.Event{
		{PlayerID: "second", TeamID: "home", Type: matchevent.TypeSubstitution, Minute: 80, SecondaryPlayerID: "first"},
		{PlayerID: "first", TeamID: "home", Type: matchevent.TypeSubstitution, Minute: 50, SecondaryPlayerID: "starter"},
	}

	got := byPlayer(FromEvents(events, 90))
	if got["starter"].MinutesPlayed != 50 {
		t.Fatalf("starter minutes got=%d want=50", got["starter"].MinutesPlayed)
	}
	if got["first"].MinutesPlayed != 30 {
		t.Fatalf("first substitute minutes got=%d want=30", got["first"].MinutesPlayed)
	}
	if got["second"].MinutesPlayed != 10 {
		t.Fatalf("second substitute minutes got=%d want=10", got["second"].MinutesPlayed)
	}
}

func TestStatApplyAndNegate(t *testing.T) {
	t.Parallel()

	deltas := FromEvents([]matchevent.Event{
		{PlayerID: "p1", TeamID: "t1", Type: matchevent.TypeGoal, Minute: 5},
	}, 90)
	if len(deltas) != 1 {
		t.Fatalf("unexpected delta count: %d", len(deltas))
	}

	stat := Stat{ChampionshipID: "c1", PlayerID: "p1"}
	applied := stat.Apply(deltas[0])
	if applied.Goals != 1 || applied.MinutesPlayed != 90 || applied.TeamID != "t1" {
		t.Fatalf("unexpected applied stat: %+v", applied)
	}
	reverted := applied.Apply(deltas[0].Negate())
	if reverted.Goals != 0 || reverted.MinutesPlayed != 0 || reverted.MatchesPlayed != 0 {
		t.Fatalf("unexpected reverted stat: %+v", reverted)
	}
}
