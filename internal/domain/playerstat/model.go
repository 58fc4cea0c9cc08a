package playerstat

import (
	"sort"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
)

// Stat is the cumulative record of one player inside a championship.
type Stat struct {
	ChampionshipID string
	PlayerID       string
	TeamID         string
	MatchesPlayed  int
	Goals          int
	Assists        int
	YellowCards    int
	RedCards       int
	MinutesPlayed  int
	UpdatedAt      time.Time
}

// Delta is what one finished match adds to a player's record.
type Delta struct {
	PlayerID      string
	TeamID        string
	MatchesPlayed int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
}

func (d Delta) Negate() Delta {
	return Delta{
		PlayerID:      d.PlayerID,
		TeamID:        d.TeamID,
		MatchesPlayed: -d.MatchesPlayed,
		Goals:         -d.Goals,
		Assists:       -d.Assists,
		YellowCards:   -d.YellowCards,
		RedCards:      -d.RedCards,
		MinutesPlayed: -d.MinutesPlayed,
	}
}

func (s Stat) Apply(d Delta) Stat {
	if s.TeamID == "" {
		s.TeamID = d.TeamID
	}
	s.MatchesPlayed += d.MatchesPlayed
	s.Goals += d.Goals
	s.Assists += d.Assists
	s.YellowCards += d.YellowCards
	s.RedCards += d.RedCards
	s.MinutesPlayed += d.MinutesPlayed
	return s
}

type appearance struct {
	teamID string
	entry  int
	exit   int
}

// FromEvents derives per-player deltas for a match that lasted fullTime
// minutes. Every player referenced by an event is credited one match and
// the minutes between entering and leaving the pitch: starters enter at 0,
// substitutes at their substitution minute, and a player leaves when
// substituted off or sent off. Output is ordered by player id.
func FromEvents(events []matchevent.Event, fullTime int) []Delta {
	ordered := append([]matchevent.Event(nil), events...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Minute < ordered[j].Minute
	})

	deltas := make(map[string]*Delta)
	appearances := make(map[string]*appearance)

	touch := func(playerID, teamID string) *Delta {
		d, ok := deltas[playerID]
		if !ok {
			d = &Delta{PlayerID: playerID, TeamID: teamID, MatchesPlayed: 1}
			deltas[playerID] = d
			appearances[playerID] = &appearance{teamID: teamID, entry: 0, exit: fullTime}
		}
		return d
	}
	leave := func(playerID string, minute int) {
		a := appearances[playerID]
		if minute >= a.entry && minute < a.exit {
			a.exit = minute
		}
	}

	for _, e := range ordered {
		switch e.Type {
		case matchevent.TypeGoal:
			touch(e.PlayerID, e.TeamID).Goals++
			if e.SecondaryPlayerID != "" {
				touch(e.SecondaryPlayerID, e.TeamID).Assists++
			}
		case matchevent.TypeAssist:
			touch(e.PlayerID, e.TeamID).Assists++
		case matchevent.TypeYellowCard:
			touch(e.PlayerID, e.TeamID).YellowCards++
		case matchevent.TypeRedCard:
			touch(e.PlayerID, e.TeamID).RedCards++
			leave(e.PlayerID, e.Minute)
		case matchevent.TypeSubstitution:
			if _, seen := deltas[e.PlayerID]; !seen {
				touch(e.PlayerID, e.TeamID)
				appearances[e.PlayerID].entry = clamp(e.Minute, 0, fullTime)
			}
			if e.SecondaryPlayerID != "" {
				touch(e.SecondaryPlayerID, e.TeamID)
				leave(e.SecondaryPlayerID, e.Minute)
			}
		}
	}

	out := make([]Delta, 0, len(deltas))
	for playerID, d := range deltas {
		a := appearances[playerID]
		d.MinutesPlayed = clamp(a.exit-a.entry, 0, fullTime)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
