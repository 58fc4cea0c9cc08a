package match

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusHalftime   Status = "halftime"
	StatusSecondHalf Status = "second_half"
	StatusPenalties  Status = "penalties"
	StatusFinished   Status = "finished"
)

type Phase string

const (
	PhaseLeague       Phase = "league"
	PhaseGroup        Phase = "group"
	PhaseRoundOf16    Phase = "round_of_16"
	PhaseQuarterFinal Phase = "quarter_final"
	PhaseSemiFinal    Phase = "semi_final"
	PhaseFinal        Phase = "final"
)

var AllPhases = map[Phase]struct{}{
	PhaseLeague:       {},
	PhaseGroup:        {},
	PhaseRoundOf16:    {},
	PhaseQuarterFinal: {},
	PhaseSemiFinal:    {},
	PhaseFinal:        {},
}

// Match is one fixture between two teams of a championship.
type Match struct {
	ID             string
	ChampionshipID string
	GroupID        string
	Round          int
	HomeTeamID     string
	AwayTeamID     string
	Venue          string
	MatchDate      time.Time
	Phase          Phase
	Status         Status
	ElapsedMinutes int
	HomeScore      int
	AwayScore      int
	Generated      bool
	StatsApplied   bool
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.ChampionshipID) == "" {
		return fmt.Errorf("match championship id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match requires home and away teams")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return ErrSameTeam
	}
	if _, ok := AllPhases[m.Phase]; !ok {
		return fmt.Errorf("invalid match phase: %s", m.Phase)
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("match score cannot be negative")
	}

	return nil
}

// Involves reports whether teamID is one of the two sides.
func (m Match) Involves(teamID string) bool {
	return teamID != "" && (teamID == m.HomeTeamID || teamID == m.AwayTeamID)
}

// IsHome reports whether teamID plays at home.
func (m Match) IsHome(teamID string) bool {
	return teamID != "" && teamID == m.HomeTeamID
}

// Reset returns the match reverted to a fresh scheduled state.
func (m Match) Reset() Match {
	m.Status = StatusScheduled
	m.ElapsedMinutes = 0
	m.HomeScore = 0
	m.AwayScore = 0
	m.StatsApplied = false
	return m
}

func ParsePhase(raw string) (Phase, bool) {
	phase := Phase(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := AllPhases[phase]
	return phase, ok
}
