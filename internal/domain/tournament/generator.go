package tournament

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinTeams  = 2
	MinGroups = 2

	// NoGroup marks a pairing produced outside a group stage.
	NoGroup = -1
)

var (
	ErrNotEnoughTeams   = errors.New("at least two teams are required")
	ErrDuplicateTeam    = errors.New("team appears more than once")
	ErrEmptyTeamID      = errors.New("team id is empty")
	ErrInvalidGroupSize = errors.New("invalid number of groups")
)

// Pairing is one generated fixture. Round is 1-based and restarts inside
// every group, so matches of the same round can be played side by side.
type Pairing struct {
	Round      int
	HomeTeamID string
	AwayTeamID string
	GroupIndex int
}

// Draw is the partition of one group produced by GroupStage.
type Draw struct {
	Index   int
	Name    string
	TeamIDs []string
}

// RoundRobin builds a circle-method schedule where every team meets every
// other team once, or twice with swapped venues when homeAndAway is set.
// An odd roster gets a bye slot each round and byes produce no pairing.
func RoundRobin(teamIDs []string, homeAndAway bool) ([]Pairing, error) {
	if err := validateRoster(teamIDs); err != nil {
		return nil, err
	}
	return roundRobin(teamIDs, homeAndAway, NoGroup), nil
}

// GroupStage splits teamIDs into groupCount groups whose sizes differ by at
// most one, then runs RoundRobin inside every group.
func GroupStage(teamIDs []string, groupCount int, homeAndAway bool) ([]Draw, []Pairing, error) {
	if err := validateRoster(teamIDs); err != nil {
		return nil, nil, err
	}
	if groupCount < MinGroups || groupCount > MaxGroups(len(teamIDs)) {
		return nil, nil, fmt.Errorf("%w: got=%d allowed=%d..%d", ErrInvalidGroupSize, groupCount, MinGroups, MaxGroups(len(teamIDs)))
	}

	draws := Partition(teamIDs, groupCount)
	pairings := make([]Pairing, 0, ExpectedGroupStageMatches(len(teamIDs), groupCount, homeAndAway))
	for _, draw := range draws {
		pairings = append(pairings, roundRobin(draw.TeamIDs, homeAndAway, draw.Index)...)
	}

	return draws, pairings, nil
}

// Partition deals teams into groups in order, one per group per pass.
func Partition(teamIDs []string, groupCount int) []Draw {
	if groupCount <= 0 {
		return nil
	}

	draws := make([]Draw, groupCount)
	for i := range draws {
		draws[i] = Draw{
			Index:   i,
			Name:    GroupName(i),
			TeamIDs: make([]string, 0, len(teamIDs)/groupCount+1),
		}
	}
	for i, id := range teamIDs {
		slot := i % groupCount
		draws[slot].TeamIDs = append(draws[slot].TeamIDs, id)
	}

	return draws
}

// MaxGroups is the largest group count that keeps two teams per group.
func MaxGroups(teamCount int) int {
	return teamCount / 2
}

// ExpectedMatches is the number of pairings RoundRobin yields for n teams.
func ExpectedMatches(n int, homeAndAway bool) int {
	if n < MinTeams {
		return 0
	}
	total := n * (n - 1) / 2
	if homeAndAway {
		total *= 2
	}
	return total
}

// ExpectedGroupStageMatches sums ExpectedMatches over the partition sizes.
func ExpectedGroupStageMatches(teamCount, groupCount int, homeAndAway bool) int {
	if groupCount <= 0 {
		return 0
	}
	total := 0
	base := teamCount / groupCount
	extra := teamCount % groupCount
	for i := 0; i < groupCount; i++ {
		size := base
		if i < extra {
			size++
		}
		total += ExpectedMatches(size, homeAndAway)
	}
	return total
}

// GroupName returns spreadsheet-style labels: A..Z, AA, AB...
func GroupName(index int) string {
	if index < 0 {
		return ""
	}
	var b []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

func validateRoster(teamIDs []string) error {
	if len(teamIDs) < MinTeams {
		return fmt.Errorf("%w: got=%d", ErrNotEnoughTeams, len(teamIDs))
	}
	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if strings.TrimSpace(id) == "" {
			return ErrEmptyTeamID
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: team=%s", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func roundRobin(teamIDs []string, homeAndAway bool, groupIndex int) []Pairing {
	slots := append([]string(nil), teamIDs...)
	if len(slots)%2 == 1 {
		slots = append(slots, "")
	}

	n := len(slots)
	rounds := n - 1
	half := n / 2
	out := make([]Pairing, 0, ExpectedMatches(len(teamIDs), homeAndAway))

	for round := 0; round < rounds; round++ {
		for i := 0; i < half; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == "" || away == "" {
				continue
			}
			// the pinned team alternates venue every round
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			out = append(out, Pairing{
				Round:      round + 1,
				HomeTeamID: home,
				AwayTeamID: away,
				GroupIndex: groupIndex,
			})
		}
		slots = rotate(slots)
	}

	if !homeAndAway {
		return out
	}

	firstLeg := len(out)
	for i := 0; i < firstLeg; i++ {
		p := out[i]
		out = append(out, Pairing{
			Round:      p.Round + rounds,
			HomeTeamID: p.AwayTeamID,
			AwayTeamID: p.HomeTeamID,
			GroupIndex: p.GroupIndex,
		})
	}
	return out
}

// rotate keeps slot 0 fixed and moves the last slot to position 1.
func rotate(slots []string) []string {
	n := len(slots)
	if n <= 2 {
		return slots
	}
	out := make([]string, 0, n)
	out = append(out, slots[0], slots[n-1])
	out = append(out, slots[1:n-1]...)
	return out
}
