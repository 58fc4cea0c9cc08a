package tournament

import (
	"errors"
	"fmt"
	"testing"
)

func teamIDs(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("team-%02d", i+1))
	}
	return out
}

func TestRoundRobin_SingleRoundCoversEveryPairOnce(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 11; n++ {
		pairings, err := RoundRobin(teamIDs(n), false)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if got, want := len(pairings), n*(n-1)/2; got != want {
			t.Fatalf("n=%d: unexpected match count got=%d want=%d", n, got, want)
		}

		seen := make(map[string]int)
		for _, p := range pairings {
			if p.HomeTeamID == p.AwayTeamID {
				t.Fatalf("n=%d: team paired with itself: %+v", n, p)
			}
			a, b := p.HomeTeamID, p.AwayTeamID
			if a > b {
				a, b = b, a
			}
			seen[a+"|"+b]++
		}
		if len(seen) != n*(n-1)/2 {
			t.Fatalf("n=%d: unexpected distinct pair count got=%d", n, len(seen))
		}
		for key, count := range seen {
			if count != 1 {
				t.Fatalf("n=%d: pair %s appears %d times", n, key, count)
			}
		}
	}
}

func TestRoundRobin_HomeAndAwayCoversEveryOrderedPairOnce(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 9; n++ {
		pairings, err := RoundRobin(teamIDs(n), true)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if got, want := len(pairings), n*(n-1); got != want {
			t.Fatalf("n=%d: unexpected match count got=%d want=%d", n, got, want)
		}

		seen := make(map[string]int)
		for _, p := range pairings {
			seen[p.HomeTeamID+">"+p.AwayTeamID]++
		}
		for key, count := range seen {
			if count != 1 {
				t.Fatalf("n=%d: ordered pair %s appears %d times", n, key, count)
			}
		}
		if len(seen) != n*(n-1) {
			t.Fatalf("n=%d: unexpected distinct ordered pairs got=%d", n, len(seen))
		}
	}
}

func TestRoundRobin_NoTeamPlaysTwiceInARound(t *testing.T) {
	t.Parallel()

	for _, n := range []int{4, 5, 8, 9} {
		pairings, err := RoundRobin(teamIDs(n), true)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		byRound := make(map[int]map[string]struct{})
		for _, p := range pairings {
			used, ok := byRound[p.Round]
			if !ok {
				used = make(map[string]struct{})
				byRound[p.Round] = used
			}
			for _, id := range []string{p.HomeTeamID, p.AwayTeamID} {
				if _, dup := used[id]; dup {
					t.Fatalf("n=%d: team %s plays twice in round %d", n, id, p.Round)
				}
				used[id] = struct{}{}
			}
		}

		slots := n
		if slots%2 == 1 {
			slots++
		}
		if got, want := len(byRound), 2*(slots-1); got != want {
			t.Fatalf("n=%d: unexpected round count got=%d want=%d", n, got, want)
		}
		for round, used := range byRound {
			if got, want := len(used), 2*(n/2); got != want {
				t.Fatalf("n=%d round=%d: unexpected team count got=%d want=%d", n, round, got, want)
			}
		}
	}
}

func TestRoundRobin_FourTeamsScenario(t *testing.T) {
	t.Parallel()

	pairings, err := RoundRobin([]string{"A", "B", "C", "D"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairings) != 6 {
		t.Fatalf("unexpected match count got=%d want=6", len(pairings))
	}

	appearances := make(map[string]int)
	for _, p := range pairings {
		appearances[p.HomeTeamID]++
		appearances[p.AwayTeamID]++
		if p.GroupIndex != NoGroup {
			t.Fatalf("round robin pairing should not carry a group: %+v", p)
		}
	}
	for _, id := range []string{"A", "B", "C", "D"} {
		if appearances[id] != 3 {
			t.Fatalf("team %s appears %d times, want 3", id, appearances[id])
		}
	}
}

func TestRoundRobin_Rejections(t *testing.T) {
	t.Parallel()

	if _, err := RoundRobin([]string{"A"}, false); !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("expected ErrNotEnoughTeams, got %v", err)
	}
	if _, err := RoundRobin(nil, true); !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("expected ErrNotEnoughTeams for empty roster, got %v", err)
	}
	if _, err := RoundRobin([]string{"A", "B", "A"}, false); !errors.Is(err, ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}
	if _, err := RoundRobin([]string{"A", " "}, false); !errors.Is(err, ErrEmptyTeamID) {
		t.Fatalf("expected ErrEmptyTeamID, got %v", err)
	}
}

func TestGroupStage_BalancedGroupsAndMatchCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		teams  int
		groups int
		home   bool
	}{
		{teams: 8, groups: 2, home: false},
		{teams: 10, groups: 3, home: false},
		{teams: 11, groups: 4, home: true},
		{teams: 4, groups: 2, home: true},
		{teams: 17, groups: 8, home: false},
	}

	for _, tc := range cases {
		draws, pairings, err := GroupStage(teamIDs(tc.teams), tc.groups, tc.home)
		if err != nil {
			t.Fatalf("teams=%d groups=%d: unexpected error: %v", tc.teams, tc.groups, err)
		}
		if len(draws) != tc.groups {
			t.Fatalf("teams=%d groups=%d: got %d groups", tc.teams, tc.groups, len(draws))
		}

		minSize, maxSize, total := tc.teams, 0, 0
		expected := 0
		groupOf := make(map[string]int)
		for _, d := range draws {
			size := len(d.TeamIDs)
			total += size
			if size < minSize {
				minSize = size
			}
			if size > maxSize {
				maxSize = size
			}
			expected += ExpectedMatches(size, tc.home)
			for _, id := range d.TeamIDs {
				groupOf[id] = d.Index
			}
		}
		if total != tc.teams {
			t.Fatalf("teams=%d groups=%d: partition lost teams got=%d", tc.teams, tc.groups, total)
		}
		if maxSize-minSize > 1 {
			t.Fatalf("teams=%d groups=%d: unbalanced sizes min=%d max=%d", tc.teams, tc.groups, minSize, maxSize)
		}
		if len(pairings) != expected {
			t.Fatalf("teams=%d groups=%d: match count got=%d want=%d", tc.teams, tc.groups, len(pairings), expected)
		}
		if got := ExpectedGroupStageMatches(tc.teams, tc.groups, tc.home); got != expected {
			t.Fatalf("teams=%d groups=%d: ExpectedGroupStageMatches got=%d want=%d", tc.teams, tc.groups, got, expected)
		}
		for _, p := range pairings {
			if groupOf[p.HomeTeamID] != p.GroupIndex || groupOf[p.AwayTeamID] != p.GroupIndex {
				t.Fatalf("pairing crosses groups: %+v", p)
			}
		}
	}
}

func TestGroupStage_RejectsInvalidGroupCount(t *testing.T) {
	t.Parallel()

	if _, _, err := GroupStage(teamIDs(6), 1, false); !errors.Is(err, ErrInvalidGroupSize) {
		t.Fatalf("expected ErrInvalidGroupSize for one group, got %v", err)
	}
	if _, _, err := GroupStage(teamIDs(6), 4, false); !errors.Is(err, ErrInvalidGroupSize) {
		t.Fatalf("expected ErrInvalidGroupSize above team count / 2, got %v", err)
	}
	if _, _, err := GroupStage(teamIDs(1), 2, false); !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("expected ErrNotEnoughTeams, got %v", err)
	}
}

func TestGroupName(t *testing.T) {
	t.Parallel()

	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"}
	for index, want := range cases {
		if got := GroupName(index); got != want {
			t.Fatalf("GroupName(%d) got=%q want=%q", index, got, want)
		}
	}
}
