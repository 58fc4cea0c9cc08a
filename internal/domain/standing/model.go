package standing

import (
	"sort"
	"time"
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeDraw Outcome = "draw"
	OutcomeLoss Outcome = "loss"
)

// Row is the cumulative record of one team inside a championship.
// GroupID is empty for league formats.
type Row struct {
	ChampionshipID string
	GroupID        string
	TeamID         string
	Position       int
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	YellowCards    int
	RedCards       int
	UpdatedAt      time.Time
}

// Delta is what one finished match adds to a team row.
type Delta struct {
	TeamID       string
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	YellowCards  int
	RedCards     int
}

func OutcomeFor(goalsFor, goalsAgainst int) Outcome {
	switch {
	case goalsFor > goalsAgainst:
		return OutcomeWin
	case goalsFor < goalsAgainst:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// TeamDelta builds the contribution of a single final score to one side.
func TeamDelta(teamID string, goalsFor, goalsAgainst int) Delta {
	d := Delta{
		TeamID:       teamID,
		Played:       1,
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
	}
	switch OutcomeFor(goalsFor, goalsAgainst) {
	case OutcomeWin:
		d.Wins = 1
		d.Points = PointsWin
	case OutcomeDraw:
		d.Draws = 1
		d.Points = PointsDraw
	default:
		d.Losses = 1
		d.Points = PointsLoss
	}
	return d
}

// MatchDeltas returns the home and away contributions of a final score.
func MatchDeltas(homeTeamID, awayTeamID string, homeScore, awayScore int) (Delta, Delta) {
	return TeamDelta(homeTeamID, homeScore, awayScore), TeamDelta(awayTeamID, awayScore, homeScore)
}

// Negate returns the delta that undoes d.
func (d Delta) Negate() Delta {
	return Delta{
		TeamID:       d.TeamID,
		Played:       -d.Played,
		Wins:         -d.Wins,
		Draws:        -d.Draws,
		Losses:       -d.Losses,
		GoalsFor:     -d.GoalsFor,
		GoalsAgainst: -d.GoalsAgainst,
		Points:       -d.Points,
		YellowCards:  -d.YellowCards,
		RedCards:     -d.RedCards,
	}
}

// Apply adds d to the row and recomputes the goal difference.
func (r Row) Apply(d Delta) Row {
	r.Played += d.Played
	r.Wins += d.Wins
	r.Draws += d.Draws
	r.Losses += d.Losses
	r.GoalsFor += d.GoalsFor
	r.GoalsAgainst += d.GoalsAgainst
	r.Points += d.Points
	r.YellowCards += d.YellowCards
	r.RedCards += d.RedCards
	r.GoalDifference = r.GoalsFor - r.GoalsAgainst
	return r
}

// Zero clears every counter but keeps the identity of the row.
func (r Row) Zero() Row {
	return Row{
		ChampionshipID: r.ChampionshipID,
		GroupID:        r.GroupID,
		TeamID:         r.TeamID,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Less is the ranking order: points, goal difference, goals for, wins,
// fewer red cards, fewer yellow cards, then team id.
func Less(a, b Row) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.RedCards != b.RedCards {
		return a.RedCards < b.RedCards
	}
	if a.YellowCards != b.YellowCards {
		return a.YellowCards < b.YellowCards
	}
	return a.TeamID < b.TeamID
}

// Rank sorts rows in place and assigns 1-based positions. Rows of
// different groups are ranked inside their own group.
func Rank(rows []Row) []Row {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GroupID != rows[j].GroupID {
			return rows[i].GroupID < rows[j].GroupID
		}
		return Less(rows[i], rows[j])
	})

	position := 0
	for i := range rows {
		if i == 0 || rows[i].GroupID != rows[i-1].GroupID {
			position = 0
		}
		position++
		rows[i].Position = position
	}
	return rows
}
