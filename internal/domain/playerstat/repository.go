package playerstat

import "context"

type SortField string

const (
	SortGoals   SortField = "goals"
	SortAssists SortField = "assists"
	SortYellow  SortField = "yellow_cards"
	SortRed     SortField = "red_cards"
	SortMinutes SortField = "minutes_played"
)

// Query filters a championship's player statistics. Limit <= 0 means all.
type Query struct {
	ChampionshipID string
	TeamID         string
	SortBy         SortField
	Limit          int
}

type Repository interface {
	List(ctx context.Context, query Query) ([]Stat, error)
	Get(ctx context.Context, championshipID, playerID string) (Stat, bool, error)
	Upsert(ctx context.Context, items ...Stat) error
	ResetByChampionship(ctx context.Context, championshipID string) error
}

func ParseSortField(raw string) (SortField, bool) {
	switch SortField(raw) {
	case "":
		return SortGoals, true
	case SortGoals, SortAssists, SortYellow, SortRed, SortMinutes:
		return SortField(raw), true
	default:
		return "", false
	}
}

// Value returns the counter a sort field refers to.
func (s Stat) Value(field SortField) int {
	switch field {
	case SortAssists:
		return s.Assists
	case SortYellow:
		return s.YellowCards
	case SortRed:
		return s.RedCards
	case SortMinutes:
		return s.MinutesPlayed
	default:
		return s.Goals
	}
}
