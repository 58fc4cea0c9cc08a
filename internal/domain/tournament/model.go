package tournament

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects how fixtures are generated for a championship.
type Kind string

const (
	KindPoints Kind = "points"
	KindGroups Kind = "groups"
)

func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindPoints:
		return KindPoints, true
	case KindGroups:
		return KindGroups, true
	default:
		return "", false
	}
}

// Format is the single generation setup of a championship.
type Format struct {
	ChampionshipID string
	Kind           Kind
	HomeAndAway    bool
	NumberOfGroups int
	TeamsPerGroup  int
	TeamsAdvancing int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (f Format) Validate() error {
	if strings.TrimSpace(f.ChampionshipID) == "" {
		return fmt.Errorf("format championship id is required")
	}
	switch f.Kind {
	case KindPoints:
		if f.NumberOfGroups != 0 {
			return fmt.Errorf("points format cannot define groups")
		}
	case KindGroups:
		if f.NumberOfGroups < MinGroups {
			return fmt.Errorf("groups format requires at least %d groups", MinGroups)
		}
	default:
		return fmt.Errorf("invalid format kind: %s", f.Kind)
	}

	return nil
}

// Group is a named partition of the championship teams.
type Group struct {
	ID             string
	ChampionshipID string
	Name           string
	Position       int
	TeamIDs        []string
}

func (g Group) HasTeam(teamID string) bool {
	for _, id := range g.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
