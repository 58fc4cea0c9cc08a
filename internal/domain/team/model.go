package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a club registered in at most one championship.
type Team struct {
	ID             string
	ChampionshipID string
	Name           string
	CoachName      string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.CoachName) == "" {
		return fmt.Errorf("team coach name is required")
	}

	return nil
}

// Attached reports whether the team is registered in a championship.
func (t Team) Attached() bool {
	return strings.TrimSpace(t.ChampionshipID) != ""
}
