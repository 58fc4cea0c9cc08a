package player

import (
	"fmt"
	"strings"
	"time"
)

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

const (
	MinJerseyNumber = 1
	MaxJerseyNumber = 99
)

// Player is an athlete on a team roster.
type Player struct {
	ID           string
	TeamID       string
	Name         string
	Position     Position
	BirthDate    time.Time
	JerseyNumber int
	PhotoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.JerseyNumber < MinJerseyNumber || p.JerseyNumber > MaxJerseyNumber {
		return fmt.Errorf("jersey number must be between %d and %d", MinJerseyNumber, MaxJerseyNumber)
	}

	return nil
}

// NormalizePosition maps loose position labels to a Position.
func NormalizePosition(raw string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GK", "GOALKEEPER", "GOLEIRO":
		return PositionGoalkeeper, true
	case "DEF", "DEFENDER", "ZAGUEIRO", "LATERAL":
		return PositionDefender, true
	case "MID", "MIDFIELDER", "MEIA", "VOLANTE":
		return PositionMidfielder, true
	case "FWD", "FORWARD", "ATACANTE":
		return PositionForward, true
	default:
		return "", false
	}
}
