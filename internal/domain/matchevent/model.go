package matchevent

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeGoal         Type = "goal"
	TypeAssist       Type = "assist"
	TypeYellowCard   Type = "yellow_card"
	TypeRedCard      Type = "red_card"
	TypeSubstitution Type = "substitution"
)

var ErrSameSecondaryPlayer = errors.New("secondary player must differ from the primary player")

// Event is an immutable record of something that happened in a match at a
// given minute. SecondaryPlayerID is the assisting player for goals and the
// player leaving the pitch for substitutions.
type Event struct {
	ID                string
	MatchID           string
	TeamID            string
	PlayerID          string
	Type              Type
	Minute            int
	SecondaryPlayerID string
	CreatedAt         time.Time
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(e.MatchID) == "" {
		return fmt.Errorf("event match id is required")
	}
	if strings.TrimSpace(e.TeamID) == "" {
		return fmt.Errorf("event team id is required")
	}
	if strings.TrimSpace(e.PlayerID) == "" {
		return fmt.Errorf("event player id is required")
	}
	if _, err := ParseType(string(e.Type)); err != nil {
		return err
	}
	if e.Minute < 0 {
		return fmt.Errorf("event minute cannot be negative")
	}
	if e.SecondaryPlayerID != "" && e.SecondaryPlayerID == e.PlayerID {
		return ErrSameSecondaryPlayer
	}
	if e.SecondaryPlayerID != "" && !e.Type.AllowsSecondary() {
		return fmt.Errorf("event type %s does not take a secondary player", e.Type)
	}

	return nil
}

// AllowsSecondary reports whether the type carries a secondary player.
func (t Type) AllowsSecondary() bool {
	return t == TypeGoal || t == TypeSubstitution
}

// ParseType accepts canonical names plus the Portuguese labels used by
// imported scoresheets.
func ParseType(raw string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "goal", "gol":
		return TypeGoal, nil
	case "assist", "assistência", "assistencia":
		return TypeAssist, nil
	case "yellow_card", "cartão amarelo", "cartao amarelo":
		return TypeYellowCard, nil
	case "red_card", "cartão vermelho", "cartao vermelho":
		return TypeRedCard, nil
	case "substitution", "substituição", "substituicao":
		return TypeSubstitution, nil
	default:
		return "", fmt.Errorf("unknown event type: %q", raw)
	}
}
