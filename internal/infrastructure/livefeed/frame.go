// Package livefeed turns committed match changes into the JSON frames sent
// to websocket subscribers and webhook receivers.
package livefeed

import (
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

type MatchFrame struct {
	ID             string `json:"id"`
	ChampionshipID string `json:"championship_id"`
	GroupID        string `json:"group_id,omitempty"`
	Round          int    `json:"round"`
	HomeTeamID     string `json:"home_team_id"`
	AwayTeamID     string `json:"away_team_id"`
	Status         string `json:"status"`
	Phase          string `json:"phase"`
	ElapsedMinutes int    `json:"elapsed_minutes"`
	HomeScore      int    `json:"home_score"`
	AwayScore      int    `json:"away_score"`
	Version        int64  `json:"version"`
}

type EventFrame struct {
	ID                string `json:"id"`
	TeamID            string `json:"team_id"`
	PlayerID          string `json:"player_id"`
	Type              string `json:"type"`
	Minute            int    `json:"minute"`
	SecondaryPlayerID string `json:"secondary_player_id,omitempty"`
}

type Frame struct {
	Type       string      `json:"type"`
	MatchID    string      `json:"match_id"`
	Minute     int         `json:"minute"`
	Match      *MatchFrame `json:"match,omitempty"`
	Event      *EventFrame `json:"event,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewFrame(update usecase.LiveUpdate) Frame {
	out := Frame{
		Type:       string(update.Kind),
		MatchID:    update.MatchID,
		Minute:     update.Minute,
		OccurredAt: update.OccurredAt.UTC(),
	}
	if update.Match != nil {
		out.Match = matchFrame(*update.Match)
	}
	if update.Event != nil {
		out.Event = eventFrame(*update.Event)
	}
	return out
}

// Encode marshals the frame for update.
func Encode(update usecase.LiveUpdate) ([]byte, error) {
	return sonic.Marshal(NewFrame(update))
}

func matchFrame(m match.Match) *MatchFrame {
	return &MatchFrame{
		ID:             m.ID,
		ChampionshipID: m.ChampionshipID,
		GroupID:        m.GroupID,
		Round:          m.Round,
		HomeTeamID:     m.HomeTeamID,
		AwayTeamID:     m.AwayTeamID,
		Status:         string(m.Status),
		Phase:          string(m.Phase),
		ElapsedMinutes: m.ElapsedMinutes,
		HomeScore:      m.HomeScore,
		AwayScore:      m.AwayScore,
		Version:        m.Version,
	}
}

func eventFrame(e matchevent.Event) *EventFrame {
	return &EventFrame{
		ID:                e.ID,
		TeamID:            e.TeamID,
		PlayerID:          e.PlayerID,
		Type:              string(e.Type),
		Minute:            e.Minute,
		SecondaryPlayerID: e.SecondaryPlayerID,
	}
}
