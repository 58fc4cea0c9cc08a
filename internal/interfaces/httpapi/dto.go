package httpapi

import (
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/player"
	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

const dateLayout = "2006-01-02"

type upsertChampionshipRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Category  string `json:"category" validate:"omitempty,max=60"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Rules     string `json:"rules" validate:"omitempty,max=4000"`
	IsActive  *bool  `json:"is_active"`
}

type upsertTeamRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	CoachName      string `json:"coach_name" validate:"omitempty,max=120"`
	PrimaryColor   string `json:"primary_color" validate:"omitempty,max=32"`
	SecondaryColor string `json:"secondary_color" validate:"omitempty,max=32"`
}

type upsertPlayerRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	Position     string `json:"position" validate:"required,max=20"`
	BirthDate    string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	JerseyNumber int    `json:"jersey_number" validate:"required,min=1,max=99"`
	PhotoURL     string `json:"photo_url" validate:"omitempty,url,max=500"`
}

type generateFixturesRequest struct {
	Kind           string     `json:"kind" validate:"required,oneof=points groups"`
	HomeAndAway    bool       `json:"home_and_away"`
	NumberOfGroups int        `json:"number_of_groups" validate:"required_if=Kind groups,gte=0"`
	TeamsAdvancing int        `json:"teams_advancing" validate:"gte=0"`
	FirstRoundAt   *time.Time `json:"first_round_at"`
	Shuffle        bool       `json:"shuffle"`
}

type createMatchRequest struct {
	HomeTeamID string    `json:"home_team_id" validate:"required"`
	AwayTeamID string    `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	GroupID    string    `json:"group_id"`
	Round      int       `json:"round" validate:"gte=0"`
	Phase      string    `json:"phase" validate:"required"`
	Venue      string    `json:"venue" validate:"omitempty,max=200"`
	MatchDate  time.Time `json:"match_date" validate:"required"`
}

type updateMatchRequest struct {
	Venue     string     `json:"venue" validate:"omitempty,max=200"`
	MatchDate *time.Time `json:"match_date"`
	Round     int        `json:"round" validate:"gte=0"`
	Phase     string     `json:"phase"`
}

type transitionRequest struct {
	Action string `json:"action" validate:"required,max=20"`
}

type recordEventRequest struct {
	TeamID            string `json:"team_id" validate:"required"`
	PlayerID          string `json:"player_id" validate:"required"`
	Type              string `json:"type" validate:"required,max=40"`
	Minute            *int   `json:"minute" validate:"omitempty,gte=0"`
	SecondaryPlayerID string `json:"secondary_player_id" validate:"omitempty,nefield=PlayerID"`
}

type voteRequest struct {
	Choice string `json:"choice" validate:"required,oneof=home draw away"`
}

type championshipDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Rules       string `json:"rules,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	IsActive    bool   `json:"is_active"`
	OrganizerID string `json:"organizer_id"`
}

type teamDTO struct {
	ID             string `json:"id"`
	ChampionshipID string `json:"championship_id,omitempty"`
	Name           string `json:"name"`
	CoachName      string `json:"coach_name,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

type playerDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"team_id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	BirthDate    string `json:"birth_date,omitempty"`
	JerseyNumber int    `json:"jersey_number"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

type matchDTO struct {
	ID             string    `json:"id"`
	ChampionshipID string    `json:"championship_id"`
	GroupID        string    `json:"group_id,omitempty"`
	Round          int       `json:"round"`
	HomeTeamID     string    `json:"home_team_id"`
	AwayTeamID     string    `json:"away_team_id"`
	Venue          string    `json:"venue,omitempty"`
	MatchDate      time.Time `json:"match_date"`
	Phase          string    `json:"phase"`
	Status         string    `json:"status"`
	ElapsedMinutes int       `json:"elapsed_minutes"`
	HomeScore      int       `json:"home_score"`
	AwayScore      int       `json:"away_score"`
	Generated      bool      `json:"generated"`
	StatsApplied   bool      `json:"stats_applied"`
	Version        int64     `json:"version"`
}

type eventDTO struct {
	ID                string    `json:"id"`
	MatchID           string    `json:"match_id"`
	TeamID            string    `json:"team_id"`
	PlayerID          string    `json:"player_id"`
	Type              string    `json:"type"`
	Minute            int       `json:"minute"`
	SecondaryPlayerID string    `json:"secondary_player_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type recordEventDTO struct {
	Event eventDTO `json:"event"`
	Match matchDTO `json:"match"`
}

type formatDTO struct {
	ChampionshipID string     `json:"championship_id"`
	Kind           string     `json:"kind"`
	HomeAndAway    bool       `json:"home_and_away"`
	NumberOfGroups int        `json:"number_of_groups"`
	TeamsPerGroup  int        `json:"teams_per_group"`
	TeamsAdvancing int        `json:"teams_advancing"`
	Groups         []groupDTO `json:"groups"`
}

type groupDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position int      `json:"position"`
	TeamIDs  []string `json:"team_ids"`
}

type generateFixturesDTO struct {
	Format  formatDTO  `json:"format"`
	Matches []matchDTO `json:"matches"`
	Removed int        `json:"removed"`
}

type standingRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	GroupID        string `json:"group_id,omitempty"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	YellowCards    int    `json:"yellow_cards"`
	RedCards       int    `json:"red_cards"`
}

type standingsTableDTO struct {
	GroupID   string           `json:"group_id,omitempty"`
	GroupName string           `json:"group_name,omitempty"`
	Rows      []standingRowDTO `json:"rows"`
}

type standingsDTO struct {
	ChampionshipID string              `json:"championship_id"`
	Kind           string              `json:"kind,omitempty"`
	Tables         []standingsTableDTO `json:"tables"`
}

type playerStatDTO struct {
	PlayerID      string `json:"player_id"`
	TeamID        string `json:"team_id"`
	MatchesPlayed int    `json:"matches_played"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
}

type predictionDTO struct {
	MatchID        string `json:"match_id"`
	TotalVotes     int    `json:"total_votes"`
	HomePercentage int    `json:"home_percentage"`
	DrawPercentage int    `json:"draw_percentage"`
	AwayPercentage int    `json:"away_percentage"`
}

type resetDTO struct {
	ChampionshipID string `json:"championship_id"`
	MatchesReset   int    `json:"matches_reset"`
}

func formatDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(dateLayout)
}

func championshipToDTO(v championship.Championship) championshipDTO {
	return championshipDTO{
		ID:          v.ID,
		Name:        v.Name,
		Category:    v.Category,
		StartDate:   formatDate(v.StartDate),
		EndDate:     formatDate(v.EndDate),
		Rules:       v.Rules,
		LogoURL:     v.LogoURL,
		IsActive:    v.IsActive,
		OrganizerID: v.OrganizerID,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:             v.ID,
		ChampionshipID: v.ChampionshipID,
		Name:           v.Name,
		CoachName:      v.CoachName,
		LogoURL:        v.LogoURL,
		PrimaryColor:   v.PrimaryColor,
		SecondaryColor: v.SecondaryColor,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		Name:         v.Name,
		Position:     string(v.Position),
		BirthDate:    formatDate(v.BirthDate),
		JerseyNumber: v.JerseyNumber,
		PhotoURL:     v.PhotoURL,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:             v.ID,
		ChampionshipID: v.ChampionshipID,
		GroupID:        v.GroupID,
		Round:          v.Round,
		HomeTeamID:     v.HomeTeamID,
		AwayTeamID:     v.AwayTeamID,
		Venue:          v.Venue,
		MatchDate:      v.MatchDate,
		Phase:          string(v.Phase),
		Status:         string(v.Status),
		ElapsedMinutes: v.ElapsedMinutes,
		HomeScore:      v.HomeScore,
		AwayScore:      v.AwayScore,
		Generated:      v.Generated,
		StatsApplied:   v.StatsApplied,
		Version:        v.Version,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func eventToDTO(v matchevent.Event) eventDTO {
	return eventDTO{
		ID:                v.ID,
		MatchID:           v.MatchID,
		TeamID:            v.TeamID,
		PlayerID:          v.PlayerID,
		Type:              string(v.Type),
		Minute:            v.Minute,
		SecondaryPlayerID: v.SecondaryPlayerID,
		CreatedAt:         v.CreatedAt,
	}
}

func formatToDTO(v tournament.Format, groups []tournament.Group) formatDTO {
	out := formatDTO{
		ChampionshipID: v.ChampionshipID,
		Kind:           string(v.Kind),
		HomeAndAway:    v.HomeAndAway,
		NumberOfGroups: v.NumberOfGroups,
		TeamsPerGroup:  v.TeamsPerGroup,
		TeamsAdvancing: v.TeamsAdvancing,
		Groups:         make([]groupDTO, 0, len(groups)),
	}
	for _, g := range groups {
		out.Groups = append(out.Groups, groupDTO{
			ID:       g.ID,
			Name:     g.Name,
			Position: g.Position,
			TeamIDs:  append([]string(nil), g.TeamIDs...),
		})
	}
	return out
}

func standingRowToDTO(v standing.Row) standingRowDTO {
	return standingRowDTO{
		Position:       v.Position,
		TeamID:         v.TeamID,
		GroupID:        v.GroupID,
		Played:         v.Played,
		Wins:           v.Wins,
		Draws:          v.Draws,
		Losses:         v.Losses,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
		YellowCards:    v.YellowCards,
		RedCards:       v.RedCards,
	}
}

func overviewToDTO(v usecase.StandingsOverview) standingsDTO {
	out := standingsDTO{
		ChampionshipID: v.ChampionshipID,
		Kind:           string(v.Kind),
		Tables:         make([]standingsTableDTO, 0, len(v.Tables)),
	}
	for _, table := range v.Tables {
		rows := make([]standingRowDTO, 0, len(table.Rows))
		for _, entry := range table.Rows {
			row := standingRowToDTO(entry.Row)
			row.TeamName = entry.TeamName
			row.LogoURL = entry.LogoURL
			rows = append(rows, row)
		}
		out.Tables = append(out.Tables, standingsTableDTO{
			GroupID:   table.GroupID,
			GroupName: table.GroupName,
			Rows:      rows,
		})
	}
	return out
}

func playerStatToDTO(v playerstat.Stat) playerStatDTO {
	return playerStatDTO{
		PlayerID:      v.PlayerID,
		TeamID:        v.TeamID,
		MatchesPlayed: v.MatchesPlayed,
		Goals:         v.Goals,
		Assists:       v.Assists,
		YellowCards:   v.YellowCards,
		RedCards:      v.RedCards,
		MinutesPlayed: v.MinutesPlayed,
	}
}

func predictionToDTO(v prediction.Stats) predictionDTO {
	return predictionDTO{
		MatchID:        v.MatchID,
		TotalVotes:     v.TotalVotes,
		HomePercentage: v.HomePercent,
		DrawPercentage: v.DrawPercent,
		AwayPercentage: v.AwayPercent,
	}
}
