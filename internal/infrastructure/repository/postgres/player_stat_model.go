package postgres

import "time"

type playerStatTableModel struct {
	ChampionshipID string    `db:"championship_public_id"`
	PlayerID       string    `db:"player_public_id"`
	TeamID         string    `db:"team_public_id"`
	MatchesPlayed  int       `db:"matches_played"`
	Goals          int       `db:"goals"`
	Assists        int       `db:"assists"`
	YellowCards    int       `db:"yellow_cards"`
	RedCards       int       `db:"red_cards"`
	MinutesPlayed  int       `db:"minutes_played"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type playerStatInsertModel struct {
	ChampionshipID string `db:"championship_public_id"`
	PlayerID       string `db:"player_public_id"`
	TeamID         string `db:"team_public_id"`
	MatchesPlayed  int    `db:"matches_played"`
	Goals          int    `db:"goals"`
	Assists        int    `db:"assists"`
	YellowCards    int    `db:"yellow_cards"`
	RedCards       int    `db:"red_cards"`
	MinutesPlayed  int    `db:"minutes_played"`
}
