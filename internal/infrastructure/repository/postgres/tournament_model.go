package postgres

import "time"

type formatTableModel struct {
	ChampionshipID string    `db:"championship_public_id"`
	Kind           string    `db:"kind"`
	HomeAndAway    bool      `db:"home_and_away"`
	NumberOfGroups int       `db:"number_of_groups"`
	TeamsPerGroup  int       `db:"teams_per_group"`
	TeamsAdvancing int       `db:"teams_advancing"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type formatInsertModel struct {
	ChampionshipID string `db:"championship_public_id"`
	Kind           string `db:"kind"`
	HomeAndAway    bool   `db:"home_and_away"`
	NumberOfGroups int    `db:"number_of_groups"`
	TeamsPerGroup  int    `db:"teams_per_group"`
	TeamsAdvancing int    `db:"teams_advancing"`
}

type groupTableModel struct {
	ID             int64  `db:"id"`
	PublicID       string `db:"public_id"`
	ChampionshipID string `db:"championship_public_id"`
	Name           string `db:"name"`
	Position       int    `db:"position"`
}

type groupTeamTableModel struct {
	GroupID string `db:"group_public_id"`
	TeamID  string `db:"team_public_id"`
	Seed    int    `db:"seed"`
}
