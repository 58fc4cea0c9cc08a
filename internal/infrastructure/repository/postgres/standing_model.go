package postgres

import (
	"database/sql"
	"time"
)

type standingTableModel struct {
	ChampionshipID string         `db:"championship_public_id"`
	GroupID        sql.NullString `db:"group_public_id"`
	TeamID         string         `db:"team_public_id"`
	Position       int            `db:"position"`
	Played         int            `db:"played"`
	Wins           int            `db:"wins"`
	Draws          int            `db:"draws"`
	Losses         int            `db:"losses"`
	GoalsFor       int            `db:"goals_for"`
	GoalsAgainst   int            `db:"goals_against"`
	GoalDifference int            `db:"goal_difference"`
	Points         int            `db:"points"`
	YellowCards    int            `db:"yellow_cards"`
	RedCards       int            `db:"red_cards"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type standingInsertModel struct {
	ChampionshipID string         `db:"championship_public_id"`
	GroupID        sql.NullString `db:"group_public_id"`
	TeamID         string         `db:"team_public_id"`
	Position       int            `db:"position"`
	Played         int            `db:"played"`
	Wins           int            `db:"wins"`
	Draws          int            `db:"draws"`
	Losses         int            `db:"losses"`
	GoalsFor       int            `db:"goals_for"`
	GoalsAgainst   int            `db:"goals_against"`
	GoalDifference int            `db:"goal_difference"`
	Points         int            `db:"points"`
	YellowCards    int            `db:"yellow_cards"`
	RedCards       int            `db:"red_cards"`
}
