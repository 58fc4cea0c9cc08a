package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	ChampionshipID string         `db:"championship_public_id"`
	GroupID        sql.NullString `db:"group_public_id"`
	Round          int            `db:"round"`
	HomeTeamID     string         `db:"home_team_public_id"`
	AwayTeamID     string         `db:"away_team_public_id"`
	Venue          sql.NullString `db:"venue"`
	MatchDate      time.Time      `db:"match_date"`
	Phase          string         `db:"phase"`
	Status         string         `db:"status"`
	ElapsedMinutes int            `db:"elapsed_minutes"`
	HomeScore      int            `db:"home_score"`
	AwayScore      int            `db:"away_score"`
	Generated      bool           `db:"generated"`
	StatsApplied   bool           `db:"stats_applied"`
	Version        int64          `db:"version"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

var matchInsertColumns = []string{
	"public_id",
	"championship_public_id",
	"group_public_id",
	"round",
	"home_team_public_id",
	"away_team_public_id",
	"venue",
	"match_date",
	"phase",
	"status",
	"elapsed_minutes",
	"home_score",
	"away_score",
	"generated",
	"stats_applied",
	"version",
}
