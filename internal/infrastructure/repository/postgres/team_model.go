package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	ChampionshipID sql.NullString `db:"championship_public_id"`
	Name           string         `db:"name"`
	CoachName      string         `db:"coach_name"`
	LogoURL        sql.NullString `db:"logo_url"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID       string         `db:"public_id"`
	ChampionshipID sql.NullString `db:"championship_public_id"`
	Name           string         `db:"name"`
	CoachName      string         `db:"coach_name"`
	LogoURL        sql.NullString `db:"logo_url"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
}
