package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	TeamID       string         `db:"team_public_id"`
	Name         string         `db:"name"`
	Position     string         `db:"position"`
	BirthDate    *time.Time     `db:"birth_date"`
	JerseyNumber int            `db:"jersey_number"`
	PhotoURL     sql.NullString `db:"photo_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID     string         `db:"public_id"`
	TeamID       string         `db:"team_public_id"`
	Name         string         `db:"name"`
	Position     string         `db:"position"`
	BirthDate    *time.Time     `db:"birth_date"`
	JerseyNumber int            `db:"jersey_number"`
	PhotoURL     sql.NullString `db:"photo_url"`
}
