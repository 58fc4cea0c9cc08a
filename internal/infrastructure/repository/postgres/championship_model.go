package postgres

import (
	"database/sql"
	"time"
)

type championshipTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     time.Time      `db:"end_date"`
	Rules       sql.NullString `db:"rules"`
	LogoURL     sql.NullString `db:"logo_url"`
	IsActive    bool           `db:"is_active"`
	OrganizerID string         `db:"organizer_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type championshipInsertModel struct {
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     time.Time      `db:"end_date"`
	Rules       sql.NullString `db:"rules"`
	LogoURL     sql.NullString `db:"logo_url"`
	IsActive    bool           `db:"is_active"`
	OrganizerID string         `db:"organizer_id"`
}
