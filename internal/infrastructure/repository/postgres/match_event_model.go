package postgres

import (
	"database/sql"
	"time"
)

type matchEventTableModel struct {
	ID                int64          `db:"id"`
	PublicID          string         `db:"public_id"`
	MatchID           string         `db:"match_public_id"`
	TeamID            string         `db:"team_public_id"`
	PlayerID          string         `db:"player_public_id"`
	EventType         string         `db:"event_type"`
	Minute            int            `db:"minute"`
	SecondaryPlayerID sql.NullString `db:"secondary_player_public_id"`
	CreatedAt         time.Time      `db:"created_at"`
}

type matchEventInsertModel struct {
	PublicID          string         `db:"public_id"`
	MatchID           string         `db:"match_public_id"`
	TeamID            string         `db:"team_public_id"`
	PlayerID          string         `db:"player_public_id"`
	EventType         string         `db:"event_type"`
	Minute            int            `db:"minute"`
	SecondaryPlayerID sql.NullString `db:"secondary_player_public_id"`
	CreatedAt         time.Time      `db:"created_at"`
}
