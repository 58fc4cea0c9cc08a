package postgres

import "time"

type predictionInsertModel struct {
	PublicID  string    `db:"public_id"`
	MatchID   string    `db:"match_public_id"`
	Choice    string    `db:"choice"`
	VoterKey  string    `db:"voter_key"`
	CreatedAt time.Time `db:"created_at"`
}

type predictionCountModel struct {
	Choice string `db:"choice"`
	Votes  int    `db:"votes"`
}
