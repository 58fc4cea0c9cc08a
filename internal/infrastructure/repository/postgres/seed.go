package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo championship into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM championships WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count championships for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	championships := NewChampionshipRepository(db)
	teams := NewTeamRepository(db)
	players := NewPlayerRepository(db)

	return NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
		for _, c := range memory.SeedChampionships() {
			if err := championships.Upsert(ctx, c); err != nil {
				return fmt.Errorf("seed championship %s: %w", c.ID, err)
			}
		}
		for _, t := range memory.SeedTeams() {
			if err := teams.Upsert(ctx, t); err != nil {
				return fmt.Errorf("seed team %s: %w", t.ID, err)
			}
		}
		for _, p := range memory.SeedPlayers() {
			if err := players.Upsert(ctx, p); err != nil {
				return fmt.Errorf("seed player %s: %w", p.ID, err)
			}
		}
		return nil
	})
}
