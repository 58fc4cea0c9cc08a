package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/player"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
)

const (
	ChampionshipIDDemo = "copa-varzea-2026"
	OrganizerIDDemo    = "organizer-demo"
)

func SeedChampionships() []championship.Championship {
	start := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	return []championship.Championship{
		{
			ID:          ChampionshipIDDemo,
			Name:        "Copa Várzea 2026",
			Category:    "Amateur",
			StartDate:   start,
			EndDate:     start.AddDate(0, 3, 0),
			Rules:       "Two halves of 45 minutes. Win 3, draw 1, loss 0.",
			IsActive:    true,
			OrganizerID: OrganizerIDDemo,
			CreatedAt:   start.AddDate(0, -1, 0),
			UpdatedAt:   start.AddDate(0, -1, 0),
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-aguias", ChampionshipID: ChampionshipIDDemo, Name: "Águias do Morro", CoachName: "Rita Campos", PrimaryColor: "#1D4ED8", SecondaryColor: "#FFFFFF"},
		{ID: "team-leoes", ChampionshipID: ChampionshipIDDemo, Name: "Leões da Vila", CoachName: "Caio Prado", PrimaryColor: "#F59E0B", SecondaryColor: "#111827"},
		{ID: "team-tubaroes", ChampionshipID: ChampionshipIDDemo, Name: "Tubarões FC", CoachName: "Beatriz Lima", PrimaryColor: "#0F766E", SecondaryColor: "#F3F4F6"},
		{ID: "team-falcoes", ChampionshipID: ChampionshipIDDemo, Name: "Falcões United", CoachName: "Diego Nunes", PrimaryColor: "#B91C1C", SecondaryColor: "#000000"},
	}
}

func SeedPlayers() []player.Player {
	birth := time.Date(1998, 5, 12, 0, 0, 0, 0, time.UTC)
	roster := []struct {
		teamID string
		prefix string
	}{
		{"team-aguias", "agu"},
		{"team-leoes", "leo"},
		{"team-tubaroes", "tub"},
		{"team-falcoes", "fal"},
	}
	positions := []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionForward,
	}

	out := make([]player.Player, 0, len(roster)*len(positions))
	for _, r := range roster {
		for i, pos := range positions {
			out = append(out, player.Player{
				ID:           fmt.Sprintf("%s-%d", r.prefix, i+1),
				TeamID:       r.teamID,
				Name:         fmt.Sprintf("%s %s", r.prefix, pos),
				Position:     pos,
				BirthDate:    birth.AddDate(i, 0, 0),
				JerseyNumber: []int{1, 4, 8, 9}[i],
			})
		}
	}
	return out
}

// Seed loads the demo championship, its teams and rosters.
func Seed(ctx context.Context, db *DB) error {
	champs := NewChampionshipRepository(db)
	teams := NewTeamRepository(db)
	players := NewPlayerRepository(db)

	return db.WithinTx(ctx, func(ctx context.Context) error {
		for _, item := range SeedChampionships() {
			if err := champs.Upsert(ctx, item); err != nil {
				return fmt.Errorf("seed championship %s: %w", item.ID, err)
			}
		}
		for _, item := range SeedTeams() {
			if err := teams.Upsert(ctx, item); err != nil {
				return fmt.Errorf("seed team %s: %w", item.ID, err)
			}
		}
		for _, item := range SeedPlayers() {
			if err := players.Upsert(ctx, item); err != nil {
				return fmt.Errorf("seed player %s: %w", item.ID, err)
			}
		}
		return nil
	})
}
