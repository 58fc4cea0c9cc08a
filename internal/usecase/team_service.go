package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/player"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
)

type TeamService struct {
	championshipRepo championship.Repository
	teamRepo         team.Repository
	playerRepo       player.Repository
	idGen            id.Generator
	now              func() time.Time
}

func NewTeamService(
	championshipRepo championship.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
) *TeamService {
	return &TeamService{
		championshipRepo: championshipRepo,
		teamRepo:         teamRepo,
		playerRepo:       playerRepo,
		idGen:            idGen,
		now:              time.Now,
	}
}

type UpsertTeamInput struct {
	Actor          user.Principal
	ChampionshipID string
	TeamID         string
	Name           string
	CoachName      string
	PrimaryColor   string
	SecondaryColor string
}

type UpsertPlayerInput struct {
	Actor        user.Principal
	TeamID       string
	PlayerID     string
	Name         string
	Position     string
	BirthDate    time.Time
	JerseyNumber int
	PhotoURL     string
}

func (s *TeamService) ListByChampionship(ctx context.Context, championshipID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByChampionship")
	defer span.End()

	if _, err := loadChampionship(ctx, s.championshipRepo, championshipID); err != nil {
		return nil, err
	}
	items, err := s.teamRepo.ListByChampionship(ctx, strings.TrimSpace(championshipID))
	if err != nil {
		return nil, storageErr("list teams", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	return s.loadTeam(ctx, teamID)
}

func (s *TeamService) Upsert(ctx context.Context, input UpsertTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Upsert")
	defer span.End()

	now := s.now().UTC()
	var item team.Team
	if strings.TrimSpace(input.TeamID) == "" {
		champ, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, input.ChampionshipID)
		if err != nil {
			return team.Team{}, err
		}
		newID, err := s.idGen.NewID()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate team id: %w", err)
		}
		item = team.Team{ID: newID, ChampionshipID: champ.ID, CreatedAt: now}
	} else {
		existing, err := s.loadTeam(ctx, input.TeamID)
		if err != nil {
			return team.Team{}, err
		}
		if _, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, existing.ChampionshipID); err != nil {
			return team.Team{}, err
		}
		item = existing
	}

	item.Name = strings.TrimSpace(input.Name)
	item.CoachName = strings.TrimSpace(input.CoachName)
	item.PrimaryColor = strings.TrimSpace(input.PrimaryColor)
	item.SecondaryColor = strings.TrimSpace(input.SecondaryColor)
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Upsert(ctx, item); err != nil {
		return team.Team{}, storageErr("upsert team", err)
	}
	return item, nil
}

func (s *TeamService) ListPlayers(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListPlayers")
	defer span.End()

	item, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return nil, storageErr("list players", err)
	}
	return players, nil
}

// UpsertPlayer registers or edits a player. Jersey numbers are unique
// inside a team.
func (s *TeamService) UpsertPlayer(ctx context.Context, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpsertPlayer")
	defer span.End()

	now := s.now().UTC()
	var item player.Player
	if strings.TrimSpace(input.PlayerID) == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		item = player.Player{ID: newID, TeamID: strings.TrimSpace(input.TeamID), CreatedAt: now}
	} else {
		existing, exists, err := s.playerRepo.GetByID(ctx, strings.TrimSpace(input.PlayerID))
		if err != nil {
			return player.Player{}, storageErr("get player", err)
		}
		if !exists {
			return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
		}
		item = existing
	}

	owner, err := s.loadTeam(ctx, item.TeamID)
	if err != nil {
		return player.Player{}, err
	}
	if _, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, owner.ChampionshipID); err != nil {
		return player.Player{}, err
	}

	position, ok := player.NormalizePosition(input.Position)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: invalid position %q", ErrInvalidInput, input.Position)
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Position = position
	item.BirthDate = input.BirthDate.UTC()
	item.JerseyNumber = input.JerseyNumber
	item.PhotoURL = strings.TrimSpace(input.PhotoURL)
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	roster, err := s.playerRepo.ListByTeam(ctx, item.TeamID)
	if err != nil {
		return player.Player{}, storageErr("list players", err)
	}
	for _, mate := range roster {
		if mate.ID != item.ID && mate.JerseyNumber == item.JerseyNumber {
			return player.Player{}, fmt.Errorf("%w: jersey %d already used by player=%s", ErrConflict, item.JerseyNumber, mate.ID)
		}
	}

	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return player.Player{}, storageErr("upsert player", err)
	}
	return item, nil
}

func (s *TeamService) loadTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, storageErr("get team", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}
