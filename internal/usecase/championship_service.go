package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
)

var allowedLogoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type ChampionshipService struct {
	championshipRepo championship.Repository
	teamRepo         team.Repository
	logos            LogoStorage
	idGen            id.Generator
	logger           *logging.Logger
	maxLogoBytes     int64
	now              func() time.Time
}

func NewChampionshipService(
	championshipRepo championship.Repository,
	teamRepo team.Repository,
	logos LogoStorage,
	idGen id.Generator,
	maxLogoBytes int64,
	logger *logging.Logger,
) *ChampionshipService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChampionshipService{
		championshipRepo: championshipRepo,
		teamRepo:         teamRepo,
		logos:            logos,
		idGen:            idGen,
		logger:           logger,
		maxLogoBytes:     maxLogoBytes,
		now:              time.Now,
	}
}

type UpsertChampionshipInput struct {
	Actor          user.Principal
	ChampionshipID string
	Name           string
	Category       string
	StartDate      time.Time
	EndDate        time.Time
	Rules          string
	IsActive       bool
}

func (s *ChampionshipService) List(ctx context.Context) ([]championship.Championship, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.List")
	defer span.End()

	items, err := s.championshipRepo.List(ctx)
	if err != nil {
		return nil, storageErr("list championships", err)
	}
	return items, nil
}

func (s *ChampionshipService) Get(ctx context.Context, championshipID string) (championship.Championship, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Get")
	defer span.End()

	return loadChampionship(ctx, s.championshipRepo, championshipID)
}

// Upsert creates a championship owned by the actor, or updates one the
// actor already organizes.
func (s *ChampionshipService) Upsert(ctx context.Context, input UpsertChampionshipInput) (championship.Championship, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Upsert")
	defer span.End()

	if err := requireActor(input.Actor); err != nil {
		return championship.Championship{}, err
	}

	now := s.now().UTC()
	var item championship.Championship
	if strings.TrimSpace(input.ChampionshipID) == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return championship.Championship{}, fmt.Errorf("generate championship id: %w", err)
		}
		item = championship.Championship{
			ID:          newID,
			OrganizerID: input.Actor.UserID,
			CreatedAt:   now,
		}
	} else {
		existing, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, input.ChampionshipID)
		if err != nil {
			return championship.Championship{}, err
		}
		item = existing
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Category = strings.TrimSpace(input.Category)
	item.StartDate = input.StartDate.UTC()
	item.EndDate = input.EndDate.UTC()
	item.Rules = strings.TrimSpace(input.Rules)
	item.IsActive = input.IsActive
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return championship.Championship{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.championshipRepo.Upsert(ctx, item); err != nil {
		return championship.Championship{}, storageErr("upsert championship", err)
	}

	s.logger.InfoContext(ctx, "championship upserted",
		"championship_id", item.ID,
		"organizer_id", item.OrganizerID,
	)
	return item, nil
}

type UploadLogoInput struct {
	Actor          user.Principal
	ChampionshipID string
	TeamID         string
	ContentType    string
	Body           io.Reader
	Size           int64
}

// UploadChampionshipLogo stores the image and points the championship at it.
func (s *ChampionshipService) UploadChampionshipLogo(ctx context.Context, input UploadLogoInput) (championship.Championship, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.UploadChampionshipLogo")
	defer span.End()

	item, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, input.ChampionshipID)
	if err != nil {
		return championship.Championship{}, err
	}

	url, err := s.storeLogo(ctx, path.Join("championships", item.ID), input)
	if err != nil {
		return championship.Championship{}, err
	}

	item.LogoURL = url
	item.UpdatedAt = s.now().UTC()
	if err := s.championshipRepo.Upsert(ctx, item); err != nil {
		return championship.Championship{}, storageErr("update championship logo", err)
	}
	return item, nil
}

// UploadTeamLogo stores the image for a team of a championship the actor
// organizes.
func (s *ChampionshipService) UploadTeamLogo(ctx context.Context, input UploadLogoInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.UploadTeamLogo")
	defer span.End()

	teamID := strings.TrimSpace(input.TeamID)
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
	if _, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, item.ChampionshipID); err != nil {
		return team.Team{}, err
	}

	url, err := s.storeLogo(ctx, path.Join("teams", item.ID), input)
	if err != nil {
		return team.Team{}, err
	}

	item.LogoURL = url
	item.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Upsert(ctx, item); err != nil {
		return team.Team{}, storageErr("update team logo", err)
	}
	return item, nil
}

func (s *ChampionshipService) storeLogo(ctx context.Context, prefix string, input UploadLogoInput) (string, error) {
	if s.logos == nil {
		return "", fmt.Errorf("%w: logo storage is disabled", ErrDependencyUnavailable)
	}
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := allowedLogoTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported logo content type %q", ErrInvalidInput, input.ContentType)
	}
	if input.Body == nil || input.Size <= 0 {
		return "", fmt.Errorf("%w: logo body is empty", ErrInvalidInput)
	}
	if s.maxLogoBytes > 0 && input.Size > s.maxLogoBytes {
		return "", fmt.Errorf("%w: logo exceeds %d bytes", ErrInvalidInput, s.maxLogoBytes)
	}

	version, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate logo key: %w", err)
	}
	key := path.Join(prefix, version+ext)

	url, err := s.logos.Upload(ctx, key, contentType, input.Body, input.Size)
	if err != nil {
		s.logger.WarnContext(ctx, "logo upload failed", "key", key, "error", err)
		return "", fmt.Errorf("%w: upload logo: %w", ErrDependencyUnavailable, err)
	}
	return url, nil
}
