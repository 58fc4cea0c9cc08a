package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
)

// PredictionService collects anonymous fan predictions for a match.
type PredictionService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	idGen          id.Generator
	now            func() time.Time
}

func NewPredictionService(matchRepo match.Repository, predictionRepo prediction.Repository, idGen id.Generator) *PredictionService {
	return &PredictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		idGen:          idGen,
		now:            time.Now,
	}
}

type VoteInput struct {
	MatchID string
	Choice  string
	// ClientAddr is the caller address; only its hash is stored.
	ClientAddr string
}

// Vote records one prediction per client and match and returns the
// updated summary.
func (s *PredictionService) Vote(ctx context.Context, input VoteInput) (prediction.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Vote")
	defer span.End()

	item, err := s.loadMatch(ctx, input.MatchID)
	if err != nil {
		return prediction.Stats{}, err
	}
	if item.Status == match.StatusFinished {
		return prediction.Stats{}, fmt.Errorf("%w: match=%s is finished", ErrConflict, item.ID)
	}
	choice, err := prediction.ParseChoice(input.Choice)
	if err != nil {
		return prediction.Stats{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	addr := strings.TrimSpace(input.ClientAddr)
	if addr == "" {
		return prediction.Stats{}, fmt.Errorf("%w: client address is required", ErrInvalidInput)
	}

	voteID, err := s.idGen.NewID()
	if err != nil {
		return prediction.Stats{}, fmt.Errorf("generate vote id: %w", err)
	}
	vote := prediction.Vote{
		ID:        voteID,
		MatchID:   item.ID,
		Choice:    choice,
		VoterKey:  prediction.VoterKey(item.ID, addr),
		CreatedAt: s.now().UTC(),
	}
	if err := vote.Validate(); err != nil {
		return prediction.Stats{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.predictionRepo.Insert(ctx, vote); err != nil {
		return prediction.Stats{}, storageErr("insert vote", err)
	}

	return s.summary(ctx, item.ID)
}

func (s *PredictionService) Stats(ctx context.Context, matchID string) (prediction.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Stats")
	defer span.End()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return prediction.Stats{}, err
	}
	return s.summary(ctx, item.ID)
}

func (s *PredictionService) summary(ctx context.Context, matchID string) (prediction.Stats, error) {
	counts, err := s.predictionRepo.CountByMatch(ctx, matchID)
	if err != nil {
		return prediction.Stats{}, storageErr("count votes", err)
	}
	return prediction.Summarize(matchID, counts), nil
}

func (s *PredictionService) loadMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, storageErr("get match", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}
