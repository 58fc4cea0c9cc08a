package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/id"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

type FixtureDeps struct {
	Championships championship.Repository
	Teams         team.Repository
	Tournaments   tournament.Repository
	Matches       match.Repository
	Events        matchevent.Repository
	Predictions   prediction.Repository
	Standings     standing.Repository
	Aggregator    *StandingsAggregator
	Tx            Transactor
	Clock         ClockController
	Locks         *resilience.KeyedMutex
	IDs           id.Generator
	Logger        *logging.Logger
	RoundInterval time.Duration
}

type FixtureService struct {
	championshipRepo championship.Repository
	teamRepo         team.Repository
	tournamentRepo   tournament.Repository
	matchRepo        match.Repository
	eventRepo        matchevent.Repository
	predictionRepo   prediction.Repository
	standingRepo     standing.Repository
	aggregator       *StandingsAggregator
	tx               Transactor
	clock            ClockController
	locks            *resilience.KeyedMutex
	idGen            id.Generator
	logger           *logging.Logger
	roundInterval    time.Duration
	shuffle          func([]string)
	now              func() time.Time
}

func NewFixtureService(deps FixtureDeps) *FixtureService {
	s := &FixtureService{
		championshipRepo: deps.Championships,
		teamRepo:         deps.Teams,
		tournamentRepo:   deps.Tournaments,
		matchRepo:        deps.Matches,
		eventRepo:        deps.Events,
		predictionRepo:   deps.Predictions,
		standingRepo:     deps.Standings,
		aggregator:       deps.Aggregator,
		tx:               deps.Tx,
		clock:            deps.Clock,
		locks:            deps.Locks,
		idGen:            deps.IDs,
		logger:           deps.Logger,
		roundInterval:    deps.RoundInterval,
		shuffle: func(ids []string) {
			rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		},
		now: time.Now,
	}
	if s.tx == nil {
		s.tx = noopTransactor{}
	}
	if s.clock == nil {
		s.clock = noopClock{}
	}
	if s.locks == nil {
		s.locks = &resilience.KeyedMutex{}
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.roundInterval <= 0 {
		s.roundInterval = 7 * 24 * time.Hour
	}
	return s
}

type GenerateFixturesInput struct {
	Actor          user.Principal
	ChampionshipID string
	Kind           tournament.Kind
	HomeAndAway    bool
	NumberOfGroups int
	TeamsAdvancing int
	// FirstRoundAt defaults to the championship start date.
	FirstRoundAt time.Time
	Shuffle      bool
}

type GenerateFixturesResult struct {
	Format  tournament.Format
	Groups  []tournament.Group
	Matches []match.Match
	Removed int
}

// Generate (re)builds the generated fixtures of a championship in one
// transaction: the format is upserted, groups are redrawn, previously
// generated matches are replaced and the standings table is zeroed.
// Manually created matches are kept. Regeneration is refused once any
// match has left the scheduled state.
func (s *FixtureService) Generate(ctx context.Context, input GenerateFixturesInput) (GenerateFixturesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Generate", championshipAttr(input.ChampionshipID), attribute.String("tournament.kind", string(input.Kind)))
	defer span.End()

	champ, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, input.ChampionshipID)
	if err != nil {
		return GenerateFixturesResult{}, err
	}

	teams, err := s.teamRepo.ListByChampionship(ctx, champ.ID)
	if err != nil {
		return GenerateFixturesResult{}, storageErr("list teams", err)
	}
	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	if input.Shuffle {
		s.shuffle(teamIDs)
	}

	now := s.now().UTC()
	format := tournament.Format{
		ChampionshipID: champ.ID,
		Kind:           input.Kind,
		HomeAndAway:    input.HomeAndAway,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var (
		draws    []tournament.Draw
		pairings []tournament.Pairing
		phase    = match.PhaseLeague
	)
	switch input.Kind {
	case tournament.KindPoints:
		pairings, err = tournament.RoundRobin(teamIDs, input.HomeAndAway)
	case tournament.KindGroups:
		phase = match.PhaseGroup
		format.NumberOfGroups = input.NumberOfGroups
		draws, pairings, err = tournament.GroupStage(teamIDs, input.NumberOfGroups, input.HomeAndAway)
	default:
		return GenerateFixturesResult{}, fmt.Errorf("%w: invalid format kind %q", ErrInvalidInput, input.Kind)
	}
	if err != nil {
		return GenerateFixturesResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if input.Kind == tournament.KindGroups {
		format.TeamsPerGroup = (len(teamIDs) + input.NumberOfGroups - 1) / input.NumberOfGroups
		// Unset advancing defaults to the smallest group size.
		maxAdvancing := len(teamIDs) / input.NumberOfGroups
		format.TeamsAdvancing = input.TeamsAdvancing
		if format.TeamsAdvancing == 0 {
			format.TeamsAdvancing = maxAdvancing
		}
		if format.TeamsAdvancing < 1 || format.TeamsAdvancing > maxAdvancing {
			return GenerateFixturesResult{}, fmt.Errorf("%w: teams advancing must be between 1 and %d", ErrInvalidInput, maxAdvancing)
		}
	}
	if err := format.Validate(); err != nil {
		return GenerateFixturesResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	groups, groupOfTeam, err := s.buildGroups(champ.ID, draws)
	if err != nil {
		return GenerateFixturesResult{}, err
	}

	firstRound := input.FirstRoundAt
	if firstRound.IsZero() {
		firstRound = champ.StartDate
	}
	matches := make([]match.Match, 0, len(pairings))
	for _, p := range pairings {
		matchID, err := s.idGen.NewID()
		if err != nil {
			return GenerateFixturesResult{}, fmt.Errorf("generate match id: %w", err)
		}
		groupID := ""
		if p.GroupIndex != tournament.NoGroup {
			groupID = groups[p.GroupIndex].ID
		}
		matches = append(matches, match.Match{
			ID:             matchID,
			ChampionshipID: champ.ID,
			GroupID:        groupID,
			Round:          p.Round,
			HomeTeamID:     p.HomeTeamID,
			AwayTeamID:     p.AwayTeamID,
			MatchDate:      firstRound.Add(time.Duration(p.Round-1) * s.roundInterval).UTC(),
			Phase:          phase,
			Status:         match.StatusScheduled,
			Generated:      true,
			Version:        1,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	rows := make([]standing.Row, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		rows = append(rows, standing.Row{
			ChampionshipID: champ.ID,
			GroupID:        groupOfTeam[teamID],
			TeamID:         teamID,
			UpdatedAt:      now,
		})
	}

	// Holding every listed match keeps a transition from committing
	// between the scheduled check and the delete below.
	listed, err := s.matchRepo.ListByChampionship(ctx, champ.ID)
	if err != nil {
		return GenerateFixturesResult{}, storageErr("list matches", err)
	}
	unlock := lockMatches(s.locks, listed, championshipLockKey(champ.ID))
	defer unlock()

	removed := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.matchRepo.ListByChampionship(ctx, champ.ID)
		if err != nil {
			return storageErr("list matches", err)
		}
		for _, m := range existing {
			if m.Status != match.StatusScheduled || m.StatsApplied {
				return fmt.Errorf("%w: match=%s is %s; reset statistics before regenerating fixtures", ErrConflict, m.ID, m.Status)
			}
		}
		for _, m := range existing {
			if !m.Generated {
				continue
			}
			if err := s.predictionRepo.DeleteByMatch(ctx, m.ID); err != nil {
				return storageErr("delete predictions", err)
			}
			if err := s.eventRepo.DeleteByMatch(ctx, m.ID); err != nil {
				return storageErr("delete match events", err)
			}
		}

		if prev, exists, err := s.tournamentRepo.GetFormat(ctx, champ.ID); err != nil {
			return storageErr("get format", err)
		} else if exists {
			format.CreatedAt = prev.CreatedAt
		}
		if err := s.tournamentRepo.UpsertFormat(ctx, format); err != nil {
			return storageErr("upsert format", err)
		}
		if err := s.tournamentRepo.ReplaceGroups(ctx, champ.ID, groups); err != nil {
			return storageErr("replace groups", err)
		}
		if removed, err = s.matchRepo.DeleteGenerated(ctx, champ.ID); err != nil {
			return storageErr("delete generated matches", err)
		}
		if err := s.matchRepo.Insert(ctx, matches...); err != nil {
			return storageErr("insert matches", err)
		}
		if err := s.standingRepo.DeleteByChampionship(ctx, champ.ID); err != nil {
			return storageErr("clear standings", err)
		}
		if err := s.standingRepo.Upsert(ctx, rows...); err != nil {
			return storageErr("seed standings", err)
		}
		return nil
	})
	if err != nil {
		return GenerateFixturesResult{}, storageErr("generate fixtures", err)
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		"championship_id", champ.ID,
		"kind", format.Kind,
		"home_and_away", format.HomeAndAway,
		"groups", len(groups),
		"matches", len(matches),
		"removed", removed,
	)

	return GenerateFixturesResult{
		Format:  format,
		Groups:  groups,
		Matches: matches,
		Removed: removed,
	}, nil
}

func (s *FixtureService) buildGroups(championshipID string, draws []tournament.Draw) ([]tournament.Group, map[string]string, error) {
	groups := make([]tournament.Group, 0, len(draws))
	groupOfTeam := make(map[string]string)
	for _, d := range draws {
		groupID, err := s.idGen.NewID()
		if err != nil {
			return nil, nil, fmt.Errorf("generate group id: %w", err)
		}
		groups = append(groups, tournament.Group{
			ID:             groupID,
			ChampionshipID: championshipID,
			Name:           d.Name,
			Position:       d.Index + 1,
			TeamIDs:        d.TeamIDs,
		})
		for _, teamID := range d.TeamIDs {
			groupOfTeam[teamID] = groupID
		}
	}
	return groups, groupOfTeam, nil
}

func (s *FixtureService) GetFormat(ctx context.Context, championshipID string) (tournament.Format, []tournament.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetFormat")
	defer span.End()

	champ, err := loadChampionship(ctx, s.championshipRepo, championshipID)
	if err != nil {
		return tournament.Format{}, nil, err
	}
	format, exists, err := s.tournamentRepo.GetFormat(ctx, champ.ID)
	if err != nil {
		return tournament.Format{}, nil, storageErr("get format", err)
	}
	if !exists {
		return tournament.Format{}, nil, fmt.Errorf("%w: no format for championship=%s", ErrNotFound, champ.ID)
	}
	groups, err := s.tournamentRepo.ListGroups(ctx, champ.ID)
	if err != nil {
		return tournament.Format{}, nil, storageErr("list groups", err)
	}
	return format, groups, nil
}

func (s *FixtureService) ListMatches(ctx context.Context, championshipID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListMatches")
	defer span.End()

	champ, err := loadChampionship(ctx, s.championshipRepo, championshipID)
	if err != nil {
		return nil, err
	}
	items, err := s.matchRepo.ListByChampionship(ctx, champ.ID)
	if err != nil {
		return nil, storageErr("list matches", err)
	}
	return items, nil
}

type CreateMatchInput struct {
	Actor          user.Principal
	ChampionshipID string
	HomeTeamID     string
	AwayTeamID     string
	GroupID        string
	Round          int
	Phase          match.Phase
	Venue          string
	MatchDate      time.Time
}

// CreateMatch schedules a single match by hand, typically a knockout tie.
func (s *FixtureService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.CreateMatch")
	defer span.End()

	champ, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, input.ChampionshipID)
	if err != nil {
		return match.Match{}, err
	}
	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		if err := s.requireTeamInChampionship(ctx, champ.ID, teamID); err != nil {
			return match.Match{}, err
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	now := s.now().UTC()
	item := match.Match{
		ID:             matchID,
		ChampionshipID: champ.ID,
		GroupID:        strings.TrimSpace(input.GroupID),
		Round:          input.Round,
		HomeTeamID:     strings.TrimSpace(input.HomeTeamID),
		AwayTeamID:     strings.TrimSpace(input.AwayTeamID),
		Venue:          strings.TrimSpace(input.Venue),
		MatchDate:      input.MatchDate.UTC(),
		Phase:          input.Phase,
		Status:         match.StatusScheduled,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if item.Phase == "" {
		item.Phase = match.PhaseLeague
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Insert(ctx, item); err != nil {
		return match.Match{}, storageErr("insert match", err)
	}
	return item, nil
}

type UpdateMatchInput struct {
	Actor     user.Principal
	MatchID   string
	Venue     string
	MatchDate time.Time
	Round     int
	Phase     match.Phase
}

// UpdateMatch edits scheduling details of a match that has not kicked off.
func (s *FixtureService) UpdateMatch(ctx context.Context, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateMatch")
	defer span.End()

	unlock := s.locks.Lock(strings.TrimSpace(input.MatchID))
	defer unlock()

	item, err := s.loadMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	if _, err := loadOwnedChampionship(ctx, s.championshipRepo, input.Actor, item.ChampionshipID); err != nil {
		return match.Match{}, err
	}
	if item.Status != match.StatusScheduled {
		return match.Match{}, fmt.Errorf("%w: match=%s already %s", ErrConflict, item.ID, item.Status)
	}

	item.Venue = strings.TrimSpace(input.Venue)
	if !input.MatchDate.IsZero() {
		item.MatchDate = input.MatchDate.UTC()
	}
	if input.Round > 0 {
		item.Round = input.Round
	}
	if input.Phase != "" {
		item.Phase = input.Phase
	}
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	updated, err := s.matchRepo.Update(ctx, item)
	if err != nil {
		return match.Match{}, storageErr("update match", err)
	}
	return updated, nil
}

// DeleteMatch removes a match with its events and votes. Statistics it
// already contributed are reverted first.
func (s *FixtureService) DeleteMatch(ctx context.Context, actor user.Principal, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.DeleteMatch")
	defer span.End()

	unlock := s.locks.Lock(strings.TrimSpace(matchID))
	defer unlock()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if _, err := loadOwnedChampionship(ctx, s.championshipRepo, actor, item.ChampionshipID); err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, exists, err := s.matchRepo.GetByID(ctx, item.ID)
		if err != nil {
			return storageErr("get match", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%s", ErrNotFound, item.ID)
		}
		if current.StatsApplied {
			if err := s.aggregator.Revert(ctx, current); err != nil {
				return storageErr("revert match statistics", err)
			}
		}
		if err := s.eventRepo.DeleteByMatch(ctx, current.ID); err != nil {
			return storageErr("delete match events", err)
		}
		if err := s.predictionRepo.DeleteByMatch(ctx, current.ID); err != nil {
			return storageErr("delete predictions", err)
		}
		if err := s.matchRepo.Delete(ctx, current.ID); err != nil {
			return storageErr("delete match", err)
		}
		return nil
	})
	if err != nil {
		return storageErr("delete match", err)
	}

	s.clock.Stop(item.ID)
	s.logger.InfoContext(ctx, "match deleted", "match_id", item.ID, "stats_reverted", item.StatsApplied)
	return nil
}

func (s *FixtureService) loadMatch(ctx context.Context, matchID string) (match.Match, error) {
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

func (s *FixtureService) requireTeamInChampionship(ctx context.Context, championshipID, teamID string) error {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return storageErr("get team", err)
	}
	if !exists || item.ChampionshipID != championshipID {
		return fmt.Errorf("%w: team=%s is not registered in championship=%s", ErrInvalidInput, teamID, championshipID)
	}
	return nil
}
