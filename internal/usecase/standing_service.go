package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
)

const defaultPlayerStatsLimit = 20

type StandingDeps struct {
	Championships championship.Repository
	Teams         team.Repository
	Tournaments   tournament.Repository
	Matches       match.Repository
	Events        matchevent.Repository
	Standings     standing.Repository
	PlayerStats   playerstat.Repository
	Tx            Transactor
	Clock         ClockController
	Publisher     LivePublisher
	Locks         *resilience.KeyedMutex
	Logger        *logging.Logger
}

type StandingService struct {
	championshipRepo championship.Repository
	teamRepo         team.Repository
	tournamentRepo   tournament.Repository
	matchRepo        match.Repository
	eventRepo        matchevent.Repository
	standingRepo     standing.Repository
	statRepo         playerstat.Repository
	tx               Transactor
	clock            ClockController
	publisher        LivePublisher
	locks            *resilience.KeyedMutex
	logger           *logging.Logger
	now              func() time.Time
}

func NewStandingService(deps StandingDeps) *StandingService {
	s := &StandingService{
		championshipRepo: deps.Championships,
		teamRepo:         deps.Teams,
		tournamentRepo:   deps.Tournaments,
		matchRepo:        deps.Matches,
		eventRepo:        deps.Events,
		standingRepo:     deps.Standings,
		statRepo:         deps.PlayerStats,
		tx:               deps.Tx,
		clock:            deps.Clock,
		publisher:        deps.Publisher,
		locks:            deps.Locks,
		logger:           deps.Logger,
		now:              time.Now,
	}
	if s.tx == nil {
		s.tx = noopTransactor{}
	}
	if s.clock == nil {
		s.clock = noopClock{}
	}
	if s.publisher == nil {
		s.publisher = noopPublisher{}
	}
	if s.locks == nil {
		s.locks = &resilience.KeyedMutex{}
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

// StandingEntry is a ranked row joined with the team it belongs to.
type StandingEntry struct {
	standing.Row
	TeamName string
	LogoURL  string
}

type StandingsTable struct {
	GroupID   string
	GroupName string
	Rows      []StandingEntry
}

// StandingsOverview holds one table for a points format, or one per
// group for a groups format.
type StandingsOverview struct {
	ChampionshipID string
	Kind           tournament.Kind
	Tables         []StandingsTable
}

// ListStandings returns the ranked rows of a championship, restricted to
// groupID when it is set.
func (s *StandingService) ListStandings(ctx context.Context, championshipID, groupID string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListStandings")
	defer span.End()

	champ, err := loadChampionship(ctx, s.championshipRepo, championshipID)
	if err != nil {
		return nil, err
	}

	var rows []standing.Row
	if groupID = strings.TrimSpace(groupID); groupID != "" {
		rows, err = s.standingRepo.ListByGroup(ctx, champ.ID, groupID)
	} else {
		rows, err = s.standingRepo.ListByChampionship(ctx, champ.ID)
	}
	if err != nil {
		return nil, storageErr("list standings", err)
	}
	return standing.Rank(rows), nil
}

// Overview loads format, groups, standings and teams concurrently and
// assembles the ranked tables.
func (s *StandingService) Overview(ctx context.Context, championshipID string) (StandingsOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Overview")
	defer span.End()

	champ, err := loadChampionship(ctx, s.championshipRepo, championshipID)
	if err != nil {
		return StandingsOverview{}, err
	}

	var (
		format    tournament.Format
		hasFormat bool
		groups    []tournament.Group
		rows      []standing.Row
		teams     []team.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		format, hasFormat, err = s.tournamentRepo.GetFormat(gctx, champ.ID)
		return storageErr("get format", err)
	})
	g.Go(func() error {
		var err error
		groups, err = s.tournamentRepo.ListGroups(gctx, champ.ID)
		return storageErr("list groups", err)
	})
	g.Go(func() error {
		var err error
		rows, err = s.standingRepo.ListByChampionship(gctx, champ.ID)
		return storageErr("list standings", err)
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByChampionship(gctx, champ.ID)
		return storageErr("list teams", err)
	})
	if err := g.Wait(); err != nil {
		return StandingsOverview{}, err
	}

	teamsByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	out := StandingsOverview{ChampionshipID: champ.ID, Kind: tournament.KindPoints}
	if hasFormat {
		out.Kind = format.Kind
	}

	ranked := standing.Rank(rows)
	if out.Kind != tournament.KindGroups || len(groups) == 0 {
		out.Tables = []StandingsTable{{Rows: joinTeams(ranked, teamsByID)}}
		return out, nil
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Position < groups[j].Position })
	byGroup := make(map[string][]standing.Row, len(groups))
	for _, row := range ranked {
		byGroup[row.GroupID] = append(byGroup[row.GroupID], row)
	}
	for _, grp := range groups {
		out.Tables = append(out.Tables, StandingsTable{
			GroupID:   grp.ID,
			GroupName: grp.Name,
			Rows:      joinTeams(byGroup[grp.ID], teamsByID),
		})
	}
	return out, nil
}

func joinTeams(rows []standing.Row, teamsByID map[string]team.Team) []StandingEntry {
	out := make([]StandingEntry, 0, len(rows))
	for _, row := range rows {
		t := teamsByID[row.TeamID]
		out = append(out, StandingEntry{Row: row, TeamName: t.Name, LogoURL: t.LogoURL})
	}
	return out
}

type ListPlayerStatsInput struct {
	ChampionshipID string
	TeamID         string
	SortBy         string
	Limit          int
}

// ListPlayerStats returns the top players of a championship by one
// counter.
func (s *StandingService) ListPlayerStats(ctx context.Context, input ListPlayerStatsInput) ([]playerstat.Stat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListPlayerStats")
	defer span.End()

	champ, err := loadChampionship(ctx, s.championshipRepo, input.ChampionshipID)
	if err != nil {
		return nil, err
	}
	field, ok := playerstat.ParseSortField(strings.ToLower(strings.TrimSpace(input.SortBy)))
	if !ok {
		return nil, fmt.Errorf("%w: invalid sort field %q", ErrInvalidInput, input.SortBy)
	}
	limit := input.Limit
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultPlayerStatsLimit
	}

	items, err := s.statRepo.List(ctx, playerstat.Query{
		ChampionshipID: champ.ID,
		TeamID:         strings.TrimSpace(input.TeamID),
		SortBy:         field,
		Limit:          limit,
	})
	if err != nil {
		return nil, storageErr("list player stats", err)
	}
	return items, nil
}

// ResetChampionshipStatistics zeroes the standings and player tables,
// deletes every recorded event and puts every match back to scheduled
// 0-0, all in one transaction.
func (s *StandingService) ResetChampionshipStatistics(ctx context.Context, actor user.Principal, championshipID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ResetChampionshipStatistics")
	defer span.End()

	champ, err := loadOwnedChampionship(ctx, s.championshipRepo, actor, championshipID)
	if err != nil {
		return 0, err
	}

	matches, err := s.matchRepo.ListByChampionship(ctx, champ.ID)
	if err != nil {
		return 0, storageErr("list matches", err)
	}
	unlock := lockMatches(s.locks, matches, championshipLockKey(champ.ID))
	defer unlock()

	var reverted []match.Match
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		reverted = reverted[:0]
		current, err := s.matchRepo.ListByChampionship(ctx, champ.ID)
		if err != nil {
			return storageErr("list matches", err)
		}
		if err := s.eventRepo.DeleteByChampionship(ctx, champ.ID); err != nil {
			return storageErr("delete match events", err)
		}
		now := s.now().UTC()
		for _, m := range current {
			next := m.Reset()
			next.UpdatedAt = now
			updated, err := s.matchRepo.Update(ctx, next)
			if err != nil {
				return storageErr("revert match", err)
			}
			reverted = append(reverted, updated)
		}
		if err := s.standingRepo.ResetByChampionship(ctx, champ.ID); err != nil {
			return storageErr("reset standings", err)
		}
		if err := s.statRepo.ResetByChampionship(ctx, champ.ID); err != nil {
			return storageErr("reset player stats", err)
		}
		return nil
	})
	if err != nil {
		return 0, storageErr("reset statistics", err)
	}

	now := s.now().UTC()
	for i := range reverted {
		m := reverted[i]
		s.clock.Stop(m.ID)
		s.publisher.Publish(ctx, LiveUpdate{
			Kind:       LiveStatsReset,
			MatchID:    m.ID,
			Match:      &m,
			OccurredAt: now,
		})
	}
	s.logger.InfoContext(ctx, "championship statistics reset",
		"championship_id", champ.ID,
		"matches", len(reverted),
	)
	return len(reverted), nil
}
