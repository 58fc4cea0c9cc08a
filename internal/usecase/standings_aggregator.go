package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
)

// StandingsAggregator folds one finished match into the team and player
// tables. Callers run it inside the transaction that flips StatsApplied.
type StandingsAggregator struct {
	standingRepo standing.Repository
	statRepo     playerstat.Repository
	eventRepo    matchevent.Repository
	now          func() time.Time
}

func NewStandingsAggregator(
	standingRepo standing.Repository,
	statRepo playerstat.Repository,
	eventRepo matchevent.Repository,
) *StandingsAggregator {
	return &StandingsAggregator{
		standingRepo: standingRepo,
		statRepo:     statRepo,
		eventRepo:    eventRepo,
		now:          time.Now,
	}
}

// Apply adds the final score and events of m. It does not look at or
// change m.StatsApplied.
func (a *StandingsAggregator) Apply(ctx context.Context, m match.Match) error {
	return a.fold(ctx, m, 1)
}

// Revert removes a previously applied match.
func (a *StandingsAggregator) Revert(ctx context.Context, m match.Match) error {
	return a.fold(ctx, m, -1)
}

func (a *StandingsAggregator) fold(ctx context.Context, m match.Match, sign int) error {
	events, err := a.eventRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list match events: %w", err)
	}
	now := a.now().UTC()

	homeDelta, awayDelta := standing.MatchDeltas(m.HomeTeamID, m.AwayTeamID, m.HomeScore, m.AwayScore)
	for _, e := range events {
		target := &awayDelta
		if e.TeamID == m.HomeTeamID {
			target = &homeDelta
		}
		switch e.Type {
		case matchevent.TypeYellowCard:
			target.YellowCards++
		case matchevent.TypeRedCard:
			target.RedCards++
		}
	}

	rows := make([]standing.Row, 0, 2)
	for _, delta := range []standing.Delta{homeDelta, awayDelta} {
		row, exists, err := a.standingRepo.Get(ctx, m.ChampionshipID, delta.TeamID)
		if err != nil {
			return fmt.Errorf("get standing team=%s: %w", delta.TeamID, err)
		}
		if !exists {
			row = standing.Row{ChampionshipID: m.ChampionshipID, GroupID: m.GroupID, TeamID: delta.TeamID}
		}
		if sign < 0 {
			delta = delta.Negate()
		}
		row = row.Apply(delta)
		row.UpdatedAt = now
		rows = append(rows, row)
	}
	if err := a.standingRepo.Upsert(ctx, rows...); err != nil {
		return fmt.Errorf("upsert standings: %w", err)
	}

	deltas := playerstat.FromEvents(events, match.FullLength)
	if len(deltas) == 0 {
		return nil
	}
	stats := make([]playerstat.Stat, 0, len(deltas))
	for _, delta := range deltas {
		stat, exists, err := a.statRepo.Get(ctx, m.ChampionshipID, delta.PlayerID)
		if err != nil {
			return fmt.Errorf("get player stat player=%s: %w", delta.PlayerID, err)
		}
		if !exists {
			stat = playerstat.Stat{ChampionshipID: m.ChampionshipID, PlayerID: delta.PlayerID}
		}
		if sign < 0 {
			delta = delta.Negate()
		}
		stat = stat.Apply(delta)
		stat.UpdatedAt = now
		stats = append(stats, stat)
	}
	if err := a.statRepo.Upsert(ctx, stats...); err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}
	return nil
}
