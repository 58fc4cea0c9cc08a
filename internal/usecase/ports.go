package usecase

import (
	"context"
	"io"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
)

// Transactor runs fn inside one storage transaction. Repositories called
// with the ctx passed to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LogoStorage keeps uploaded images and returns their public URL.
type LogoStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type LiveUpdateKind string

const (
	LiveMatchUpdated  LiveUpdateKind = "match_updated"
	LiveEventRecorded LiveUpdateKind = "event_recorded"
	LiveClockTick     LiveUpdateKind = "clock_tick"
	LiveStatsReset    LiveUpdateKind = "stats_reset"
)

// LiveUpdate is what fans watching a match receive.
type LiveUpdate struct {
	Kind       LiveUpdateKind    `json:"kind"`
	MatchID    string            `json:"match_id"`
	Match      *match.Match      `json:"match,omitempty"`
	Event      *matchevent.Event `json:"event,omitempty"`
	Minute     int               `json:"minute"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// LivePublisher fans updates out. Publish must not block the caller on
// slow subscribers and never fails the operation that produced the update.
type LivePublisher interface {
	Publish(ctx context.Context, update LiveUpdate)
}

type noopTransactor struct{}

func (noopTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, LiveUpdate) {}

// MultiPublisher delivers every update to each publisher in order.
type MultiPublisher []LivePublisher

func (m MultiPublisher) Publish(ctx context.Context, update LiveUpdate) {
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, update)
		}
	}
}

// ClockController drives the live clock of matches in play.
type ClockController interface {
	Sync(m match.Match)
	Stop(matchID string)
}

type noopClock struct{}

func (noopClock) Sync(match.Match) {}
func (noopClock) Stop(string)      {}
