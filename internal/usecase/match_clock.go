package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
)

const clockPersistTimeout = 5 * time.Second

type clockRun struct {
	gen    uint64
	cancel context.CancelFunc
}

// MatchClock advances the elapsed minute of every match in play, one
// minute per tick, and persists each step. A failed write is logged and
// the clock keeps running. Each write holds the match's keyed lock, the
// same one transitions and event recording take.
type MatchClock struct {
	matchRepo match.Repository
	locks     *resilience.KeyedMutex
	publisher LivePublisher
	logger    *logging.Logger
	tick      time.Duration
	now       func() time.Time

	mu      sync.Mutex
	running map[string]clockRun
	gen     uint64
	closed  bool
	wg      conc.WaitGroup
}

func NewMatchClock(matchRepo match.Repository, locks *resilience.KeyedMutex, publisher LivePublisher, tick time.Duration, logger *logging.Logger) *MatchClock {
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	if tick <= 0 {
		tick = time.Minute
	}
	return &MatchClock{
		matchRepo: matchRepo,
		locks:     locks,
		publisher: publisher,
		logger:    logger,
		tick:      tick,
		now:       time.Now,
		running:   make(map[string]clockRun),
	}
}

// Sync starts, restarts or stops the clock of m to match its status.
func (c *MatchClock) Sync(m match.Match) {
	if !match.ClockRunning(m.Status) {
		c.Stop(m.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if run, ok := c.running[m.ID]; ok {
		run.cancel()
	}
	c.gen++
	ctx, cancel := context.WithCancel(context.Background())
	run := clockRun{gen: c.gen, cancel: cancel}
	c.running[m.ID] = run

	matchID, from, limit := m.ID, m.ElapsedMinutes, match.ClockCap(m.Status)
	c.wg.Go(func() {
		defer c.release(matchID, run.gen)
		c.run(ctx, matchID, from, limit)
	})
}

func (c *MatchClock) Stop(matchID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if run, ok := c.running[matchID]; ok {
		run.cancel()
		delete(c.running, matchID)
	}
}

// Running reports whether a clock goroutine is active for matchID.
func (c *MatchClock) Running(matchID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.running[matchID]
	return ok
}

// Restore resumes the clock of every match persisted in a running state.
func (c *MatchClock) Restore(ctx context.Context) (int, error) {
	items, err := c.matchRepo.ListByStatus(ctx, match.StatusInProgress, match.StatusSecondHalf)
	if err != nil {
		return 0, storageErr("list live matches", err)
	}
	for _, m := range items {
		c.Sync(m)
	}
	if len(items) > 0 {
		c.logger.InfoContext(ctx, "match clocks restored", "count", len(items))
	}
	return len(items), nil
}

// Close stops every clock and waits for the goroutines to exit.
func (c *MatchClock) Close() {
	c.mu.Lock()
	c.closed = true
	for id, run := range c.running {
		run.cancel()
		delete(c.running, id)
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *MatchClock) run(ctx context.Context, matchID string, minute, limit int) {
	if minute >= limit {
		return
	}
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		minute++
		if !c.persist(ctx, matchID, minute) {
			return
		}
		c.publisher.Publish(ctx, LiveUpdate{
			Kind:       LiveClockTick,
			MatchID:    matchID,
			Minute:     minute,
			OccurredAt: c.now().UTC(),
		})
		if minute >= limit {
			return
		}
	}
}

// persist writes minute unless the run was cancelled while waiting for
// the match lock; a transition that cancelled it has already set the
// elapsed time. It reports whether the run is still current.
func (c *MatchClock) persist(ctx context.Context, matchID string, minute int) bool {
	unlock := c.locks.Lock(matchID)
	defer unlock()
	if ctx.Err() != nil {
		return false
	}

	writeCtx, cancel := context.WithTimeout(ctx, clockPersistTimeout)
	defer cancel()

	if err := c.matchRepo.UpdateElapsed(writeCtx, matchID, minute); err != nil {
		if ctx.Err() != nil {
			return false
		}
		c.logger.Warn("persist match clock failed",
			"match_id", matchID,
			"minute", minute,
			"error", err,
		)
	}
	return true
}

func (c *MatchClock) release(matchID string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if run, ok := c.running[matchID]; ok && run.gen == gen {
		run.cancel()
		delete(c.running, matchID)
	}
}
