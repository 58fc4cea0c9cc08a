package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/championship-organizer/internal/domain/championship"
	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/domain/player"
	"github.com/riskibarqy/championship-organizer/internal/domain/playerstat"
	"github.com/riskibarqy/championship-organizer/internal/domain/prediction"
	"github.com/riskibarqy/championship-organizer/internal/domain/standing"
	"github.com/riskibarqy/championship-organizer/internal/domain/team"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
)

type tables struct {
	championships map[string]championship.Championship
	teams         map[string]team.Team
	players       map[string]player.Player
	formats       map[string]tournament.Format
	groups        map[string][]tournament.Group
	matches       map[string]match.Match
	events        map[string]matchevent.Event
	standings     map[rowKey]standing.Row
	stats         map[rowKey]playerstat.Stat
	votes         map[string]prediction.Vote
}

// rowKey addresses a (championship, team) standing or a (championship,
// player) stat.
type rowKey struct {
	championshipID string
	id             string
}

func newTables() tables {
	return tables{
		championships: make(map[string]championship.Championship),
		teams:         make(map[string]team.Team),
		players:       make(map[string]player.Player),
		formats:       make(map[string]tournament.Format),
		groups:        make(map[string][]tournament.Group),
		matches:       make(map[string]match.Match),
		events:        make(map[string]matchevent.Event),
		standings:     make(map[rowKey]standing.Row),
		stats:         make(map[rowKey]playerstat.Stat),
		votes:         make(map[string]prediction.Vote),
	}
}

func (t tables) clone() tables {
	out := tables{
		championships: cloneMap(t.championships),
		teams:         cloneMap(t.teams),
		players:       cloneMap(t.players),
		formats:       cloneMap(t.formats),
		groups:        make(map[string][]tournament.Group, len(t.groups)),
		matches:       cloneMap(t.matches),
		events:        cloneMap(t.events),
		standings:     cloneMap(t.standings),
		stats:         cloneMap(t.stats),
		votes:         cloneMap(t.votes),
	}
	for k, groups := range t.groups {
		out.groups[k] = cloneGroups(groups)
	}
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneGroups(in []tournament.Group) []tournament.Group {
	out := make([]tournament.Group, 0, len(in))
	for _, g := range in {
		g.TeamIDs = slices.Clone(g.TeamIDs)
		out = append(out, g)
	}
	return out
}

type txKey struct{}

// DB is the shared state behind every memory repository. Transactions
// are serialized and roll back to a snapshot on error. Writes outside a
// transaction wait for the running one to finish.
type DB struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	t    tables
}

func NewDB() *DB {
	return &DB{t: newTables()}
}

func (db *DB) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*DB)
	return owner == db
}

// WithinTx runs fn atomically. A nested call joins the outer transaction.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if db.inTx(ctx) {
		return fn(ctx)
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	snapshot := db.t.clone()
	db.mu.RUnlock()

	rollback := func() {
		db.mu.Lock()
		db.t = snapshot
		db.mu.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, db)); err != nil {
		rollback()
		return err
	}
	return nil
}

func (db *DB) read(fn func(t *tables)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(&db.t)
}

func (db *DB) write(ctx context.Context, fn func(t *tables) error) error {
	if !db.inTx(ctx) {
		db.txMu.Lock()
		defer db.txMu.Unlock()
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(&db.t)
}
