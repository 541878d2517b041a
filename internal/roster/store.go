// Package roster owns the in-memory player list and mirrors it to a
// key-value slot after every mutation.
package roster

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/kv"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
)

// DefaultKey is the slot the roster is stored under unless configured otherwise.
const DefaultKey = "basketballPlayers"

const (
	opLoad   = "load"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Options configures a Store.
type Options struct {
	Key      string
	Backend  string // label used in logs and metrics
	Logger   *slog.Logger
	Recorder *metrics.Recorder
}

// Store is the authoritative roster. All methods are synchronous and safe
// for concurrent use; each call runs to completion under one lock.
type Store struct {
	mu      sync.Mutex
	slot    kv.Store
	key     string
	backend string
	logger  *slog.Logger
	metrics *metrics.Recorder

	players []players.Player
	nextID  int64
	loaded  bool
}

// New constructs an empty Store over slot. Call Load before serving.
func New(slot kv.Store, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	return &Store{
		slot:    slot,
		key:     opts.Key,
		backend: opts.Backend,
		logger:  opts.Logger,
		metrics: opts.Recorder,
		players: []players.Player{},
		nextID:  1,
	}
}

// Load replaces the in-memory roster with the persisted one. Missing,
// unreadable or malformed data yields an empty roster; no error is returned.
func (s *Store) Load() {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = s.readSlot()
	s.nextID = 1
	for _, p := range s.players {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	s.loaded = true
	s.observe(opLoad, start, nil)
	logging.Info(s.logger, "roster loaded", logging.FieldCount, len(s.players), logging.FieldBackend, s.backend)
}

func (s *Store) readSlot() []players.Player {
	if s.slot == nil {
		return []players.Player{}
	}
	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		logging.Error(s.logger, "roster slot unreadable, starting empty", err, logging.FieldBackend, s.backend)
		return []players.Player{}
	}
	if !ok {
		return []players.Player{}
	}
	list, err := decodeRoster(raw)
	if err != nil {
		logging.Warn(s.logger, "roster slot malformed, starting empty", "error", err, logging.FieldBackend, s.backend)
		return []players.Player{}
	}
	return list
}

// decodeRoster parses the slot text. Records repeating an earlier id are
// dropped so ids stay unique.
func decodeRoster(raw string) ([]players.Player, error) {
	var list []players.Player
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	out := make([]players.Player, 0, len(list))
	seen := make(map[int64]struct{}, len(list))
	for _, p := range list {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// List returns a copy of the roster in insertion order.
func (s *Store) List() []players.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.players)
}

// Len returns the number of players.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// Get returns the player with id if present.
func (s *Store) Get(id int64) (players.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.players[i], true
	}
	return players.Player{}, false
}

// Create validates the form values, appends a new player and persists.
func (s *Store) Create(number, name, position string) (p players.Player, err error) {
	start := time.Now()
	defer func() { s.observe(opCreate, start, err) }()

	in, err := parseInput(number, name, position)
	if err != nil {
		return players.Player{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p = players.Player{
		ID:          s.allocateID(),
		Number:      in.number,
		Name:        in.name,
		Position:    in.position,
		GamesPlayed: 0,
		PointsAvg:   0,
	}
	prev := s.players
	s.players = append(slices.Clone(prev), p)
	if err := s.persistLocked(prev); err != nil {
		return players.Player{}, err
	}
	logging.Info(s.logger, "player created", logging.FieldPlayerID, p.ID, logging.FieldCount, len(s.players))
	return p, nil
}

// Update changes number, name and position of an existing player and
// persists. found is false (with a nil error) when id is unknown.
func (s *Store) Update(id int64, number, name, position string) (p players.Player, found bool, err error) {
	start := time.Now()
	defer func() { s.observe(opUpdate, start, err) }()

	in, err := parseInput(number, name, position)
	if err != nil {
		return players.Player{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		logging.Debug(s.logger, "update skipped, player not found", logging.FieldPlayerID, id)
		return players.Player{}, false, nil
	}

	prev := s.players
	next := slices.Clone(prev)
	next[i].Number = in.number
	next[i].Name = in.name
	next[i].Position = in.position
	s.players = next
	if err := s.persistLocked(prev); err != nil {
		return players.Player{}, true, err
	}
	logging.Info(s.logger, "player updated", logging.FieldPlayerID, id)
	return next[i], true, nil
}

// Delete removes the player with id and persists. It reports false without
// writing when id is unknown. Confirming with the user is the caller's job.
func (s *Store) Delete(id int64) (found bool, err error) {
	start := time.Now()
	defer func() { s.observe(opDelete, start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		logging.Debug(s.logger, "delete skipped, player not found", logging.FieldPlayerID, id)
		return false, nil
	}

	prev := s.players
	s.players = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.persistLocked(prev); err != nil {
		return true, err
	}
	logging.Info(s.logger, "player deleted", logging.FieldPlayerID, id, logging.FieldCount, len(s.players))
	return true, nil
}

// Persist writes the whole roster to the slot.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(s.players)
}

// persistLocked writes s.players; on failure s.players is reset to prev.
func (s *Store) persistLocked(prev []players.Player) error {
	if s.slot == nil {
		s.players = prev
		return fmt.Errorf("%w: %w", ErrPersist, kv.ErrNotConfigured)
	}
	start := time.Now()
	data, err := json.Marshal(s.players)
	if err == nil {
		err = s.slot.Set(s.key, string(data))
	}
	s.metrics.RecordPersist(s.backend, time.Since(start), err)
	if err != nil {
		s.players = prev
		logging.Error(s.logger, "roster persist failed, change rolled back", err, logging.FieldBackend, s.backend)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.metrics.SetRosterSize(len(s.players))
	return nil
}

func (s *Store) allocateID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.players, func(p players.Player) bool { return p.ID == id })
}

func (s *Store) observe(op string, start time.Time, err error) {
	s.metrics.RecordRosterOperation(op, time.Since(start), err)
	if op == opLoad {
		s.metrics.SetRosterSize(len(s.players))
	}
}
