package testutil

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/kv"
	"github.com/preston-bernstein/nba-roster-service/internal/roster"
)

// ErrSlotDown is returned by FailingSlot.
var ErrSlotDown = errors.New("slot unavailable")

// SamplePlayer returns a minimal player fixture with the provided id.
func SamplePlayer(id int64) players.Player {
	return players.Player{
		ID:          id,
		Number:      23,
		Name:        "Michael Jordan",
		Position:    "SG",
		GamesPlayed: 1072,
		PointsAvg:   30.1,
	}
}

// SeedSlot writes list into slot under key as the persisted JSON array.
func SeedSlot(t *testing.T, slot kv.Store, key string, list ...players.Player) {
	t.Helper()
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("failed to encode roster: %v", err)
	}
	if err := slot.Set(key, string(data)); err != nil {
		t.Fatalf("failed to seed slot: %v", err)
	}
}

// NewRoster returns a loaded roster over an in-memory slot seeded with list.
func NewRoster(t *testing.T, list ...players.Player) (*roster.Store, *kv.MemoryStore) {
	t.Helper()
	slot := kv.NewMemoryStore()
	if len(list) > 0 {
		SeedSlot(t, slot, roster.DefaultKey, list...)
	}
	store := roster.New(slot, roster.Options{Backend: "memory"})
	store.Load()
	return store, slot
}

// FailingSlot reads from an embedded memory slot and fails writes when FailWrites is set.
type FailingSlot struct {
	*kv.MemoryStore
	FailWrites bool
}

// NewFailingSlot returns a FailingSlot that rejects every write.
func NewFailingSlot() *FailingSlot {
	return &FailingSlot{MemoryStore: kv.NewMemoryStore(), FailWrites: true}
}

func (f *FailingSlot) Set(key, value string) error {
	if f.FailWrites {
		return ErrSlotDown
	}
	return f.MemoryStore.Set(key, value)
}
