package presence

import (
	"sort"
	"sync"
	"time"

	"github.com/shaswat2031/rungo/internal/capture"
)

// ttl bounds how long a presence entry stays observable without an update.
const ttl = 15 * time.Second

// Active is one participant's live capture state. Ephemeral: it exists only
// in memory and a restart loses it.
type Active struct {
	UserID     string       `json:"userId"`
	Path       capture.Path `json:"path"`
	Color      string       `json:"color,omitempty"`
	LastUpdate int64        `json:"lastUpdate"` // milliseconds since epoch
}

// Store maps each participant to their in-progress path. Expired entries are
// evicted lazily on reads, never returned. One entry per user: writes
// overwrite.
type Store struct {
	mu      sync.Mutex
	entries map[string]Active
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: map[string]Active{},
		now:     time.Now,
	}
}

// Upsert records the caller's live path, or deletes the entry when the caller
// reports it is no longer capturing.
func (s *Store) Upsert(userID string, path capture.Path, capturing bool, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !capturing {
		delete(s.entries, userID)
		return
	}

	s.entries[userID] = Active{
		UserID:     userID,
		Path:       path,
		Color:      color,
		LastUpdate: s.now().UnixMilli(),
	}
}

// ListActive evicts every entry older than the TTL, then returns the rest
// excluding the caller's own.
func (s *Store) ListActive(excludeUserID string) []Active {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()
	out := make([]Active, 0, len(s.entries))
	for id, e := range s.entries {
		if now-e.LastUpdate > ttl.Milliseconds() {
			delete(s.entries, id)
			continue
		}
		if id == excludeUserID {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Len reports how many entries are currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
