package favorites

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/i474232898/weather-location-service/internal/gazetteer"
)

const (
	// MaxFavorites bounds the store.
	MaxFavorites = 6
	// MaxAliasLen is the alias length cap, in runes.
	MaxAliasLen = 20

	// StorageKey is the fixed key the whole collection round-trips under.
	StorageKey = "weather-favorites"

	// storageVersion is the persisted envelope version. Unknown versions load
	// as an empty collection, same as corrupt payloads.
	storageVersion = 1
)

// Entry is one user-pinned location. ID is assigned at creation and never
// changes; FullName is unique across the store.
type Entry struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Alias     string    `json:"alias"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	CreatedAt time.Time `json:"createdAt"`
}

// Candidate is the caller-supplied part of a new favorite.
type Candidate struct {
	FullName string
	Alias    string
	Lat      float64
	Lon      float64
}

// KV persists one opaque document under a fixed key. A Load error or missing
// key is treated as an empty collection by the store, never as fatal.
type KV interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

type envelope struct {
	Version   int     `json:"version"`
	Favorites []Entry `json:"favorites"`
}

// Store is the bounded, deduplicated, persisted favorites collection. All
// mutations serialize through one mutex and follow a read-modify-persist
// cycle; reads never touch the KV.
type Store struct {
	mu      sync.Mutex
	kv      KV
	entries []Entry
	now     func() time.Time // override in tests
	newID   func() string
}

// NewStore loads the persisted collection. Corrupt, missing, or
// unknown-version payloads yield an empty store.
func NewStore(kv KV) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
	s.entries = load(kv)
	return s
}

func load(kv KV) []Entry {
	data, err := kv.Load(StorageKey)
	if err != nil || len(data) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("favorites: stored payload unreadable, starting empty: %v", err)
		return nil
	}
	if env.Version != storageVersion {
		log.Printf("favorites: stored payload has version %d, starting empty", env.Version)
		return nil
	}
	return env.Favorites
}

func (s *Store) persist() {
	data, err := json.Marshal(envelope{Version: storageVersion, Favorites: s.entries})
	if err != nil {
		log.Printf("favorites: marshal failed: %v", err)
		return
	}
	if err := s.kv.Save(StorageKey, data); err != nil {
		log.Printf("favorites: persist failed: %v", err)
	}
}

// Add pins a new favorite. It is a silent no-op when the store is at
// capacity or already holds the same full name; callers wanting feedback
// check CanAddMore and IsFavorite first. An empty alias defaults to the
// finest place segment; an overlong alias is truncated to MaxAliasLen runes.
func (s *Store) Add(c Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= MaxFavorites {
		return
	}
	for _, e := range s.entries {
		if e.FullName == c.FullName {
			return
		}
	}

	alias := strings.TrimSpace(c.Alias)
	if alias == "" {
		alias = gazetteer.FinestSegment(c.FullName)
	}
	alias = truncateRunes(alias, MaxAliasLen)

	s.entries = append(s.entries, Entry{
		ID:        s.newID(),
		FullName:  c.FullName,
		Alias:     alias,
		Lat:       c.Lat,
		Lon:       c.Lon,
		CreatedAt: s.now(),
	})
	s.persist()
}

// Remove drops the entry with the given id; no-op when absent.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist()
			return
		}
	}
}

// Rename updates an entry's alias. The alias is trimmed first; an empty
// result, an unchanged alias, an overlong alias, or an unknown id all leave
// the store untouched.
func (s *Store) Rename(id, alias string) {
	alias = strings.TrimSpace(alias)
	if alias == "" || utf8.RuneCountInString(alias) > MaxAliasLen {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		if e.Alias == alias {
			return
		}
		s.entries[i].Alias = alias
		s.persist()
		return
	}
}

// IsFavorite reports whether a place is already pinned.
func (s *Store) IsFavorite(fullName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.FullName == fullName {
			return true
		}
	}
	return false
}

// CanAddMore reports whether the store is below capacity.
func (s *Store) CanAddMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) < MaxFavorites
}

// List returns the entries in pin order.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count reports the number of pinned favorites.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
