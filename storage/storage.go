package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// DefaultRating is the opponent rating used until the player picks one.
const DefaultRating = 1200

// Preferences are the settings the Play view remembers.
type Preferences struct {
	Rating int `json:"rating"`
	// PlayerColor is "white" or "black".
	PlayerColor string    `json:"player_color"`
	Backend     string    `json:"backend"`
	LastPlayed  time.Time `json:"last_played"`
}

func DefaultPreferences() *Preferences {
	return &Preferences{
		Rating:      DefaultRating,
		PlayerColor: "white",
		Backend:     "notnil",
	}
}

// Stats are aggregate results of finished games. Individual games are not
// kept.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`
	// WinsByStrategy is keyed by the opponent's strategy name, e.g. "depth 2".
	WinsByStrategy map[string]int `json:"wins_by_strategy"`
	CurrentStreak  int            `json:"current_streak"`
	LongestStreak  int            `json:"longest_streak"`
}

func NewStats() *Stats {
	return &Stats{WinsByStrategy: make(map[string]int)}
}

// WinRate is the share of games won, as a percentage.
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// Result describes one finished game from the player's side.
type Result struct {
	Won      bool
	Draw     bool
	Strategy string
}

// Storage wraps a BadgerDB holding JSON values under fixed keys.
type Storage struct {
	db *badger.DB
}

// Open opens the database below dataDir, or below DataDir() when dataDir is
// empty.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences stamps prefs.LastPlayed and stores them.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences returns the stored preferences, or the defaults when none
// were saved.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	return prefs, s.get(keyPreferences, prefs)
}

func (s *Storage) SaveStats(stats *Stats) error {
	return s.put(keyStats, stats)
}

// LoadStats returns the stored statistics, or empty ones.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()
	if err := s.get(keyStats, stats); err != nil {
		return stats, err
	}
	if stats.WinsByStrategy == nil {
		stats.WinsByStrategy = make(map[string]int)
	}
	return stats, nil
}

// RecordGame folds a finished game into the statistics.
func (s *Storage) RecordGame(result Result) (*Stats, error) {
	stats, err := s.LoadStats()
	if err != nil {
		return nil, err
	}

	stats.GamesPlayed++
	switch {
	case result.Draw:
		stats.Draws++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		stats.LongestStreak = max(stats.LongestStreak, stats.CurrentStreak)
		stats.WinsByStrategy[result.Strategy]++
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return stats, s.SaveStats(stats)
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get leaves v untouched when key is missing.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
