// Package storage persists the high-score table.
//
// Three backends share the ScoreStore contract: SQLite (the default,
// pure-Go modernc.org/sqlite driver), a CSV file in the classic
// name,score,lines,level layout, and Redis for servers that share a
// leaderboard across hosts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultTopN is the number of entries kept when Options.TopN is unset.
const DefaultTopN = 10

// Name limits applied by NormalizeName.
const (
	MaxNameLen  = 12
	DefaultName = "PLAYER"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// Entry is one row of the high-score table.
type Entry struct {
	Name      string
	Score     int
	Lines     int
	Level     int
	CreatedAt time.Time // Zero when the backend does not record it
}

// Stats summarizes a table.
type Stats struct {
	Count int
	Best  int
}

// ScoreStore is a bounded high-score table ordered by score descending.
// Equal scores keep insertion order.
type ScoreStore interface {
	// Load returns the current table, best first.
	Load(ctx context.Context) ([]Entry, error)

	// Add inserts an entry, drops everything past the top N and returns
	// the resulting table.
	Add(ctx context.Context, e Entry) ([]Entry, error)

	// Stats returns the entry count and best score.
	Stats(ctx context.Context) (Stats, error)

	Close() error
}

// Backend names accepted by Open.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendCSV    Backend = "csv"
	BackendRedis  Backend = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend  Backend
	Path     string // SQLite database or CSV file
	RedisURL string
	TopN     int
}

// Open creates the store described by opts.
func Open(ctx context.Context, opts Options) (ScoreStore, error) {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	switch opts.Backend {
	case "", BackendSQLite:
		return OpenSQLite(opts.Path, topN)
	case BackendCSV:
		return OpenCSV(opts.Path, topN)
	case BackendRedis:
		cfg := DefaultRedisConfig()
		if opts.RedisURL != "" {
			cfg.URL = opts.RedisURL
		}
		cfg.TopN = topN
		return NewRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// NormalizeName trims a player name, caps it at MaxNameLen runes and
// substitutes DefaultName for an empty result.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLen {
		name = strings.TrimSpace(string(r[:MaxNameLen]))
	}
	if name == "" {
		return DefaultName
	}
	return name
}

// Rank returns the 1-based position a score would take in entries.
// Ties go after existing entries.
func Rank(entries []Entry, score int) int {
	for i, e := range entries {
		if score > e.Score {
			return i + 1
		}
	}
	return len(entries) + 1
}

// Qualifies reports whether a score would make a table of size topN.
func Qualifies(entries []Entry, score, topN int) bool {
	return Rank(entries, score) <= topN
}

// insertTop adds e to entries, sorts best first and truncates to topN.
func insertTop(entries []Entry, e Entry, topN int) []Entry {
	out := append(entries[:len(entries):len(entries)], e)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func statsOf(entries []Entry) Stats {
	s := Stats{Count: len(entries)}
	for _, e := range entries {
		s.Best = max(s.Best, e.Score)
	}
	return s
}

// expandPath resolves a leading ~ and creates the parent directory.
func expandPath(path string) (string, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return path, nil
}

// coerceInt parses a number, treating anything malformed as zero.
func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// coerceValue converts a driver value to an int. SQLite columns keep
// whatever type was written, so text and reals are accepted too.
func coerceValue(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		return coerceInt(n)
	case []byte:
		return coerceInt(string(n))
	}
	return 0
}
