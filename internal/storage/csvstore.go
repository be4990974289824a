package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var csvHeader = []string{"name", "score", "lines", "level"}

// CSVStore keeps the high-score table in a CSV file with a
// name,score,lines,level header. The whole file is rewritten on Add.
type CSVStore struct {
	mu   sync.Mutex
	path string
	topN int
}

var _ ScoreStore = (*CSVStore)(nil)

// OpenCSV prepares a CSV store. A missing file is an empty table.
func OpenCSV(path string, topN int) (*CSVStore, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &CSVStore{path: path, topN: topN}, nil
}

// Close is a no-op; the file is closed after every operation.
func (s *CSVStore) Close() error { return nil }

// Load reads the table, best first.
func (s *CSVStore) Load(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Add appends an entry, keeps the top N and rewrites the file.
func (s *CSVStore) Add(ctx context.Context, e Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	e.Name = NormalizeName(e.Name)
	entries = insertTop(entries, e, s.topN)
	if err := s.write(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats returns the entry count and best score.
func (s *CSVStore) Stats(ctx context.Context) (Stats, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return Stats{}, err
	}
	return statsOf(entries), nil
}

func (s *CSVStore) read() ([]Entry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read header: %w", err)
	}
	// Header keys may carry stray spaces ("name, score").
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	field := func(rec []string, key string) string {
		i, ok := col[key]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var entries []Entry
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		// A malformed line costs only that row.
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("storage: cannot read %s: %w", s.path, err)
		}
		if len(rec) == 0 || (len(rec) == 1 && rec[0] == "") {
			continue
		}
		entries = append(entries, Entry{
			Name:  field(rec, "name"),
			Score: coerceInt(field(rec, "score")),
			Lines: coerceInt(field(rec, "lines")),
			Level: coerceInt(field(rec, "level")),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}

// write replaces the file through a temporary sibling and a rename.
func (s *CSVStore) write(entries []Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".scores-*.csv")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write header: %w", err)
	}
	for _, e := range entries {
		rec := []string{e.Name, strconv.Itoa(e.Score), strconv.Itoa(e.Lines), strconv.Itoa(e.Level)}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("storage: cannot write entry: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot flush %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", s.path, err)
	}
	return nil
}
