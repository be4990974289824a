package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the high-score table in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	topN int
}

var _ ScoreStore = (*SQLiteStore)(nil)

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string, topN int) (*SQLiteStore, error) {
	dbPath, err := expandPath(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if topN <= 0 {
		topN = DefaultTopN
	}
	store := &SQLiteStore{db: db, topN: topN}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(CAST(score AS INTEGER) DESC, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the top entries ordered by score descending.
func (s *SQLiteStore) Load(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score, lines, level, created_at
		 FROM high_scores
		 ORDER BY CAST(score AS INTEGER) DESC, id ASC
		 LIMIT ?`,
		s.topN,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var name, score, lines, level, createdAt any
		if err := rows.Scan(&name, &score, &lines, &level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, Entry{
			Name:      nameOf(name),
			Score:     coerceValue(score),
			Lines:     coerceValue(lines),
			Level:     coerceValue(level),
			CreatedAt: parseTime(createdAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Add records an entry and deletes everything outside the top N.
func (s *SQLiteStore) Add(ctx context.Context, e Entry) ([]Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO high_scores (name, score, lines, level) VALUES (?, ?, ?, ?)",
		NormalizeName(e.Name), e.Score, e.Lines, e.Level,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot save score: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM high_scores WHERE id NOT IN (
			SELECT id FROM high_scores ORDER BY CAST(score AS INTEGER) DESC, id ASC LIMIT ?
		)`,
		s.topN,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot trim scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: cannot commit score: %w", err)
	}

	return s.Load(ctx)
}

// Stats returns the entry count and best score.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(MAX(CAST(score AS INTEGER)), 0) FROM high_scores",
	).Scan(&st.Count, &st.Best)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

func nameOf(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case []byte:
		return string(n)
	case nil:
		return DefaultName
	}
	return fmt.Sprint(v)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
