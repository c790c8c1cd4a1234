package leaderboard

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the board in a SQLite table.
type SQLiteBackend struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases coherent.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}
	s := &SQLiteBackend{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteBackend) Close() error {
	return s.conn.Close()
}

func (s *SQLiteBackend) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		ts INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Load returns all rows ordered by score.
func (s *SQLiteBackend) Load(ctx context.Context) ([]Entry, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, name, score, ts FROM scores ORDER BY score DESC, ts ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Store replaces every row with entries inside one transaction.
func (s *SQLiteBackend) Store(ctx context.Context, entries []Entry) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM scores"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO scores (id, name, score, ts) VALUES (?, ?, ?, ?)",
			e.ID, e.Name, e.Score, e.Timestamp,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
