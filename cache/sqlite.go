package cache

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

// SQLite is a persistent strategy backed by a SQLite database, for
// deployments that want processed artifacts to survive restarts.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) a SQLite backed strategy
// at path. Use ":memory:" for an ephemeral database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL improves concurrent reader behavior; writes are serialized by
	// the Synchronized decorator anyway.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	schema := `
CREATE TABLE IF NOT EXISTS artifacts (
	group_name TEXT NOT NULL,
	type TEXT NOT NULL,
	minimize INTEGER NOT NULL,
	content TEXT NOT NULL,
	hash TEXT NOT NULL,
	PRIMARY KEY(group_name, type, minimize)
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get implements Strategy.
func (s *SQLite) Get(k Key) (Entry, bool, error) {
	var e Entry
	err := s.db.QueryRow(
		"SELECT content, hash FROM artifacts WHERE group_name = ? AND type = ? AND minimize = ?",
		k.Group, string(k.Type), boolInt(k.Minimize),
	).Scan(&e.Content, &e.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Put implements Strategy.
func (s *SQLite) Put(k Key, e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO artifacts (group_name, type, minimize, content, hash) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(group_name, type, minimize) DO UPDATE SET content = excluded.content, hash = excluded.hash`,
		k.Group, string(k.Type), boolInt(k.Minimize), e.Content, e.Hash,
	)
	return err
}

// Contains implements Strategy.
func (s *SQLite) Contains(k Key) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM artifacts WHERE group_name = ? AND type = ? AND minimize = ?",
		k.Group, string(k.Type), boolInt(k.Minimize),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Clear implements Strategy.
func (s *SQLite) Clear() error {
	_, err := s.db.Exec("DELETE FROM artifacts")
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
