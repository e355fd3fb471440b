// Package session persists REPL sessions: the inputs a session saw and the
// named definitions it created, in a single SQLite file.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a definition name has no entry.
var ErrNotFound = errors.New("definition not found")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS definitions (
	name       TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	input      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Session is one REPL run.
type Session struct {
	ID        string
	StartedAt time.Time
}

// NewSession registers a fresh session and returns it.
func (s *Store) NewSession() (Session, error) {
	sess := Session{ID: uuid.NewString(), StartedAt: time.Now().UTC()}
	_, err := s.db.Exec(`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		sess.ID, sess.StartedAt)
	if err != nil {
		return Session{}, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

// SaveDefinition stores source under name, replacing any previous binding.
func (s *Store) SaveDefinition(sessionID, name, source string) error {
	_, err := s.db.Exec(`
		INSERT INTO definitions (name, source, session_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source = excluded.source,
			session_id = excluded.session_id,
			updated_at = excluded.updated_at`,
		name, source, sessionID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving definition %s: %w", name, err)
	}
	return nil
}

// Definition returns the stored source for name.
func (s *Store) Definition(name string) (string, error) {
	var source string
	err := s.db.QueryRow(`SELECT source FROM definitions WHERE name = ?`, name).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("loading definition %s: %w", name, err)
	}
	return source, nil
}

// Definitions returns every stored (name, source) pair, ordered by name.
func (s *Store) Definitions() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT name, source FROM definitions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing definitions: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var name, source string
		if err := rows.Scan(&name, &source); err != nil {
			return nil, err
		}
		out[name] = source
	}
	return out, rows.Err()
}

// AppendHistory records one REPL input line.
func (s *Store) AppendHistory(sessionID, input string) error {
	_, err := s.db.Exec(`INSERT INTO history (session_id, input, created_at) VALUES (?, ?, ?)`,
		sessionID, input, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("appending history: %w", err)
	}
	return nil
}

// History returns the most recent inputs of a session, oldest first.
func (s *Store) History(sessionID string, limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT input FROM (
			SELECT id, input FROM history
			WHERE session_id = ?
			ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, err
		}
		out = append(out, input)
	}
	return out, rows.Err()
}
