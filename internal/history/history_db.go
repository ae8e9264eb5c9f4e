package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/hotkeyctl/internal/capture"
	"github.com/studiowebux/hotkeyctl/internal/config"
	"github.com/studiowebux/hotkeyctl/internal/migrations"
)

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one recorded binding change.
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Action    string    `json:"action" yaml:"action"`
	OldKey    string    `json:"old_key" yaml:"old_key"`
	NewKey    string    `json:"new_key" yaml:"new_key"`
	Source    string    `json:"source" yaml:"source"`
}

// Manager stores binding changes in SQLite. It satisfies capture.Recorder.
type Manager struct {
	db        *sql.DB
	sessionID string
	now       func() time.Time
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{
		db:        db,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}, nil
}

// SessionID identifies this process's changes.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// RecordChange stores c.
func (m *Manager) RecordChange(c capture.Change) error {
	query := `
		INSERT INTO binding_changes (session_id, timestamp, action, old_key, new_key, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		m.sessionID,
		m.now().Local().Format(timestampLayout),
		string(c.Action),
		c.Old.String(),
		c.New.String(),
		c.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save binding change: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	query := `
		SELECT id, session_id, timestamp, action, old_key, new_key, source
		FROM binding_changes
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// ForAction returns every change to action, newest first.
func (m *Manager) ForAction(action string) ([]Entry, error) {
	query := `
		SELECT id, session_id, timestamp, action, old_key, new_key, source
		FROM binding_changes
		WHERE action = ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := m.db.Query(query, action)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for action: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry

	for rows.Next() {
		var e Entry
		var timestamp string

		if err := rows.Scan(&e.ID, &e.SessionID, &timestamp, &e.Action, &e.OldKey, &e.NewKey, &e.Source); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		parsed, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			// The driver hands DATETIME columns back as RFC3339 in UTC;
			// the stored wall clock is local time.
			utc, err := time.Parse(time.RFC3339Nano, timestamp)
			if err == nil {
				parsed = time.Date(utc.Year(), utc.Month(), utc.Day(), utc.Hour(), utc.Minute(), utc.Second(), 0, time.Local)
			}
		}
		e.Timestamp = parsed

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM binding_changes")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM binding_changes").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
