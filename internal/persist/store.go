// Package persist stores the host registry and template store across
// restarts. Templates keep their usage metadata; the action payload is
// stored as a JSON blob since it never needs to be queried.
package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/emberline-dev/emberline/internal/models"
)

// Store is a SQLite-backed snapshot store for hosts and templates.
type Store struct {
	db *sql.DB
}

// OpenAt creates or opens the database at path. The parent directory is
// created if it does not exist.
func OpenAt(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist: failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("persist: failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS hosts (
			id           TEXT    PRIMARY KEY,
			host         TEXT    NOT NULL,
			port         INTEGER NOT NULL DEFAULT 22,
			username     TEXT    NOT NULL,
			password     TEXT    NOT NULL DEFAULT '',
			key_path     TEXT    NOT NULL DEFAULT '',
			use_key_auth INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS templates (
			id           TEXT    PRIMARY KEY,
			name         TEXT    NOT NULL DEFAULT '',
			description  TEXT    NOT NULL DEFAULT '',
			action       TEXT    NOT NULL,
			enabled      INTEGER NOT NULL DEFAULT 1,
			async        INTEGER NOT NULL DEFAULT 0,
			created_at   TEXT    NOT NULL DEFAULT (datetime('now')),
			last_used_at TEXT    NOT NULL DEFAULT '',
			use_count    INTEGER NOT NULL DEFAULT 0
		);
	`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("persist: migration failed: %w", err)
	}
	return nil
}

// SaveHosts replaces the stored host set with the given one.
func (s *Store) SaveHosts(hosts []models.SSHHost) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("persist: begin failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM hosts`); err != nil {
		return fmt.Errorf("persist: clear hosts failed: %w", err)
	}

	for _, h := range hosts {
		_, err := tx.Exec(`
			INSERT INTO hosts (id, host, port, username, password, key_path, use_key_auth)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.Host, h.Port, h.Username, h.Password, h.KeyPath, boolToInt(h.UseKeyAuth),
		)
		if err != nil {
			return fmt.Errorf("persist: insert host %s failed: %w", h.ID, err)
		}
	}

	return tx.Commit()
}

// LoadHosts returns all stored hosts.
func (s *Store) LoadHosts() ([]models.SSHHost, error) {
	rows, err := s.db.Query(`
		SELECT id, host, port, username, password, key_path, use_key_auth
		FROM hosts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("persist: query hosts failed: %w", err)
	}
	defer rows.Close()

	var hosts []models.SSHHost
	for rows.Next() {
		var h models.SSHHost
		var keyAuth int
		if err := rows.Scan(&h.ID, &h.Host, &h.Port, &h.Username, &h.Password, &h.KeyPath, &keyAuth); err != nil {
			return nil, fmt.Errorf("persist: scan host failed: %w", err)
		}
		h.UseKeyAuth = keyAuth != 0
		hosts = append(hosts, h)
	}
	return hosts, rows.Err()
}

// SaveTemplates replaces the stored template set with the given one.
func (s *Store) SaveTemplates(templates []models.ActionTemplate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("persist: begin failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM templates`); err != nil {
		return fmt.Errorf("persist: clear templates failed: %w", err)
	}

	for _, t := range templates {
		blob, err := json.Marshal(t.Action)
		if err != nil {
			return fmt.Errorf("persist: marshal action for %s failed: %w", t.ID, err)
		}

		lastUsed := ""
		if !t.LastUsedAt.IsZero() {
			lastUsed = t.LastUsedAt.UTC().Format(time.RFC3339Nano)
		}

		_, err = tx.Exec(`
			INSERT INTO templates (id, name, description, action, enabled, async, created_at, last_used_at, use_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Description, string(blob), boolToInt(t.Enabled), boolToInt(t.Async),
			t.CreatedAt.UTC().Format(time.RFC3339Nano), lastUsed, t.UseCount,
		)
		if err != nil {
			return fmt.Errorf("persist: insert template %s failed: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// LoadTemplates returns all stored templates with their usage metadata.
func (s *Store) LoadTemplates() ([]models.ActionTemplate, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, action, enabled, async, created_at, last_used_at, use_count
		FROM templates ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("persist: query templates failed: %w", err)
	}
	defer rows.Close()

	var templates []models.ActionTemplate
	for rows.Next() {
		var t models.ActionTemplate
		var blob, createdStr, lastUsedStr string
		var enabled, async int
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &blob, &enabled, &async, &createdStr, &lastUsedStr, &t.UseCount); err != nil {
			return nil, fmt.Errorf("persist: scan template failed: %w", err)
		}

		if err := json.Unmarshal([]byte(blob), &t.Action); err != nil {
			return nil, fmt.Errorf("persist: unmarshal action for %s failed: %w", t.ID, err)
		}

		t.Enabled = enabled != 0
		t.Async = async != 0
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		if lastUsedStr != "" {
			t.LastUsedAt, _ = time.Parse(time.RFC3339Nano, lastUsedStr)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
